package config

import "fmt"

// Config アプリケーション全体の設定
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Activities ActivitiesConfig `mapstructure:"activities"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// AppConfig アプリケーション名と実行環境
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig HTTPサーバーの設定
type ServerConfig struct {
	Port            int    `mapstructure:"port"`
	Mode            string `mapstructure:"mode"`             // ginのモード: debug, release, test
	StaticDir       string `mapstructure:"static_dir"`       // 空の場合は埋め込みのフロントエンドを配信
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // ミリ秒
}

// Addr http.Serverに渡すリッスンアドレス
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// ActivitiesConfig 活動ディレクトリの設定
type ActivitiesConfig struct {
	File            string `mapstructure:"file"`
	EnforceCapacity bool   `mapstructure:"enforce_capacity"`
}

// LoggingConfig ログ出力の設定
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
