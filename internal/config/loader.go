package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultAppName         = "Mergington-App"
	DefaultPort            = 8080
	DefaultActivitiesFile  = "data/activities.json"
	DefaultShutdownTimeout = 10000
)

// Load configs/config.yaml → configs/config.<APP_ENVIRONMENT>.yaml → 環境変数 の順に設定を読み込む
// 環境変数名はキーの「.」を「_」に置き換えたもの（server.port → SERVER_PORT）
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("基本設定ファイルの読み込み失敗: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // 環境別ファイルは任意

	return build(v)
}

// LoadFromFile 指定したファイルから設定を読み込む
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("設定ファイルの読み込み失敗 (%s): %w", path, err)
	}

	return build(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// build デフォルト・上書き・検証を経てConfigを組み立てる
func build(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("設定のアンマーシャル失敗: %w", err)
	}

	applyOverrides(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("設定が不正です: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", DefaultAppName)
	v.SetDefault("app.environment", "development")

	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.static_dir", "")
	v.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout)

	v.SetDefault("activities.file", DefaultActivitiesFile)
	v.SetDefault("activities.enforce_capacity", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// applyOverrides キー命名規則に従わない環境変数を反映する
func applyOverrides(cfg *Config) {
	// PaaS が注入する PORT を優先
	if val := os.Getenv("PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			cfg.Server.Port = port
		}
	}
}

// validateConfig 起動前に設定値を検証
func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port は 1〜65535 で指定してください: %d", cfg.Server.Port)
	}

	switch cfg.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode は debug, release, test のいずれか: %q", cfg.Server.Mode)
	}

	if strings.TrimSpace(cfg.Activities.File) == "" {
		return errors.New("activities.file は必須です")
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level は debug, info, warn, error のいずれか: %q", cfg.Logging.Level)
	}

	return nil
}

// loadEnvFile 最初に見つかった.envを読み込む（見つからなければ何もしない）
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot go.modのあるディレクトリを上方向に探す
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// GetDuration 設定値（ミリ秒）をtime.Durationに変換
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
