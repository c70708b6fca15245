package logger

import (
	"fmt"
	"sort"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// Logger サービス・ハンドラー・ミドルウェアで共通に使う構造化ロガー
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	WithFields(fields map[string]interface{}) Logger
	WithError(err error) Logger
	// Named コンポーネント名付きの子ロガー（activities, http など）
	Named(name string) Logger
	Sync() error
}

// Options ロガーの出力設定
type Options struct {
	Level   string // debug, info, warn, error
	Format  string // json / console
	Service string // 全ログに付与するサービス名（空なら付与しない）
}

// New Optionsからzapロガーを作成
func New(opts Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("ログレベルの解析失敗 (%q): %w", opts.Level, err)
	}

	cfg := zap.NewDevelopmentConfig()
	if opts.Format == "json" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "time"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	if opts.Service != "" {
		cfg.InitialFields = map[string]interface{}{"service": opts.Service}
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("zapロガーの構築失敗: %w", err)
	}
	return l, nil
}

// NewStructured zapをバックエンドにしたLoggerを作成
func NewStructured(opts Options) (Logger, error) {
	l, err := New(opts)
	if err != nil {
		return nil, err
	}
	return &zapLogger{base: l}, nil
}

// NewZapAdapter 既存の*zap.LoggerをLoggerとして使う
func NewZapAdapter(l *zap.Logger) Logger {
	return &zapLogger{base: l}
}

// NewTestLogger テスト出力に書き出すロガー
func NewTestLogger(t testing.TB) Logger {
	return &zapLogger{base: zaptest.NewLogger(t)}
}

// NewNoOpLogger 何も出力しないロガー
func NewNoOpLogger() Logger {
	return &zapLogger{base: zap.NewNop()}
}

type zapLogger struct {
	base *zap.Logger
}

func (z *zapLogger) Debug(msg string, fields map[string]interface{}) {
	z.base.Debug(msg, toZapFields(fields)...)
}

func (z *zapLogger) Info(msg string, fields map[string]interface{}) {
	z.base.Info(msg, toZapFields(fields)...)
}

func (z *zapLogger) Warn(msg string, fields map[string]interface{}) {
	z.base.Warn(msg, toZapFields(fields)...)
}

func (z *zapLogger) Error(msg string, fields map[string]interface{}) {
	z.base.Error(msg, toZapFields(fields)...)
}

func (z *zapLogger) WithFields(fields map[string]interface{}) Logger {
	if len(fields) == 0 {
		return z
	}
	return &zapLogger{base: z.base.With(toZapFields(fields)...)}
}

// WithError nilの場合は同じロガーを返す
func (z *zapLogger) WithError(err error) Logger {
	if err == nil {
		return z
	}
	return &zapLogger{base: z.base.With(zap.Error(err))}
}

func (z *zapLogger) Named(name string) Logger {
	return &zapLogger{base: z.base.Named(name)}
}

func (z *zapLogger) Sync() error {
	return z.base.Sync()
}

// toZapFields キー順に並べてzap.Fieldへ変換（出力順を安定させる）
func toZapFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, key := range keys {
		value := fields[key]
		if err, ok := value.(error); ok {
			out = append(out, zap.NamedError(key, err))
			continue
		}
		out = append(out, zap.Any(key, value))
	}
	return out
}
