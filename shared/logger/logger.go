package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config содержит настройки для логгера.
type Config struct {
	Level      string `env:"LOG_LEVEL" env-default:"info"`
	Encoding   string `env:"LOG_ENCODING" env-default:"json"`
	OutputPath string `env:"LOG_OUTPUT" env-default:"stdout"`
	// Development включает вывод caller и стектрейсов для warn и выше.
	Development bool `env:"LOG_DEVELOPMENT" env-default:"false"`
}

// New создает zap.Logger по конфигурации.
func New(cfg Config) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	logLevel := strings.ToLower(strings.TrimSpace(cfg.Level))
	if logLevel == "" {
		logLevel = "info"
	}
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		// Логгера еще нет, пишем в stderr
		fmt.Fprintf(os.Stderr, "Invalid log level '%s', using 'info'. Error: %v\n", cfg.Level, err)
		level.SetLevel(zap.InfoLevel)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	encoding := strings.ToLower(cfg.Encoding)
	if encoding != "console" && encoding != "json" {
		encoding = "json"
	}

	outputPath := cfg.OutputPath
	if outputPath == "" {
		outputPath = "stdout"
	}

	zapConfig := zap.Config{
		Level:             level,
		Development:       cfg.Development,
		DisableCaller:     !cfg.Development,
		DisableStacktrace: !cfg.Development,
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{outputPath},
		ErrorOutputPaths:  []string{"stderr"},
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// NewNop возвращает логгер-заглушку. Используется в тестах.
func NewNop() *zap.Logger {
	return zap.NewNop()
}
