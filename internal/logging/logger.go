package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"itemsvc/internal/config"
)

// New builds a development logger, or in release mode a JSON logger that
// writes to stdout and a rotated file. Both honour cfg.LogLevel.
func New(cfg *config.Config) (*zap.Logger, error) {
	parsed, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		parsed = zapcore.InfoLevel
	}
	level := zap.NewAtomicLevelAt(parsed)

	if !cfg.ReleaseMode {
		devCfg := zap.NewDevelopmentConfig()
		devCfg.Level = level
		return devCfg.Build()
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, err
	}
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.NewMultiWriteSyncer(
			zapcore.AddSync(os.Stdout),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   cfg.LogFile,
				MaxSize:    50,
				MaxBackups: 5,
				MaxAge:     14,
				Compress:   true,
			}),
		),
		level,
	)
	return zap.New(core, zap.AddCaller()), nil
}
