package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger for service. Prod gets JSON at info level, every other
// env gets colored console output at debug level. Each entry carries a
// "service" field so lines from several processes can be told apart.
func New(env, service string, opts ...zap.Option) (*zap.SugaredLogger, error) {
	var config zap.Config

	if env == "prod" {
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder

	logger, err := config.Build(opts...)
	if err != nil {
		return nil, err
	}
	return logger.Sugar().With("service", service), nil
}
