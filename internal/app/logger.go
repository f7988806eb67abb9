package app

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Freeeeeet/clinic_frontdesk/internal/config"
)

func NewLogger(cfg *config.Config) *zap.Logger {
	var zapConfig zap.Config

	if cfg.IsProduction() {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapConfig.OutputPaths = []string{"stdout"}

	logger, err := zapConfig.Build()
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}

	return logger.With(zap.String("env", cfg.Environment))
}
