package util

import (
	"strings"

	"go.uber.org/zap"
)

var Log *zap.SugaredLogger

// InitLogger builds the process-wide sugared logger. Production mode emits
// JSON, everything else gets the development console encoder.
func InitLogger(mode string) error {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = logger.Sugar()
	return nil
}
