package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
)

// L is the shared sugared logger. It defaults to a no-op logger so
// packages can log safely in tests without calling Init.
var L = zap.NewNop().Sugar()

func Init() {
	var cfg zap.Config
	if os.Getenv("ENV") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	base, err := cfg.Build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	L = base.Sugar()
}

func Sync() {
	_ = L.Sync()
}
