// @title AWS AI Practitioner Quiz API
// @version 1.0
// @description Backend for the AWS AI Practitioner study quiz.

// @host localhost:8080
// @BasePath /api

package main

import (
	"aws_quiz_backend/internal/app"
	"aws_quiz_backend/internal/config"
	"aws_quiz_backend/pkg/configwatcher"
	"aws_quiz_backend/pkg/logger"
	"flag"
	"log"
	"path/filepath"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	configDir := flag.String("config", "configs", "directory holding config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.Log.Info("configuration reloaded")
	})
	go configwatcher.WatchConfig(filepath.Join(*configDir, "config.yaml"), application.ApplyConfig)

	application.Run()
}
