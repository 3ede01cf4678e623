package main

import (
	"github.com/joho/godotenv"

	"github.com/0xF5T9/vyfood-backend-sub000/internal/app"
	"github.com/0xF5T9/vyfood-backend-sub000/internal/logger"
)

func main() {
	_ = godotenv.Load() // .env is optional

	cfg := app.LoadConfig()
	log := logger.New(cfg.Env)

	srv, cleanup, err := app.NewServer(cfg, log)
	if err != nil {
		log.Fatal("init failed", "error", err)
	}
	defer cleanup()

	log.Info("listening", "port", cfg.Port)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
