package main

import (
	"log"
	"os"

	"recipe-admin-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
)

func main() {
	// .env chỉ dùng cho local, production đọc system env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	// gin debug log chỉ bật ở local
	if env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := Serve(); err != nil {
		zlog.Fatal().Err(err).Msg("API server stopped with error")
	}
}
