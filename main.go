package main

import (
	"log"
	"time"

	"studio-backend/config"
	"studio-backend/database"
	routes "studio-backend/internal/app/http"
	"studio-backend/internal/storage/uploads"
	"studio-backend/pkg/telegram"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	cfg := config.Load()

	db, err := database.Open(cfg.DBURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}

	store, err := uploads.New(cfg.UploadDir)
	if err != nil {
		log.Fatalf("❌ Failed to prepare upload directory: %v", err)
	}

	var bot *telegram.Bot
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		bot, err = telegram.New(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("Telegram notifications disabled: %v", err)
			bot = nil
		}
	} else {
		log.Println("Telegram notifications disabled: no credentials configured.")
	}

	r := gin.Default()
	r.MaxMultipartMemory = 32 << 20

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		Cfg:   cfg,
		DB:    db,
		Store: store,
		Bot:   bot,
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server stopped: %v", err)
	}
}
