package main

import (
	"context"
	"encoding/base64"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"offwork.app/offwork/core"
	"offwork.app/offwork/infrastructure/config"
	"offwork.app/offwork/notify"
	"offwork.app/offwork/store"
	"offwork.app/offwork/utils"
	"offwork.app/offwork/web/handlers"
	"offwork.app/offwork/web/middlewares"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	utils.SetReferenceZone(cfg.TimezoneOffset())

	st, err := store.Open(cfg.StorePath, store.LogLevelWarn)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	var sender notify.Sender = notify.LogSender{}
	if cfg.Slack.Token != "" {
		sender = notify.NewSlack(cfg.Slack.Token, cfg.Slack.ChannelID)
	}

	ctx := context.Background()
	clock := core.SystemClock{}
	scheduler := notify.NewTimers(ctx, sender)
	engine := core.NewEngine(ctx, st, scheduler, clock.Now())

	jwtSecret, err := base64.StdEncoding.DecodeString(cfg.SigningSecret)
	if err != nil {
		log.Fatal("Failed to decode JWT secret:", err)
	}

	r := gin.Default()
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	protected := r.Group("/api/v1")
	protected.Use(middlewares.Authentication(jwtSecret))
	handlers.Register(protected, engine, clock, scheduler)

	r.Run(cfg.Listen)
}
