package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	vividvalid "github.com/jaainil/vivid-valid"
	"github.com/jaainil/vivid-valid/config"
	"github.com/jaainil/vivid-valid/internal/ratelimit"
	"github.com/jaainil/vivid-valid/internal/resultcache"
	"github.com/jaainil/vivid-valid/server"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	engineCfg := vividvalid.Config{
		DisposableListPath: cfg.DisposableListPath,
		SMTPFromDomain:     cfg.SMTPFromDomain,
		Logger:             log,
	}
	if cfg.ProbeGlobalPerSec > 0 {
		engineCfg.RateLimiter = ratelimit.NewManager(cfg.ProbeGlobalPerSec, cfg.ProbePerDomainPerSec)
	}
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		engineCfg.BulkCache = resultcache.NewRedis(client, 30*time.Minute)
		log.WithField("addr", cfg.Redis.Address).Info("redis bulk cache enabled")
	}

	engine := vividvalid.New(engineCfg)
	srv := server.New(engine, cfg, log)

	go func() {
		if err := srv.Listen(); err != nil {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if err := srv.Shutdown(30 * time.Second); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
}
