package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/config"
	"github.com/Nixie-Tech-LLC/athan/internal/db"
	"github.com/Nixie-Tech-LLC/athan/internal/notify"
	"github.com/Nixie-Tech-LLC/athan/internal/publish"
	"github.com/Nixie-Tech-LLC/athan/internal/redis"
)

// backends holds the optional services a pipeline was wired with.
type backends struct {
	pipeline *publish.Pipeline
	store    db.Store
	closers  []func()
}

func (b *backends) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// buildPipeline connects every backend the configuration names. PostgreSQL,
// Redis and MQTT are each optional; storage is always present.
func buildPipeline(ctx context.Context, cfg *config.Config) (*backends, error) {
	st, err := InitStorage(cfg)
	if err != nil {
		return nil, err
	}
	b := &backends{pipeline: &publish.Pipeline{Storage: st}}

	if cfg.DatabaseURL != "" {
		if err := db.Init(cfg.DatabaseURL); err != nil {
			return nil, fmt.Errorf("db init: %w", err)
		}
		b.closers = append(b.closers, func() { _ = db.DB.Close() })
		if err := db.RunMigrations(db.DB, cfg.MigrationsPath); err != nil {
			b.Close()
			return nil, fmt.Errorf("db migrate: %w", err)
		}
		b.store = db.NewStore(db.DB)
		b.pipeline.Runs = b.store
	}

	if cfg.RedisAddress != "" {
		client, err := redis.InitRedis(ctx, cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.closers = append(b.closers, func() { _ = client.Close() })
		b.pipeline.Cache = redis.NewDigestCache(client)
	}

	if cfg.MQTTBrokerURL != "" {
		notifier, err := notify.Connect(cfg.MQTTBrokerURL, cfg.MQTTClientID)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.closers = append(b.closers, notifier.Close)
		b.pipeline.Notifier = notifier
	}

	log.Debug().
		Bool("database", b.store != nil).
		Bool("redis", b.pipeline.Cache != nil).
		Bool("mqtt", b.pipeline.Notifier != nil).
		Msg("pipeline backends ready")
	return b, nil
}
