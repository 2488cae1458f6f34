// cmd/api/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ohana-chilli/storefront/internal/config"
	"github.com/ohana-chilli/storefront/internal/domain/bowl"
	"github.com/ohana-chilli/storefront/internal/domain/cart"
	"github.com/ohana-chilli/storefront/internal/domain/catalog"
	"github.com/ohana-chilli/storefront/internal/domain/checkout"
	"github.com/ohana-chilli/storefront/internal/domain/order"
	"github.com/ohana-chilli/storefront/internal/infrastructure/database/postgres"
	"github.com/ohana-chilli/storefront/internal/infrastructure/database/redis"
	"github.com/ohana-chilli/storefront/internal/interfaces/http"
	"github.com/ohana-chilli/storefront/internal/interfaces/http/routes"
	"github.com/ohana-chilli/storefront/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	log := logger.New(cfg)
	log.WithFields(logrus.Fields{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Info("Starting storefront")

	db, err := postgres.NewConnection(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	redisClient, err := redis.NewConnection(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redisClient.Close()

	migration := postgres.NewMigration(db.GetDB(), log)
	if err := migration.RunAutoMigrations(); err != nil {
		log.WithError(err).Fatal("Database migration failed")
	}
	if err := migration.CreateIndexes(); err != nil {
		log.WithError(err).Warn("Index creation failed")
	}
	if cfg.IsDevelopment() {
		if tables, err := migration.TableInfo(); err == nil {
			log.WithField("tables", tables).Debug("Database tables")
		}
	}

	menu := catalog.NewDefaultStore()
	carts := cart.NewService(menu, cart.NewRedisStore(redisClient.GetClient(), cfg.Storefront.CartTTL), log.WithField("component", "cart"))
	bowls := bowl.NewService(menu, bowl.NewRedisStore(redisClient.GetClient(), cfg.Storefront.BowlTTL), log.WithField("component", "bowl"))
	orders := order.NewRepository(db.GetDB())

	server := http.NewServer(cfg, log, routes.Services{
		Catalog:  menu,
		Cart:     carts,
		Bowl:     bowls,
		Checkout: checkout.NewService(carts, orders, cfg.Storefront, log.WithField("component", "checkout")),
		Orders:   orders,
	}, redisClient.GetClient(), map[string]http.HealthCheck{
		"database": db.Health,
		"redis":    redisClient.Health,
	})

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	log.Info("Server shutdown completed")
}
