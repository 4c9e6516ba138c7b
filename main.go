package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"yelloride/internal/cache"
	intconfig "yelloride/internal/config"
	router "yelloride/internal/http"
	"yelloride/internal/services"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	v, err := intconfig.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	cfg, err := intconfig.ParseConfig(v)
	if err != nil {
		logrus.WithError(err).Fatal("failed to parse config")
	}

	if _, err := intconfig.ConnectDB(cfg.Database); err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	defer intconfig.CloseDB()

	catalogCache, err := cache.New(cfg.Redis)
	if err != nil {
		logrus.WithError(err).Warn("redis unavailable, catalog cache disabled")
	}
	defer catalogCache.Close()

	deps := router.Deps{
		Catalog: services.CatalogService{
			Cache:           catalogCache,
			DefaultPageSize: cfg.Catalog.DefaultPageSize,
			MaxPageSize:     cfg.Catalog.MaxPageSize,
		},
		Booking: services.BookingService{},
		Voucher: services.VoucherService{},
		Quote:   services.QuoteService{},
		Auth:    services.AuthService{Admin: cfg.Admin, JWT: cfg.JWT},
	}

	r := router.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logrus.WithField("addr", cfg.Server.Addr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Fatal("shutdown failed")
	}

	logrus.Info("server stopped")
}
