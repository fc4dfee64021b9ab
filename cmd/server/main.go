package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/sectioncms/internal/config"
	"github.com/sectioncms/internal/db"
	"github.com/sectioncms/internal/logging"
	"github.com/sectioncms/internal/router"
	"github.com/sectioncms/internal/storage"
	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		logrus.Fatalf("failed to create logger: %v", err)
	}

	flush, err := logging.InitSentry(logger, logging.SentrySettings{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Environment,
		Component:   "server",
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize sentry")
	}
	defer flush()

	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		logger.WithError(err).Fatal("failed to initialize database")
	}
	created, err := db.EnsureUser(db.DB, cfg.AdminUserName, cfg.AdminPassword)
	if err != nil {
		logger.WithError(err).Fatal("failed to ensure admin user")
	}
	if created {
		logger.WithField("username", cfg.AdminUserName).Info("admin user created")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.New(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize storage")
	}

	r := router.SetupRouter(router.Options{
		DB:            db.DB,
		Storage:       store,
		Logger:        logger,
		SessionSecret: cfg.SessionSecret,
		SecureCookie:  cfg.Environment == "production",
	})

	// 管理前端与 API 不同源，需要携带会话 Cookie
	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler(r)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"addr":    cfg.ListenAddr,
			"storage": cfg.Storage.Driver,
		}).Info("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("failed to run server")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("server shutdown failed")
	}
	logger.Info("server stopped")
}
