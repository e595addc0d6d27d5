package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coursemarket-be/internal/api"
	"coursemarket-be/internal/client"
	"coursemarket-be/internal/config"
	"coursemarket-be/internal/db"
	"coursemarket-be/internal/logger"
	"coursemarket-be/internal/notification"
	"coursemarket-be/internal/order"
	"coursemarket-be/internal/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	database := db.InitDB(cfg)
	defer database.Close()

	sender := notification.NewKafkaSender(cfg.KafkaBrokers, cfg.NotificationTopic)
	defer sender.Close()

	subject := order.NewSubject()
	subject.Attach(order.NewEmailNotificationObserver(sender))
	subject.Attach(order.NewAnalyticsObserver(sender))

	courses := client.NewCourseClient(cfg.CourseServiceURL)
	users := client.NewUserClient(cfg.UserServiceURL)

	repo := order.NewRepository(database)
	service := order.NewService(repo, subject, payment.NewProcessor(), courses, order.ServiceConfig{
		PaymentMaxRetries:      cfg.PaymentMaxRetries,
		PaymentRetryDelay:      cfg.PaymentRetryDelay,
		OrderCacheTTL:          cfg.OrderCacheTTL,
		SkipCancelNotification: !cfg.NotifyCancelAsFailure,
	})

	handler := api.NewHandler(service, users)
	router := api.NewRouter(handler, cfg.JWTSecret)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: router,
	}

	go func() {
		log.Info("server listening", zap.String("port", cfg.AppPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
}
