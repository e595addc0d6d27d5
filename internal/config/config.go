package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	AppPort string
	AppEnv  string

	JWTSecret string

	KafkaBrokers      []string
	NotificationTopic string

	UserServiceURL   string
	CourseServiceURL string

	DefaultCurrency string

	PaymentMaxRetries int
	PaymentRetryDelay time.Duration
	OrderCacheTTL     time.Duration

	NotifyCancelAsFailure bool
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	maxRetries, _ := strconv.Atoi(getEnv("PAYMENT_MAX_RETRIES", "3"))
	retryDelayMs, _ := strconv.Atoi(getEnv("PAYMENT_RETRY_DELAY_MS", "1000"))
	cacheTTL, _ := strconv.Atoi(getEnv("ORDER_CACHE_TTL_SECONDS", "300"))

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     getEnv("DB_PORT", "5432"),

		AppPort: getEnv("APP_PORT", "8080"),
		AppEnv:  getEnv("APP_ENV", "development"),

		JWTSecret: os.Getenv("SECRET_KEY"),

		KafkaBrokers:      strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		NotificationTopic: getEnv("NOTIFICATION_TOPIC", "notifications"),

		UserServiceURL:   getEnv("USER_SERVICE_URL", "http://localhost:8081"),
		CourseServiceURL: getEnv("COURSE_SERVICE_URL", "http://localhost:8082"),

		DefaultCurrency: getEnv("DEFAULT_CURRENCY", "USD"),

		PaymentMaxRetries: maxRetries,
		PaymentRetryDelay: time.Duration(retryDelayMs) * time.Millisecond,
		OrderCacheTTL:     time.Duration(cacheTTL) * time.Second,

		NotifyCancelAsFailure: getEnv("NOTIFY_CANCEL_AS_FAILURE", "true") == "true",
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
