package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type ApplicationSettings struct {
	ServerPort         string
	RedisConnectionURL string

	// Transaction feed polling.
	FeedURL     string
	MaxAttempts int
	RetryDelay  time.Duration

	// Static merchant identity for the QR image provider.
	QRBaseURL     string
	QRBankID      string
	QRAccountNo   string
	QRTemplate    string
	QRAccountName string
	QRNote        string
}

func LoadEnvironmentConfig() *ApplicationSettings {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	return &ApplicationSettings{
		ServerPort:         getEnvironmentVariable("PORT", "8080"),
		RedisConnectionURL: getEnvironmentVariable("REDIS_ADDR", "127.0.0.1:6379"),

		FeedURL:     getEnvironmentVariable("FEED_URL", "http://localhost:8001/transactions"),
		MaxAttempts: getIntegerEnvironmentVariable("CONFIRM_MAX_ATTEMPTS", 5),
		RetryDelay:  getDurationEnvironmentVariable("CONFIRM_RETRY_DELAY", 2*time.Second),

		QRBaseURL:     getEnvironmentVariable("QR_BASE_URL", "https://img.vietqr.io"),
		QRBankID:      getEnvironmentVariable("QR_BANK_ID", "970436"),
		QRAccountNo:   getEnvironmentVariable("QR_ACCOUNT_NO", "0000000000"),
		QRTemplate:    getEnvironmentVariable("QR_TEMPLATE", "compact2"),
		QRAccountName: getEnvironmentVariable("QR_ACCOUNT_NAME", "CHARITY FUND"),
		QRNote:        getEnvironmentVariable("QR_NOTE", "charity donation"),
	}
}

func getEnvironmentVariable(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntegerEnvironmentVariable(key string, defaultValue int) int {
	if valueStr := os.Getenv(key); valueStr != "" {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getDurationEnvironmentVariable(key string, defaultValue time.Duration) time.Duration {
	if valueStr := os.Getenv(key); valueStr != "" {
		if value, err := time.ParseDuration(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}
