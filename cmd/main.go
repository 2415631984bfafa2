package main

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"donateqr/internal/config"
	"donateqr/internal/controller"
	"donateqr/internal/feed"
	"donateqr/internal/handlers"
	"donateqr/internal/poller"
	"donateqr/internal/qrlink"
	"donateqr/internal/selector"
	"donateqr/internal/storage"
	"donateqr/internal/view"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelInfo)

	settings := config.LoadEnvironmentConfig()

	client := &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        64,
			MaxIdleConnsPerHost: 16,
			IdleConnTimeout:     120 * time.Second,
			DialContext: (&net.Dialer{
				Timeout:   time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
		},
		Timeout: 5 * time.Second,
	}

	var ledger storage.Ledger
	redisLedger, err := storage.NewRedisLedger(settings.RedisConnectionURL)
	if err != nil {
		slog.Warn("redis not available, keeping donation totals in memory", "err", err)
		ledger = storage.NewMemoryLedger()
	} else {
		ledger = redisLedger
	}

	qrBuilder := qrlink.Builder{
		BaseURL:     settings.QRBaseURL,
		BankID:      settings.QRBankID,
		AccountNo:   settings.QRAccountNo,
		Template:    settings.QRTemplate,
		AccountName: settings.QRAccountName,
		Note:        settings.QRNote,
	}

	state := view.NewState("I have transferred")
	amountSelector := selector.New(qrBuilder, state)
	feedClient := feed.NewClient(client, settings.FeedURL)
	confirmPoller := poller.New(feedClient, settings.MaxAttempts, settings.RetryDelay)
	donationController := controller.New(amountSelector, confirmPoller, state, ledger)

	app := fiber.New(fiber.Config{
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
	})

	handler := handlers.NewDonationHandler(donationController, state, ledger, feedClient)
	handler.Register(app)

	slog.Info("server running", "port", settings.ServerPort, "feed", settings.FeedURL)
	if err := app.Listen(":" + settings.ServerPort); err != nil {
		slog.Error("server failed", "err", err)
	}
}
