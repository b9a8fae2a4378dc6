// DeskBot - Telegram customer support bot
// License: MIT
//
// Copyright (c) 2026 DeskBot contributors

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"deskbot/pkg/bus"
	"deskbot/pkg/channels"
	"deskbot/pkg/config"
	"deskbot/pkg/faq"
	"deskbot/pkg/logger"
	"deskbot/pkg/providers"
	"deskbot/pkg/responder"
	"deskbot/pkg/server"
)

func serveCmd() {
	// A .env file is a development convenience; in production everything
	// comes from the real environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.LogLevel)

	table := faq.Default()
	if cfg.FAQFile != "" {
		table, err = faq.Load(cfg.FAQFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "faq table error: %v\n", err)
			os.Exit(1)
		}
		logger.InfoCF("main", "Loaded FAQ table", map[string]interface{}{
			"file":    cfg.FAQFile,
			"entries": table.Len(),
		})
	}

	provider, modelName, err := providers.FromModel(cfg.Model, providers.Credentials{
		OpenAIAPIKey:    cfg.OpenAIAPIKey,
		OpenAIBaseURL:   cfg.OpenAIBaseURL,
		AnthropicAPIKey: cfg.AnthropicAPIKey,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "provider error: %v\n", err)
		os.Exit(1)
	}

	channel, err := channels.NewTelegramChannel(cfg.BotToken, channels.Options{
		Proxy:         cfg.Proxy,
		WebhookSecret: cfg.WebhookSecret,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "telegram error: %v\n", err)
		os.Exit(1)
	}
	logger.InfoCF("main", "Telegram bot connected", map[string]interface{}{
		"username": channel.Username(),
		"provider": provider.Name(),
		"model":    modelName,
	})

	broker := bus.NewMessageBus()
	resp := responder.New(table, provider, channel, broker, responder.Options{
		Model:             modelName,
		CompletionTimeout: cfg.CompletionTimeout,
		Workers:           cfg.Workers,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		resp.Run(ctx)
		close(done)
	}()

	srv := server.New(broker, channel, formatVersion())
	if err := srv.Run(ctx, cfg.ListenAddr); err != nil {
		logger.ErrorCF("main", "HTTP server failed", map[string]interface{}{"error": err.Error()})
	}

	broker.Close()
	<-done
	logger.InfoC("main", "Shutdown complete")
}
