// DeskBot - Telegram customer support bot
// License: MIT
//
// Copyright (c) 2026 DeskBot contributors

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"deskbot/pkg/channels"
	"deskbot/pkg/config"
)

// webhookCmd manages the Telegram webhook registration from the CLI, as an
// alternative to the HTTP endpoints the running server exposes.
func webhookCmd(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: deskbot webhook set <url> | info | delete")
		os.Exit(1)
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch args[0] {
	case "set":
		if len(args) < 2 {
			fmt.Println("Usage: deskbot webhook set <url>")
			os.Exit(1)
		}
		if err := channel.SetWebhook(ctx, args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "failed to set webhook: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Webhook set to %s\n", args[1])

	case "info":
		info, err := channel.WebhookInfo(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to get webhook info: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("URL:             %s\n", info.URL)
		fmt.Printf("Pending updates: %d\n", info.PendingUpdateCount)
		if info.LastErrorMessage != "" {
			fmt.Printf("Last error:      %s (at %s)\n",
				info.LastErrorMessage,
				time.Unix(info.LastErrorDate, 0).Format(time.RFC3339))
		}

	case "delete":
		if err := channel.DeleteWebhook(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "failed to delete webhook: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Webhook deleted")

	default:
		fmt.Printf("Unknown webhook subcommand: %s\n", args[0])
		os.Exit(1)
	}
}
