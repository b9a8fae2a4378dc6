// DeskBot - Telegram customer support bot
// License: MIT
//
// Copyright (c) 2026 DeskBot contributors

package main

import (
	"fmt"
	"os"
	"runtime"
)

var (
	version   = "dev"
	gitCommit string
	buildTime string
)

func formatVersion() string {
	v := version
	if gitCommit != "" {
		v += fmt.Sprintf(" (git: %s)", gitCommit)
	}
	return v
}

func printVersion() {
	fmt.Printf("deskbot %s\n", formatVersion())
	if buildTime != "" {
		fmt.Printf("  Build: %s\n", buildTime)
	}
	fmt.Printf("  Go: %s\n", runtime.Version())
}

func printHelp() {
	fmt.Println(`deskbot - Telegram customer support bot

Usage:
  deskbot serve                 Run the webhook server and responder
  deskbot webhook set <url>     Register the webhook with Telegram
  deskbot webhook info          Show the currently registered webhook
  deskbot webhook delete        Unregister the webhook
  deskbot version               Show version information
  deskbot help                  Show this help

Configuration is read from the environment (and an optional .env file):
  BOT_TOKEN           Telegram bot token (required)
  LISTEN_ADDR         HTTP listen address (default 0.0.0.0:8000)
  MODEL               Completion model as vendor/model (default openai/gpt-4o-mini)
  OPENAI_API_KEY      API key for openai models
  ANTHROPIC_API_KEY   API key for anthropic models
  COMPLETION_TIMEOUT  Bound on each completion call (default 30s)
  WORKERS             Concurrent responder workers (default 4)
  FAQ_FILE            Optional JSON file overriding the built-in FAQ table
  WEBHOOK_SECRET      Optional Telegram webhook secret token
  TELEGRAM_PROXY      Optional HTTP proxy for Telegram API calls
  LOG_LEVEL           debug, info, warn or error (default info)`)
}

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		serveCmd()
	case "webhook":
		webhookCmd(os.Args[2:])
	case "version", "--version", "-v":
		printVersion()
	case "help", "--help", "-h":
		printHelp()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}
