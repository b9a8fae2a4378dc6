// DeskBot - Telegram customer support bot
// License: MIT
//
// Copyright (c) 2026 DeskBot contributors

package channels

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"deskbot/pkg/bus"
	"deskbot/pkg/logger"
)

// Telegram hard-caps messages at 4096 characters; keep some headroom for the
// closing tags the chunker may add.
const maxMessageLength = 4000

// TelegramChannel is the delivery mechanism: it sends replies through the
// Telegram Bot API and normalizes webhook updates into inbound messages.
type TelegramChannel struct {
	bot    *telego.Bot
	secret string
}

// Options configures the channel.
type Options struct {
	// Proxy is an optional HTTP proxy URL for Bot API calls. When empty,
	// HTTP_PROXY/HTTPS_PROXY from the environment are honored.
	Proxy string
	// WebhookSecret, when set, is registered with Telegram and must match
	// the secret-token header on every webhook delivery.
	WebhookSecret string
}

func NewTelegramChannel(token string, opts Options) (*TelegramChannel, error) {
	var botOpts []telego.BotOption

	if opts.Proxy != "" {
		proxyURL, err := url.Parse(opts.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL %q: %w", opts.Proxy, err)
		}
		botOpts = append(botOpts, telego.WithHTTPClient(&http.Client{
			Transport: &http.Transport{Proxy: http.ProxyURL(proxyURL)},
		}))
	} else if os.Getenv("HTTP_PROXY") != "" || os.Getenv("HTTPS_PROXY") != "" {
		botOpts = append(botOpts, telego.WithHTTPClient(&http.Client{
			Transport: &http.Transport{Proxy: http.ProxyFromEnvironment},
		}))
	}

	bot, err := telego.NewBot(token, botOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &TelegramChannel{bot: bot, secret: opts.WebhookSecret}, nil
}

func (c *TelegramChannel) Username() string {
	return c.bot.Username()
}

// VerifySecret reports whether the webhook secret-token header is acceptable.
// An unset secret disables the check.
func (c *TelegramChannel) VerifySecret(header string) bool {
	return c.secret == "" || header == c.secret
}

// Send delivers one outbound message. Markdown is converted to Telegram HTML;
// replies longer than the platform limit are split into safe chunks; when
// Telegram rejects the HTML, the chunk is retried as plain text.
func (c *TelegramChannel) Send(ctx context.Context, msg bus.OutboundMessage) error {
	chatID, threadID, err := parseCompositeChatID(msg.ChatID)
	if err != nil {
		return fmt.Errorf("invalid chat ID: %w", err)
	}

	chunks := splitMarkdownChunks(msg.Content, maxMessageLength)

	var lastErr error
	for i, chunk := range chunks {
		params := &telego.SendMessageParams{
			ChatID:    tu.ID(chatID),
			Text:      renderTelegramHTML(chunk),
			ParseMode: telego.ModeHTML,
		}
		if threadID != 0 {
			params.MessageThreadID = threadID
		}

		if _, err = c.bot.SendMessage(ctx, params); err != nil {
			logger.WarnCF("telegram", "HTML send failed, retrying as plain text", map[string]interface{}{
				"chat_id":     msg.ChatID,
				"chunk_index": i,
				"error":       err.Error(),
			})
			params.Text = chunk
			params.ParseMode = ""
			if _, err = c.bot.SendMessage(ctx, params); err != nil {
				lastErr = err
			}
		}
	}

	return lastErr
}

// Normalize turns a webhook update into an inbound message. It returns false
// for anything that is not a plain text message (edits, media, joins, ...);
// those produce no reply at all.
func (c *TelegramChannel) Normalize(update telego.Update) (bus.InboundMessage, bool) {
	message := update.Message
	if message == nil || message.From == nil {
		return bus.InboundMessage{}, false
	}
	if strings.TrimSpace(message.Text) == "" {
		return bus.InboundMessage{}, false
	}

	user := message.From
	chatIDStr := strconv.FormatInt(message.Chat.ID, 10)
	// Forum topics get a composite id so replies land in the right thread.
	if message.MessageThreadID != 0 {
		chatIDStr = fmt.Sprintf("%d:%d", message.Chat.ID, message.MessageThreadID)
	}

	metadata := map[string]string{
		"message_id": strconv.Itoa(message.MessageID),
		"username":   user.Username,
		"first_name": user.FirstName,
		"is_group":   strconv.FormatBool(message.Chat.Type != "private"),
	}

	return bus.InboundMessage{
		SenderID: strconv.FormatInt(user.ID, 10),
		ChatID:   chatIDStr,
		Content:  message.Text,
		Metadata: metadata,
	}, true
}

// SetWebhook registers url as the webhook endpoint, along with the secret
// token when one is configured.
func (c *TelegramChannel) SetWebhook(ctx context.Context, webhookURL string) error {
	if _, err := url.ParseRequestURI(webhookURL); err != nil {
		return fmt.Errorf("invalid webhook URL %q: %w", webhookURL, err)
	}
	return c.bot.SetWebhook(ctx, &telego.SetWebhookParams{
		URL:         webhookURL,
		SecretToken: c.secret,
	})
}

// WebhookInfo queries Telegram for the currently registered webhook.
func (c *TelegramChannel) WebhookInfo(ctx context.Context) (*telego.WebhookInfo, error) {
	return c.bot.GetWebhookInfo(ctx)
}

// DeleteWebhook unregisters the webhook.
func (c *TelegramChannel) DeleteWebhook(ctx context.Context) error {
	return c.bot.DeleteWebhook(ctx, &telego.DeleteWebhookParams{})
}

func parseCompositeChatID(chatIDStr string) (int64, int, error) {
	parts := strings.SplitN(chatIDStr, ":", 2)
	chatID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid chat ID format: %w", err)
	}

	var threadID int
	if len(parts) > 1 {
		threadID, err = strconv.Atoi(parts[1])
		if err != nil {
			return chatID, 0, fmt.Errorf("invalid thread ID format: %w", err)
		}
	}

	return chatID, threadID, nil
}
