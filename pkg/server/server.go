// DeskBot - Telegram customer support bot
// License: MIT
//
// Copyright (c) 2026 DeskBot contributors

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mymmrac/telego"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"deskbot/pkg/bus"
	"deskbot/pkg/logger"
	"deskbot/pkg/metrics"
)

// secretTokenHeader is set by Telegram on webhook deliveries when a secret
// token was registered.
const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// Channel is the slice of the Telegram channel the transport needs.
type Channel interface {
	VerifySecret(header string) bool
	Normalize(update telego.Update) (bus.InboundMessage, bool)
	SetWebhook(ctx context.Context, webhookURL string) error
	WebhookInfo(ctx context.Context) (*telego.WebhookInfo, error)
}

// Server is the webhook transport: it acknowledges every delivery fast and
// leaves completion and delivery to the responder workers behind the bus.
type Server struct {
	engine  *gin.Engine
	broker  bus.Publisher
	channel Channel
	version string
}

func New(broker bus.Publisher, channel Channel, version string) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:  engine,
		broker:  broker,
		channel: channel,
		version: version,
	}

	engine.GET("/", s.health)
	engine.GET("/set_webhook", s.setWebhook)
	engine.POST("/webhook", s.webhook)
	engine.GET("/webhook_info", s.webhookInfo)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoCF("server", "HTTP server listening", map[string]interface{}{"addr": addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "deskbot",
		"version": s.version,
	})
}

// webhook receives one Telegram update. It always answers 200 so Telegram
// never retries: a failed update is logged and dropped, not replayed.
func (s *Server) webhook(c *gin.Context) {
	if !s.channel.VerifySecret(c.GetHeader(secretTokenHeader)) {
		metrics.WebhookUpdates.WithLabelValues("unauthorized").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "bad secret token"})
		return
	}

	corrID := uuid.NewString()[:8]

	var update telego.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		metrics.WebhookUpdates.WithLabelValues("malformed").Inc()
		logger.WarnCF("server", "Dropping unparseable update", map[string]interface{}{
			"corr_id": corrID,
			"error":   err.Error(),
		})
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": "invalid update payload"})
		return
	}

	msg, ok := s.channel.Normalize(update)
	if !ok {
		metrics.WebhookUpdates.WithLabelValues("ignored").Inc()
		logger.DebugCF("server", "Ignoring update without text message", map[string]interface{}{
			"corr_id":   corrID,
			"update_id": update.UpdateID,
		})
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	s.broker.PublishInbound(msg)
	metrics.WebhookUpdates.WithLabelValues("accepted").Inc()
	logger.InfoCF("server", "Update queued", map[string]interface{}{
		"corr_id":   corrID,
		"update_id": update.UpdateID,
		"sender_id": msg.SenderID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) setWebhook(c *gin.Context) {
	webhookURL := c.Query("webhook_url")
	if webhookURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "webhook_url query parameter is required"})
		return
	}

	if err := s.channel.SetWebhook(c.Request.Context(), webhookURL); err != nil {
		logger.ErrorCF("server", "Failed to set webhook", map[string]interface{}{
			"url":   webhookURL,
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to set webhook: " + err.Error()})
		return
	}

	logger.InfoCF("server", "Webhook registered", map[string]interface{}{"url": webhookURL})
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "webhook set successfully",
		"webhook_url": webhookURL,
	})
}

func (s *Server) webhookInfo(c *gin.Context) {
	info, err := s.channel.WebhookInfo(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to get webhook info: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"webhook_info": info,
	})
}
