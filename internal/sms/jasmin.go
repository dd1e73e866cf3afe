// Package sms delivers invite links through a Jasmin SMS gateway.  The
// gateway speaks plain HTTP with basic auth; delivery is best-effort and
// never blocks or rolls back token issuance.
package sms

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Config carries the gateway connection settings, loaded from the
// environment by the config package.
type Config struct {
	BaseURL  string // Jasmin REST endpoint, e.g. http://jasmin:8080
	User     string
	Password string
	From     string // sender id shown to the patient
}

// Enabled reports whether the gateway is configured at all.  With an
// empty config the client logs and skips sends instead of failing.
func (c Config) Enabled() bool {
	return c.BaseURL != "" && c.User != "" && c.From != ""
}

// Client wraps a resty HTTP client bound to one Jasmin gateway.
type Client struct {
	http   *resty.Client
	cfg    Config
	logger *zap.Logger
}

// NewClient builds a gateway client with retries and sane timeouts.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetBasicAuth(cfg.User, cfg.Password).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Client{http: httpClient, cfg: cfg, logger: logger}
}

// sendRequest is the Jasmin /messages payload.
type sendRequest struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Content string `json:"content"`
}

// SendInvite sends the invitation SMS with the assessment link.  Errors
// are returned for the caller to log; they must never fail the issuance
// that triggered the send.
func (c *Client) SendInvite(ctx context.Context, phone, link string) error {
	if !c.cfg.Enabled() {
		c.logger.Warn("sms gateway not configured, skipping send")
		return fmt.Errorf("sms gateway not configured")
	}
	to := NormalizePhone(phone)
	body := sendRequest{
		To:      to,
		From:    c.cfg.From,
		Content: fmt.Sprintf("Hola, le invitamos a realizar su evaluación de salud en Alcolens: %s", link),
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post("/messages")
	if err != nil {
		return fmt.Errorf("jasmin send: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("jasmin send: status %d", resp.StatusCode())
	}
	c.logger.Info("invite sms sent", zap.String("to", to))
	return nil
}

// NormalizePhone strips spaces and defaults bare national numbers to the
// Spanish country code, matching how clinicians enter them.
func NormalizePhone(phone string) string {
	p := strings.ReplaceAll(phone, " ", "")
	if strings.HasPrefix(p, "+") {
		return p
	}
	return "+34" + p
}
