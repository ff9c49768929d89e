// Package sms sends transactional text messages through a pluggable
// provider. Sends are best-effort: callers log failures and move on, an
// undelivered SMS must never fail the operation that triggered it.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/craftroots/artisan-api/config"
	"github.com/craftroots/artisan-api/logger"
)

// Sender delivers a single message to a normalized 10-digit phone number.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

var ErrInvalidPhone = errors.New("invalid phone number")

// NormalizePhone strips separators and a +91 country prefix. The result must
// be exactly 10 digits.
func NormalizePhone(phone string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, strings.TrimSpace(phone))
	cleaned = strings.TrimPrefix(cleaned, "+91")

	if len(cleaned) != 10 {
		return "", ErrInvalidPhone
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return "", ErrInvalidPhone
		}
	}
	return cleaned, nil
}

// New builds the Sender selected by SMS_PROVIDER. Unknown values fall back to
// the console provider.
func New(cfg config.SMSConfig) Sender {
	client := &http.Client{Timeout: 10 * time.Second}
	switch cfg.Provider {
	case "twilio":
		return &Twilio{sid: cfg.TwilioSID, token: cfg.TwilioToken, from: cfg.TwilioFrom, client: client}
	case "fast2sms":
		return &Fast2SMS{apiKey: cfg.Fast2SMSKey, senderID: cfg.Fast2SMSSender, client: client}
	default:
		return Console{}
	}
}

// Console logs the message instead of sending it. Default in development.
type Console struct{}

func (Console) Send(_ context.Context, phone, message string) error {
	log := logger.Get()
	log.Info().Str("phone", phone).Str("message", message).Msg("sms (console)")
	return nil
}

// Twilio sends through the Twilio REST API.
type Twilio struct {
	sid, token, from string
	client           *http.Client
}

func (t *Twilio) Send(ctx context.Context, phone, message string) error {
	if t.sid == "" || t.token == "" || t.from == "" {
		return errors.New("twilio credentials not configured")
	}

	form := url.Values{
		"To":   {"+91" + phone},
		"From": {t.from},
		"Body": {message},
	}
	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", t.sid)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(t.sid, t.token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("twilio: status %d: %s", resp.StatusCode, body)
	}
	return nil
}

// Fast2SMS sends through the Fast2SMS bulk API (transactional route).
type Fast2SMS struct {
	apiKey, senderID string
	client           *http.Client
}

func (f *Fast2SMS) Send(ctx context.Context, phone, message string) error {
	if f.apiKey == "" {
		return errors.New("fast2sms api key not configured")
	}

	payload, err := json.Marshal(map[string]any{
		"route":     "v3",
		"sender_id": f.senderID,
		"message":   message,
		"language":  "english",
		"flash":     0,
		"numbers":   phone,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://www.fast2sms.com/dev/bulkV2", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("authorization", f.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var result struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("fast2sms: decode response: %w", err)
	}
	if resp.StatusCode >= 300 || result.Status != "OK" {
		return fmt.Errorf("fast2sms: status %d (%s)", resp.StatusCode, result.Status)
	}
	return nil
}
