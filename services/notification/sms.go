package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"buskpod/config"
	"buskpod/models"
)

// SMSSender delivers notifications through the configured HTTP SMS gateway.
type SMSSender struct {
	HTTPClient *http.Client
}

func NewSMSSender() *SMSSender {
	return &SMSSender{HTTPClient: &http.Client{Timeout: 10 * time.Second}}
}

// Send renders the payload template and posts it to the gateway.
func (s *SMSSender) Send(ctx context.Context, payload models.NotificationPayload) error {
	cfg := config.AppConfig
	if cfg.SMSGatewayURL == "" {
		return fmt.Errorf("sms gateway is not configured")
	}

	body, err := RenderBody(payload.Template, payload.Context)
	if err != nil {
		return err
	}

	reqBody, err := json.Marshal(map[string]string{
		"to":      payload.To,
		"message": body,
	})
	if err != nil {
		return fmt.Errorf("error encoding sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.SMSGatewayURL, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("error building sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cfg.SMSGatewayKey != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.SMSGatewayKey)
	}

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("error calling sms gateway: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}
