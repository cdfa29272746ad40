package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tourbase/tourbase/internal/config"
	"github.com/tourbase/tourbase/internal/subscription/domain"
	"go.uber.org/zap"
)

type httpClient struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// NewClient builds the JSON-over-HTTPS billing client.
func NewClient(cfg config.Config, log *zap.Logger) domain.Client {
	return &httpClient{
		baseURL: cfg.BillingBaseURL,
		http:    &http.Client{Timeout: cfg.BillingTimeout},
		log:     log.Named("billing.client"),
	}
}

func (c *httpClient) Fetch(ctx context.Context, token string) (*domain.Record, error) {
	if c.baseURL == "" {
		return nil, domain.ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/subscription", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemote, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, domain.ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrRemote, resp.StatusCode)
	}

	var payload struct {
		Subscription *domain.Record `json:"subscription"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemote, err)
	}
	return payload.Subscription, nil
}

func (c *httpClient) Cancel(ctx context.Context, token, subscriptionID string) error {
	if c.baseURL == "" {
		return domain.ErrNotConfigured
	}
	if strings.TrimSpace(subscriptionID) == "" {
		return fmt.Errorf("%w: empty subscription id", domain.ErrRemote)
	}

	body, err := json.Marshal(map[string]string{"subscription_id": subscriptionID})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/subscription/cancel", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRemote, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return domain.ErrUnauthorized
	}

	var remoteErr struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&remoteErr); err == nil && remoteErr.Error != "" {
		return fmt.Errorf("%w: %s", domain.ErrRemote, remoteErr.Error)
	}
	return fmt.Errorf("%w: status %d", domain.ErrRemote, resp.StatusCode)
}
