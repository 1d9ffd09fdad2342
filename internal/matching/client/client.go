// Package client is the HTTP client for the external matching engine.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eventcrew/stagecrew/internal/config"
	"github.com/eventcrew/stagecrew/internal/matching/domain"
)

// Client talks to the matching engine. Requests are fired once with a
// timeout and never retried; callers degrade gracefully on failure.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func New(cfg config.Config, log *zap.Logger) *Client {
	timeout := time.Duration(cfg.Matching.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.Matching.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.Named("matching.client"),
	}
}

// Contractors fetches the contractor listing, passing the caller's
// query through to the engine untouched.
func (c *Client) Contractors(ctx context.Context, query url.Values) ([]domain.Contractor, error) {
	var payload struct {
		Contractors []domain.Contractor `json:"contractors"`
	}
	if err := c.get(ctx, "/contractors", query, &payload); err != nil {
		return nil, err
	}
	return payload.Contractors, nil
}

// Score fetches one pre-computed score component.
func (c *Client) Score(ctx context.Context, component domain.Component, contractorID, eventID string) (float64, error) {
	query := url.Values{}
	query.Set("contractor_id", contractorID)
	if eventID != "" {
		query.Set("event_id", eventID)
	}

	var payload struct {
		Score float64 `json:"score"`
	}
	if err := c.get(ctx, "/"+string(component), query, &payload); err != nil {
		return 0, err
	}
	return payload.Score, nil
}

// Ranking fetches the engine's ranked contractor list for an event.
func (c *Client) Ranking(ctx context.Context, eventID string) ([]domain.RankingEntry, error) {
	query := url.Values{}
	if eventID != "" {
		query.Set("event_id", eventID)
	}

	var payload struct {
		Ranking []domain.RankingEntry `json:"ranking"`
	}
	if err := c.get(ctx, "/ranking", query, &payload); err != nil {
		return nil, err
	}
	return payload.Ranking, nil
}

// SubmitInquiry forwards an inquiry to the engine.
func (c *Client) SubmitInquiry(ctx context.Context, userID string, in domain.InquiryInput) error {
	body, err := json.Marshal(map[string]string{
		"user_id":       userID,
		"contractor_id": in.ContractorID,
		"event_id":      in.EventID,
		"message":       in.Message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/inquiry", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("inquiry request failed", zap.Error(err))
		return domain.ErrEngineUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("inquiry rejected", zap.Int("status", resp.StatusCode))
		return domain.ErrEngineUnavailable
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("engine request failed", zap.String("path", path), zap.Error(err))
		return domain.ErrEngineUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("engine returned error", zap.String("path", path), zap.Int("status", resp.StatusCode))
		return domain.ErrEngineUnavailable
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode engine response: %w", err)
	}
	return nil
}
