// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package token

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sony/gobreaker"

	"github.com/danielhkuo/easel/competition"
	"github.com/danielhkuo/easel/metrics"
)

// StatusError is a non-2xx answer from the token service
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("token service returned %d: %s", e.Code, e.Body)
}

// Client talks to an external token ledger over HTTP. Calls go through a
// circuit breaker, and token decimals are cached since they never change.
type Client struct {
	baseURL  string
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker
	decimals *cache.Cache
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "token-service",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				slog.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
			},
		}),
		decimals: cache.New(time.Hour, 2*time.Hour),
	}
}

type decimalsResponse struct {
	Decimals uint32 `json:"decimals"`
}

type balanceResponse struct {
	Balance uint64 `json:"balance"`
}

type transferRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

func (c *Client) Decimals(ctx context.Context, token string) (uint32, error) {
	if v, ok := c.decimals.Get(token); ok {
		return v.(uint32), nil
	}

	var resp decimalsResponse
	path := "/tokens/" + url.PathEscape(token) + "/decimals"
	if err := c.call(ctx, "decimals", http.MethodGet, path, nil, &resp); err != nil {
		return 0, err
	}

	c.decimals.Set(token, resp.Decimals, cache.DefaultExpiration)
	return resp.Decimals, nil
}

func (c *Client) Balance(ctx context.Context, token, address string) (uint64, error) {
	var resp balanceResponse
	path := "/tokens/" + url.PathEscape(token) + "/balances/" + url.PathEscape(address)
	if err := c.call(ctx, "balance", http.MethodGet, path, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Balance, nil
}

func (c *Client) Transfer(ctx context.Context, token, from, to string, amount uint64) error {
	path := "/tokens/" + url.PathEscape(token) + "/transfers"
	body := transferRequest{From: from, To: to, Amount: amount}
	return c.call(ctx, "transfer", http.MethodPost, path, body, nil)
}

func (c *Client) call(ctx context.Context, op, method, path string, body, out interface{}) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		var reader io.Reader
		if body != nil {
			payload, err := json.Marshal(body)
			if err != nil {
				return nil, fmt.Errorf("failed to encode request: %w", err)
			}
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
		}

		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return nil, fmt.Errorf("failed to decode response: %w", err)
			}
		}
		return nil, nil
	})

	outcome := "ok"
	if err != nil {
		outcome = "error"
		slog.Error("token service call failed", "operation", op, "path", path, "error", err)
	}
	metrics.TokenCalls.WithLabelValues(op, outcome).Inc()
	return err
}

var _ competition.TokenService = (*Client)(nil)
