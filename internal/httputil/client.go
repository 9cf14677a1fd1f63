// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/pdiddy/movie-search/pkg/types"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 8 << 20

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.Code)
}

// Client sends GET requests through a circuit breaker and the retry path
// and returns the body of successful responses.
type Client struct {
	HTTP       *http.Client
	MaxRetries int
	Breaker    *gobreaker.CircuitBreaker
	Log        *zap.Logger
}

// NewBreaker builds the circuit breaker used in front of a remote service.
// Only transport failures, 5xx and 429 count as failures; a 4xx reply or a
// cancelled context says nothing about the service's health.
func NewBreaker(name string, cfg types.BreakerConfig, log *zap.Logger) *gobreaker.CircuitBreaker {
	if log == nil {
		log = zap.NewNop()
	}
	minRequests := cfg.MinRequests
	if minRequests == 0 {
		minRequests = 5
	}
	ratio := cfg.FailureRatio
	if ratio <= 0 {
		ratio = 0.6
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.Interval,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= ratio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: countsAsSuccess,
	})
}

func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code < 500 && se.Code != http.StatusTooManyRequests
	}
	return false
}

// Get executes req and returns the response body. A non-2xx status yields
// a *StatusError; an open breaker yields gobreaker.ErrOpenState.
func (c *Client) Get(ctx context.Context, req *http.Request) ([]byte, error) {
	if c.Breaker == nil {
		return c.get(ctx, req)
	}
	out, err := c.Breaker.Execute(func() (interface{}, error) {
		return c.get(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return out.([]byte), nil
}

func (c *Client) get(ctx context.Context, req *http.Request) ([]byte, error) {
	log := c.Log
	if log == nil {
		log = zap.NewNop()
	}
	start := time.Now()

	resp, err := DoWithRetry(ctx, c.HTTP, req, c.MaxRetries, log)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("response",
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}
