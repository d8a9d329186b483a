package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/Rorical/BloodDesk/internal/models"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultRatePerSec   = 5
	defaultBurst        = 5
	defaultMaxFailures  = 5
	defaultBreakerReset = 30 * time.Second
	maxErrorBody        = 4 << 10
)

// HTTPConfig configures the hospital API client.
type HTTPConfig struct {
	BaseURL     string
	APIToken    string
	Operator    string
	Timeout     time.Duration
	RatePerSec  float64
	Burst       int
	MaxFailures uint32
}

// HTTPClient is the Backend served by the hospital REST API.
type HTTPClient struct {
	baseURL  *url.URL
	token    string
	operator string
	http     *http.Client
	limiter  *rate.Limiter
	breaker  *gobreaker.CircuitBreaker[[]byte]
	logger   *slog.Logger
}

type listResponse struct {
	Requests []models.BloodRequest `json:"requests"`
}

type rejectBody struct {
	Reason   string `json:"reason"`
	Operator string `json:"operator,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
}

// NewHTTPClient validates cfg and builds a client. Zero-valued limits fall
// back to defaults.
func NewHTTPClient(cfg HTTPConfig, logger *slog.Logger) (*HTTPClient, error) {
	if logger == nil {
		logger = slog.Default()
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must be http or https", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	perSec := cfg.RatePerSec
	if perSec == 0 {
		perSec = defaultRatePerSec
	}
	burst := cfg.Burst
	if burst == 0 {
		burst = defaultBurst
	}
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = defaultMaxFailures
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "hospital-api",
		MaxRequests: 1,
		Timeout:     defaultBreakerReset,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
		// client errors say nothing about the health of the API
		IsSuccessful: func(err error) bool {
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				return apiErr.StatusCode < 500
			}
			return err == nil
		},
	})

	return &HTTPClient{
		baseURL:  base,
		token:    cfg.APIToken,
		operator: cfg.Operator,
		http:     &http.Client{Timeout: timeout},
		limiter:  rate.NewLimiter(rate.Limit(perSec), burst),
		breaker:  breaker,
		logger:   logger,
	}, nil
}

func (c *HTTPClient) ListPending(ctx context.Context) ([]models.BloodRequest, error) {
	data, err := c.do(ctx, "list pending requests", http.MethodGet, "/api/blood-requests?status=pending", nil)
	if err != nil {
		return nil, err
	}
	var resp listResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode pending requests: %w", err)
	}
	return resp.Requests, nil
}

func (c *HTTPClient) Reject(ctx context.Context, code, reason string) error {
	body, err := json.Marshal(rejectBody{Reason: reason, Operator: c.operator})
	if err != nil {
		return fmt.Errorf("encode rejection: %w", err)
	}
	path := "/api/blood-requests/" + url.PathEscape(code) + "/reject"
	_, err = c.do(ctx, "reject request "+code, http.MethodPost, path, body)
	return err
}

func (c *HTTPClient) do(ctx context.Context, operation, method, path string, body []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	return c.breaker.Execute(func() ([]byte, error) {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
		if err != nil {
			return nil, fmt.Errorf("%s: create request: %w", operation, err)
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		start := time.Now()
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", operation, err)
		}
		defer resp.Body.Close()

		c.logger.Debug("hospital api call",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"duration", time.Since(start),
		)

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, decodeAPIError(operation, resp)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%s: read response: %w", operation, err)
		}
		return data, nil
	})
}

func decodeAPIError(operation string, resp *http.Response) error {
	apiErr := &APIError{Operation: operation, StatusCode: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var eb errorBody
	if json.Unmarshal(raw, &eb) == nil && eb.Error != "" {
		apiErr.Message = eb.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	switch resp.StatusCode {
	case http.StatusNotFound:
		apiErr.Err = ErrRequestNotFound
	case http.StatusConflict:
		apiErr.Err = ErrNotPending
	}
	return apiErr
}
