// Package backend implements the client for the price aggregation service.
// The service is an opaque collaborator: it accepts a query and answers with
// either a result envelope or a logical {error} payload.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mrivarola/ofertas/internal/httputil"
	"github.com/mrivarola/ofertas/internal/models"
	"golang.org/x/time/rate"
)

const maxRetries = 2

// Error is a logical failure reported by the backend itself, surfaced
// verbatim to the user.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Client talks to the aggregation backend.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *rate.Limiter
}

// New creates a Client. limiter may be nil to disable rate limiting.
func New(baseURL string, limiter *rate.Limiter, timeout time.Duration) *Client {
	return &Client{
		http:    httputil.NewHTTPClient(timeout),
		baseURL: strings.TrimRight(baseURL, "/"),
		limiter: limiter,
	}
}

// Search runs a full multi-provider search for query.
func (c *Client) Search(ctx context.Context, query string) (*models.Envelope, error) {
	var env models.Envelope
	if err := c.post(ctx, "/buscar", query, &env); err != nil {
		return nil, err
	}
	if env.Error != "" {
		return nil, &Error{Message: env.Error}
	}
	return &env, nil
}

type retryResponse struct {
	Error        string           `json:"error"`
	PreciosGamer []models.Product `json:"preciosgamer"`
}

// RetryPreciosGamer re-fetches only the preciosgamer provider for query.
func (c *Client) RetryPreciosGamer(ctx context.Context, query string) ([]models.Product, error) {
	var out retryResponse
	if err := c.post(ctx, "/buscar/preciosgamer", query, &out); err != nil {
		return nil, err
	}
	if out.Error != "" {
		return nil, &Error{Message: out.Error}
	}
	return out.PreciosGamer, nil
}

func (c *Client) post(ctx context.Context, path, query string, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip, br")

	resp, err := httputil.DoWithRetry(c.http, req, maxRetries)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := httputil.ReadBody(resp)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
