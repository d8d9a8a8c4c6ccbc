package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"cart-ticketing-service/internal/models"
)

// apiClient is the shared plumbing for the collaborator REST clients. Every
// request carries the technical service token; 404 maps to the caller's
// not-found sentinel and anything else that goes wrong maps to
// models.ErrUpstreamUnavailable, which callers of this service may retry.
type apiClient struct {
	baseURL string
	client  *http.Client
	tokens  *TokenProvider
}

func newAPIClient(baseURL string, tokens *TokenProvider) apiClient {
	return apiClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
	}
}

func (c *apiClient) get(ctx context.Context, path string, notFound error, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, notFound, out)
}

func (c *apiClient) do(ctx context.Context, method, path string, body interface{}, notFound error, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("failed to get technical token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return notFound
	case resp.StatusCode >= 400:
		return fmt.Errorf("%w: %s returned status %d", models.ErrUpstreamUnavailable, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", models.ErrUpstreamUnavailable, err)
	}
	return nil
}
