package scenario

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ShopClient fires HTTP requests back at the demo shop itself. Responses
// are drained and discarded; the handler being hit produces the telemetry
// the scenario exists for.
type ShopClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewShopClient(baseURL string) *ShopClient {
	return &ShopClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Get issues a GET against the shop.
func (c *ShopClient) Get(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req)
}

// Post issues a POST with a JSON body against the shop.
func (c *ShopClient) Post(ctx context.Context, path string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *ShopClient) do(req *http.Request) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call shop: %w", err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	io.Copy(io.Discard, resp.Body)
	return nil
}
