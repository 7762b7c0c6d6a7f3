package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/dhabedank/genchecklist/internal/core"
)

// maxResponseSize caps how much of a gateway reply is read.
const maxResponseSize = 8 << 20

// Client speaks the /api/generate wire contract. It satisfies core.Requester.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the gateway at baseURL. A zero timeout
// leaves the transport defaults in place.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Request posts req and returns the decoded JSON reply. Non-2xx replies
// become *Error carrying the server's message.
func (c *Client) Request(ctx context.Context, req core.GenerationRequest) (any, error) {
	body, err := sonic.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode generation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build gateway request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er ErrorResponse
		if err := sonic.Unmarshal(data, &er); err != nil || er.Error == "" {
			er.Error = http.StatusText(resp.StatusCode)
		}
		return nil, &Error{Status: resp.StatusCode, Message: er.Error, Details: er.Details}
	}

	var value any
	if err := sonic.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}
	return value, nil
}
