package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrUnavailable wraps every transport or protocol failure of the
// classifier. Callers treat it as a degraded annotation, never as a
// submission failure.
var ErrUnavailable = errors.New("sentiment classifier unavailable")

type analyzeRequest struct {
	Comment string `json:"comment"`
}

type analyzeResponse struct {
	Sentiment string `json:"sentiment"`
}

// Client calls the external sentiment-analysis service: one synchronous
// request per comment, at-most-once, no retries.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		timeout: timeout,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Analyze(ctx context.Context, comment string) (string, error) {
	payload, err := json.Marshal(analyzeRequest{Comment: comment})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sentiment-analysis", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var parsed analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return parsed.Sentiment, nil
}
