// Package tip fetches a short motivational study tip from a
// zenquotes-compatible API. Tips are purely decorative: fetching is
// best effort and falls back to a built-in list on any failure.
package tip

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"time"
)

// defaultTip is the last-resort tip when even the fallback list is
// unavailable to pick from.
const defaultTip = "Stay focused and keep learning!"

// fallbackTips is served when the API is unreachable or malformed.
var fallbackTips = []string{
	"Break your study sessions into manageable chunks.",
	"Take regular breaks to maintain focus.",
	"Review your notes regularly to reinforce learning.",
	"Stay hydrated and get enough sleep.",
	"Set specific goals for each study session.",
}

// Tip is one motivational study tip.
type Tip struct {
	Text   string `json:"text"`
	Author string `json:"author,omitempty"`
}

// Client fetches study tips over HTTP.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a tip client for the given endpoint.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch returns a study tip. It never fails: any transport, status, or
// decode problem yields a tip from the local fallback list instead.
func (c *Client) Fetch(ctx context.Context) Tip {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return fallback()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fallback()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fallback()
	}

	// The zenquotes payload is an array of {"q": quote, "a": author}.
	var payload []struct {
		Q string `json:"q"`
		A string `json:"a"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || len(payload) == 0 {
		return fallback()
	}

	text := payload[0].Q
	if text == "" {
		text = defaultTip
	}
	return Tip{Text: text, Author: payload[0].A}
}

// fallback picks a random tip from the built-in list.
func fallback() Tip {
	return Tip{Text: fallbackTips[rand.IntN(len(fallbackTips))]}
}
