// Package translate wraps the dictionary proxy behind the bot's "fy"
// command: GET {base}/define?word=… returning a pre-formatted text or a
// list of per-part-of-speech definitions.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jiangdengke/qq-bot/internal/cache"
)

const (
	lookupTimeout = 10 * time.Second

	// Definitions are stable, so cached lookups stay valid for a while.
	cacheSize = 512
	cacheTTL  = time.Hour
)

type Client struct {
	baseURL string
	http    *http.Client
	defs    *cache.LRU[string]
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: lookupTimeout},
		defs:    cache.NewLRU[string](cacheSize, cacheTTL),
	}
}

type definition struct {
	Pos  string `json:"pos"`
	Tran string `json:"tran"`
}

type defineResponse struct {
	Text        string       `json:"text"`
	Definitions []definition `json:"definitions"`
}

// Define looks a word up and returns display-ready text. When the proxy
// sends no pre-formatted text it falls back to joining the definitions.
func (c *Client) Define(ctx context.Context, word string) (string, error) {
	if text, ok := c.defs.Get(word); ok {
		return text, nil
	}

	u := c.baseURL + "/define?word=" + url.QueryEscape(word)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("build define request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("define request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("dictionary proxy HTTP %d", resp.StatusCode)
	}

	var body defineResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode define response: %w", err)
	}

	if text := strings.TrimSpace(body.Text); text != "" {
		c.defs.Set(word, text)
		return text, nil
	}

	var sb strings.Builder
	for _, d := range body.Definitions {
		if strings.TrimSpace(d.Tran) == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		if pos := strings.TrimSpace(d.Pos); pos != "" {
			sb.WriteString(pos)
			sb.WriteByte(' ')
		}
		sb.WriteString(d.Tran)
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no definition for %q", word)
	}
	c.defs.Set(word, sb.String())
	return sb.String(), nil
}
