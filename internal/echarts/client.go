// Package echarts talks to the external chart rendering service: it posts
// an option to POST {base}/render and gets PNG bytes back. It is the only
// place that knows the render wire protocol.
package echarts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jiangdengke/qq-bot/internal/charts"
	"github.com/jiangdengke/qq-bot/internal/core"
)

const (
	renderTimeout = 10 * time.Second

	barWidth  = 1000
	barHeight = 380
	pieWidth  = 560
	pieHeight = 380

	// Near-white page background the transparent option backgrounds
	// show through.
	background = "#FCFCFF"
)

type Client struct {
	baseURL string
	outDir  string
	http    *http.Client
}

// NewClient builds a render client against baseURL (for example
// "http://localhost:5999"), writing finished PNGs under outDir.
func NewClient(baseURL, outDir string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		outDir:  outDir,
		http:    &http.Client{Timeout: renderTimeout},
	}
}

type renderRequest struct {
	Option          charts.Option `json:"option"`
	Width           int           `json:"width"`
	Height          int           `json:"height"`
	BackgroundColor string        `json:"backgroundColor"`
}

// Render posts one option and returns the PNG bytes. A non-200 status, an
// empty body or a timeout is one descriptive error; there is no retry here,
// the user can resubmit the command.
func (c *Client) Render(ctx context.Context, option charts.Option, width, height int, bg string) ([]byte, error) {
	body, err := json.Marshal(renderRequest{
		Option:          option,
		Width:           width,
		Height:          height,
		BackgroundColor: bg,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal render request: %w", err)
	}

	url := c.baseURL + "/render"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	slog.InfoContext(ctx, "Rendering chart",
		"url", url, "width", width, "height", height, "payload_bytes", len(body))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render request: %w", err)
	}
	defer resp.Body.Close()

	png, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read render response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("renderer HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(png)))
	}
	if len(png) == 0 {
		return nil, fmt.Errorf("renderer returned empty body")
	}
	return png, nil
}

// RenderMonthDailyBar renders the wide per-day bar chart and returns the
// written file path (month-daily-{userID}.png under the out dir).
func (c *Client) RenderMonthDailyBar(ctx context.Context, userID int64, s core.Summary) (string, error) {
	name := fmt.Sprintf("month-daily-%d.png", userID)
	return c.renderToFile(ctx, charts.DailyBar(s), barWidth, barHeight, name)
}

// RenderMonthTypePie renders the category donut and returns the written
// file path (month-type-{userID}.png under the out dir).
func (c *Client) RenderMonthTypePie(ctx context.Context, userID int64, s core.Summary) (string, error) {
	name := fmt.Sprintf("month-type-%d.png", userID)
	return c.renderToFile(ctx, charts.TypePie(s), pieWidth, pieHeight, name)
}

func (c *Client) renderToFile(ctx context.Context, option charts.Option, width, height int, name string) (string, error) {
	png, err := c.Render(ctx, option, width, height, background)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(c.outDir, 0755); err != nil {
		return "", fmt.Errorf("create chart out dir: %w", err)
	}
	out := filepath.Join(c.outDir, name)
	if err := os.WriteFile(out, png, 0644); err != nil {
		return "", fmt.Errorf("write chart file: %w", err)
	}

	slog.InfoContext(ctx, "Chart saved", "path", out, "bytes", len(png))
	return out, nil
}
