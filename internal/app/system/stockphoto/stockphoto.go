// internal/app/system/stockphoto/stockphoto.go

// Package stockphoto searches a stock-photo provider for imagery editors can
// attach to wineries and wines. A missing API key is not an error: Search
// returns a fixed placeholder set so the feature degrades instead of the
// server refusing to start.
package stockphoto

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://api.pexels.com/v1"
	defaultPerPage = 15
)

// Photo is one search result in provider-neutral form.
type Photo struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Photographer string `json:"photographer"`
	Alt          string `json:"alt"`
}

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// New builds a client. An empty apiKey yields a client that only serves
// placeholders.
func New(apiKey string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

// Configured reports whether a provider key is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

// Search returns photos matching query. Without an API key, or when the
// provider errors, it returns Placeholders so callers always get a usable
// result set.
func (c *Client) Search(ctx context.Context, query string, perPage int) ([]Photo, error) {
	if !c.Configured() {
		return Placeholders(query), nil
	}
	if perPage <= 0 || perPage > 80 {
		perPage = defaultPerPage
	}

	u := fmt.Sprintf("%s/search?query=%s&per_page=%d", c.baseURL, url.QueryEscape(query), perPage)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("stock photo search failed; serving placeholders",
			zap.String("query", query), zap.Error(err))
		return Placeholders(query), nil
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		c.log.Warn("stock photo provider error; serving placeholders",
			zap.String("query", query), zap.String("status", resp.Status))
		return Placeholders(query), nil
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode stock photo response: %w", err)
	}

	photos := make([]Photo, 0, len(body.Photos))
	for _, p := range body.Photos {
		photos = append(photos, Photo{
			ID:           fmt.Sprintf("%d", p.ID),
			URL:          p.Src.Large,
			ThumbnailURL: p.Src.Medium,
			Photographer: p.Photographer,
			Alt:          p.Alt,
		})
	}
	return photos, nil
}

// Placeholders is the fixed result set served when no provider is configured.
func Placeholders(query string) []Photo {
	alt := strings.TrimSpace(query)
	if alt == "" {
		alt = "wine"
	}
	out := make([]Photo, 0, 3)
	for i := 1; i <= 3; i++ {
		out = append(out, Photo{
			ID:           fmt.Sprintf("placeholder-%d", i),
			URL:          fmt.Sprintf("https://placehold.co/1200x800?text=%s", url.QueryEscape(alt)),
			ThumbnailURL: fmt.Sprintf("https://placehold.co/300x200?text=%s", url.QueryEscape(alt)),
			Photographer: "Placeholder",
			Alt:          alt,
		})
	}
	return out
}

type searchResponse struct {
	Photos []struct {
		ID           int64  `json:"id"`
		Photographer string `json:"photographer"`
		Alt          string `json:"alt"`
		Src          struct {
			Large  string `json:"large"`
			Medium string `json:"medium"`
		} `json:"src"`
	} `json:"photos"`
}
