// Package unsplash resolves article cover images through the Unsplash search API.
package unsplash

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const (
	UnsplashAPIURL = "https://api.unsplash.com"

	// DefaultPerPage is the size of the result page we pick covers from.
	DefaultPerPage = 10
)

// Client provides photo search via the Unsplash API.
type Client struct {
	client    *resty.Client
	accessKey string
}

// SearchResponse represents a photo search response.
type SearchResponse struct {
	Total      int     `json:"total"`
	TotalPages int     `json:"total_pages"`
	Results    []Photo `json:"results"`
}

// Photo represents a single search result.
type Photo struct {
	ID          string    `json:"id"`
	Description string    `json:"description,omitempty"`
	URLs        PhotoURLs `json:"urls"`
}

// PhotoURLs holds the renditions of a photo.
type PhotoURLs struct {
	Raw     string `json:"raw,omitempty"`
	Full    string `json:"full,omitempty"`
	Regular string `json:"regular,omitempty"`
	Small   string `json:"small,omitempty"`
	Thumb   string `json:"thumb,omitempty"`
}

// Best returns the preferred rendition for a cover image.
func (u PhotoURLs) Best() string {
	if u.Regular != "" {
		return u.Regular
	}
	return u.Small
}

// NewClient creates a new Unsplash client. An empty baseURL uses the public API.
func NewClient(accessKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = UnsplashAPIURL
	}
	return &Client{
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(15 * time.Second),
		accessKey: accessKey,
	}
}

// Enabled reports whether an access key is configured.
func (c *Client) Enabled() bool {
	return c.accessKey != ""
}

// SearchPhotos runs a single landscape photo search.
func (c *Client) SearchPhotos(ctx context.Context, query string, perPage int) (*SearchResponse, error) {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	log.Debug().
		Str("query", query).
		Int("per_page", perPage).
		Msg("Unsplash search")

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetHeader("Authorization", "Client-ID "+c.accessKey).
		SetQueryParams(map[string]string{
			"query":       query,
			"per_page":    strconv.Itoa(perPage),
			"orientation": "landscape",
		}).
		Get("/search/photos")

	if err != nil {
		return nil, fmt.Errorf("unsplash search failed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("unsplash API returned %d: %s", resp.StatusCode(), resp.String())
	}

	var result SearchResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse unsplash response: %w", err)
	}

	log.Debug().
		Int("results", len(result.Results)).
		Msg("Unsplash search complete")

	return &result, nil
}
