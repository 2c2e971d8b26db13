// Package places is a client for the Google Places text search endpoint,
// used to find a restaurant's phone number before dialing it.
package places

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL       = "https://places.googleapis.com"
	maxResponseSizeBytes = 2 << 20

	searchFieldMask = "places.displayName,places.formattedAddress," +
		"places.nationalPhoneNumber,places.internationalPhoneNumber"
)

var ErrNoResults = errors.New("no places matched the query")

type Config struct {
	BaseURL string        `envconfig:"BASE_URL" split_words:"true" default:"https://places.googleapis.com"`
	APIKey  string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
}

// Place is one text search hit, reduced to the fields the skills read.
type Place struct {
	Name               string `json:"name"`
	Address            string `json:"address,omitempty"`
	NationalPhone      string `json:"national_phone,omitempty"`
	InternationalPhone string `json:"international_phone,omitempty"`
}

// Phone returns the best number to dial, preferring the international form.
func (p *Place) Phone() string {
	if p == nil {
		return ""
	}
	if p.InternationalPhone != "" {
		return p.InternationalPhone
	}
	return p.NationalPhone
}

// ClientOption customizes Client.
type ClientOption func(*Client)

func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid places base url: %w", err)
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("places api key is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

func MustNew(cfg Config, opts ...ClientOption) *Client {
	client, err := NewClient(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return client
}

type searchTextPayload struct {
	TextQuery      string `json:"textQuery"`
	IncludedType   string `json:"includedType,omitempty"`
	MaxResultCount int    `json:"maxResultCount,omitempty"`
}

type searchTextResponse struct {
	Places []placePayload `json:"places"`
}

type placePayload struct {
	DisplayName              displayNamePayload `json:"displayName"`
	FormattedAddress         string             `json:"formattedAddress"`
	NationalPhoneNumber      string             `json:"nationalPhoneNumber"`
	InternationalPhoneNumber string             `json:"internationalPhoneNumber"`
}

type displayNamePayload struct {
	Text string `json:"text"`
}

// SearchText runs one text search query and returns up to maxResults hits.
func (c *Client) SearchText(ctx context.Context, query string, maxResults int) ([]Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("search query is required")
	}
	if maxResults <= 0 {
		maxResults = 5
	}

	return c.search(ctx, searchTextPayload{
		TextQuery:      query,
		MaxResultCount: maxResults,
	})
}

// FindRestaurant searches for a restaurant by name, optionally narrowed to
// an area, and returns the top hit.
func (c *Client) FindRestaurant(ctx context.Context, name, near string) (*Place, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("restaurant name is required")
	}

	query := name
	if near = strings.TrimSpace(near); near != "" {
		query = name + " in " + near
	}

	results, err := c.search(ctx, searchTextPayload{
		TextQuery:      query,
		IncludedType:   "restaurant",
		MaxResultCount: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoResults, query)
	}
	return &results[0], nil
}

func (c *Client) search(ctx context.Context, payload searchTextPayload) ([]Place, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal search payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/places:searchText", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", searchFieldMask)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute search request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("places http status=%d body=%s", resp.StatusCode, string(raw))
	}

	var parsed searchTextResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	places := make([]Place, 0, len(parsed.Places))
	for _, p := range parsed.Places {
		places = append(places, Place{
			Name:               strings.TrimSpace(p.DisplayName.Text),
			Address:            strings.TrimSpace(p.FormattedAddress),
			NationalPhone:      strings.TrimSpace(p.NationalPhoneNumber),
			InternationalPhone: strings.TrimSpace(p.InternationalPhoneNumber),
		})
	}
	return places, nil
}
