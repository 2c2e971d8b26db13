// Package vapi is a minimal client for the Vapi voice calling platform. It
// covers the two endpoints the skills need: creating an outbound call with a
// transient assistant and reading a call back by id.
package vapi

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
	defaultBaseURL       = "https://api.vapi.ai"
	defaultPollInterval  = 5 * time.Second
	maxResponseSizeBytes = 2 << 20
)

var ErrCallNotFound = errors.New("call not found")

// Call lifecycle statuses as the platform reports them.
const (
	StatusQueued     = "queued"
	StatusRinging    = "ringing"
	StatusInProgress = "in-progress"
	StatusForwarding = "forwarding"
	StatusEnded      = "ended"
)

type Config struct {
	BaseURL       string        `envconfig:"BASE_URL" split_words:"true" default:"https://api.vapi.ai"`
	APIKey        string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	PhoneNumberID string        `envconfig:"PHONE_NUMBER_ID" split_words:"true" required:"true"`
	ModelProvider string        `envconfig:"MODEL_PROVIDER" split_words:"true" default:"openai"`
	Model         string        `envconfig:"MODEL" split_words:"true" default:"gpt-4o"`
	Timeout       time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"15s"`
}

// CallRequest describes one outbound call. The system prompt and first
// message fully define the assistant; no voice settings are sent.
type CallRequest struct {
	CustomerNumber string
	CustomerName   string
	AssistantName  string
	FirstMessage   string
	SystemPrompt   string
}

// Call is the platform's view of a call.
type Call struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	EndedReason string    `json:"endedReason,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Ended reports whether the call reached its terminal status.
func (c *Call) Ended() bool {
	return c != nil && c.Status == StatusEnded
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
	baseURL       string
	apiKey        string
	phoneNumberID string
	modelProvider string
	model         string
	httpClient    *http.Client
}

func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid vapi base url: %w", err)
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("vapi api key is required")
	}

	phoneNumberID := strings.TrimSpace(cfg.PhoneNumberID)
	if phoneNumberID == "" {
		return nil, errors.New("vapi phone number id is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		apiKey:        apiKey,
		phoneNumberID: phoneNumberID,
		modelProvider: strings.TrimSpace(cfg.ModelProvider),
		model:         strings.TrimSpace(cfg.Model),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	if client.modelProvider == "" {
		client.modelProvider = "openai"
	}
	if client.model == "" {
		client.model = "gpt-4o"
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

type createCallPayload struct {
	Assistant     assistantPayload `json:"assistant"`
	PhoneNumberID string           `json:"phoneNumberId"`
	Customer      customerPayload  `json:"customer"`
}

type assistantPayload struct {
	Name         string                `json:"name,omitempty"`
	FirstMessage string                `json:"firstMessage,omitempty"`
	Model        assistantModelPayload `json:"model"`
}

type assistantModelPayload struct {
	Provider string           `json:"provider"`
	Model    string           `json:"model"`
	Messages []messagePayload `json:"messages,omitempty"`
}

type messagePayload struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type customerPayload struct {
	Number string `json:"number"`
	Name   string `json:"name,omitempty"`
}

// CreateCall places an outbound call and returns the platform's initial
// view of it, normally in status "queued".
func (c *Client) CreateCall(ctx context.Context, req CallRequest) (*Call, error) {
	number := strings.TrimSpace(req.CustomerNumber)
	if number == "" {
		return nil, errors.New("customer number is required")
	}
	systemPrompt := strings.TrimSpace(req.SystemPrompt)
	if systemPrompt == "" {
		return nil, errors.New("system prompt is required")
	}

	payload := createCallPayload{
		Assistant: assistantPayload{
			Name:         strings.TrimSpace(req.AssistantName),
			FirstMessage: strings.TrimSpace(req.FirstMessage),
			Model: assistantModelPayload{
				Provider: c.modelProvider,
				Model:    c.model,
				Messages: []messagePayload{
					{Role: "system", Content: systemPrompt},
				},
			},
		},
		PhoneNumberID: c.phoneNumberID,
		Customer: customerPayload{
			Number: number,
			Name:   strings.TrimSpace(req.CustomerName),
		},
	}

	var call Call
	if err := c.do(ctx, http.MethodPost, "/call", payload, &call); err != nil {
		return nil, err
	}
	if strings.TrimSpace(call.ID) == "" {
		return nil, errors.New("platform returned a call without an id")
	}
	return &call, nil
}

// GetCall reads one call by id.
func (c *Client) GetCall(ctx context.Context, callID string) (*Call, error) {
	id := strings.TrimSpace(callID)
	if id == "" {
		return nil, errors.New("call id is required")
	}

	var call Call
	if err := c.do(ctx, http.MethodGet, "/call/"+url.PathEscape(id), nil, &call); err != nil {
		return nil, err
	}
	return &call, nil
}

// PollCall reads the call at the given interval until it ends or ctx is
// done. The first read happens immediately.
func (c *Client) PollCall(ctx context.Context, callID string, interval time.Duration) (*Call, error) {
	if interval <= 0 {
		interval = defaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		call, err := c.GetCall(ctx, callID)
		if err != nil {
			return nil, err
		}
		if call.Ended() {
			return call, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal vapi payload: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build vapi request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute vapi request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return fmt.Errorf("read vapi response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrCallNotFound, path)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("vapi http status=%d body=%s", resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode vapi response: %w", err)
	}
	return nil
}
