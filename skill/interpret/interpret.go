// Package interpret turns one free text reservation ask into structured
// details with a single chat completion call. Date phrases are passed
// through verbatim; the dates resolver owns their meaning.
package interpret

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go"

	openrouterx "github.com/angelonuoha/openclaw/pkg/openrouter"
	contractx "github.com/angelonuoha/openclaw/skill/contract"
	promptx "github.com/angelonuoha/openclaw/skill/prompt"
)

type Interpreter struct {
	client       *openaisdk.Client
	model        string
	temperature  float32
	maxTokens    *int
	systemPrompt string
}

func New(client *openaisdk.Client, cfg openrouterx.Config) (*Interpreter, error) {
	if client == nil {
		return nil, errors.New("chat client is required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		return nil, errors.New("chat model is required")
	}

	set := promptx.LoadPromptSet()

	return &Interpreter{
		client:       client,
		model:        model,
		temperature:  cfg.Temperature,
		maxTokens:    cfg.MaxCompletionToken,
		systemPrompt: set.InterpreterSystem,
	}, nil
}

type detailsLLMOutput struct {
	Restaurant      string `json:"restaurant"`
	Location        string `json:"location"`
	DateText        string `json:"date_text"`
	TimeOfDay       string `json:"time_of_day"`
	PartySize       int    `json:"party_size"`
	ReservationName string `json:"reservation_name"`
	Notes           string `json:"notes"`
}

func (i *Interpreter) Interpret(ctx context.Context, text string) (contractx.ReservationDetails, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return contractx.ReservationDetails{}, fmt.Errorf("%w: request text is required", contractx.ErrValidation)
	}

	params := openaisdk.ChatCompletionNewParams{
		Model: i.model,
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.SystemMessage(i.systemPrompt),
			openaisdk.UserMessage(text),
		},
		Temperature: openaisdk.Float(float64(i.temperature)),
	}
	if i.maxTokens != nil && *i.maxTokens > 0 {
		params.MaxTokens = openaisdk.Int(int64(*i.maxTokens))
	}

	resp, err := i.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return contractx.ReservationDetails{}, fmt.Errorf("%w: interpret invoke: %v", contractx.ErrModelInvoke, err)
	}
	if len(resp.Choices) == 0 {
		return contractx.ReservationDetails{}, fmt.Errorf("%w: empty completion", contractx.ErrModelInvoke)
	}

	var out detailsLLMOutput
	content := stripFences(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return contractx.ReservationDetails{}, fmt.Errorf("%w: decode details: %v", contractx.ErrSchemaViolation, err)
	}

	details := contractx.ReservationDetails{
		Restaurant:      strings.TrimSpace(out.Restaurant),
		Location:        strings.TrimSpace(out.Location),
		DateText:        strings.TrimSpace(out.DateText),
		TimeOfDay:       strings.TrimSpace(out.TimeOfDay),
		PartySize:       out.PartySize,
		ReservationName: strings.TrimSpace(out.ReservationName),
		Notes:           strings.TrimSpace(out.Notes),
	}
	if err := validateDetails(details); err != nil {
		return contractx.ReservationDetails{}, err
	}

	return details, nil
}

func validateDetails(d contractx.ReservationDetails) error {
	if d.Restaurant == "" {
		return fmt.Errorf("%w: restaurant is required", contractx.ErrSchemaViolation)
	}
	if d.PartySize < 0 {
		return fmt.Errorf("%w: party_size must be >= 0", contractx.ErrSchemaViolation)
	}
	return nil
}

// stripFences tolerates models that wrap the JSON in a markdown code block
// despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
