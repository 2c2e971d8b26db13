package interpret

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openrouterx "github.com/angelonuoha/openclaw/pkg/openrouter"
	contractx "github.com/angelonuoha/openclaw/skill/contract"
)

func completionServer(t *testing.T, content string, capture *map[string]any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		if capture != nil {
			if err := json.NewDecoder(r.Body).Decode(capture); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(map[string]any{
			"id":     "cmpl-1",
			"object": "chat.completion",
			"choices": []map[string]any{
				{
					"index":         0,
					"finish_reason": "stop",
					"message":       map[string]any{"role": "assistant", "content": content},
				},
			},
		})
		if err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestInterpreter(t *testing.T, baseURL string) *Interpreter {
	t.Helper()
	cfg := openrouterx.Config{
		BaseURL:     baseURL,
		APIKey:      "test-key",
		Model:       "openai/gpt-4o-mini",
		Temperature: 0.1,
	}
	client := openrouterx.NewClient(cfg)
	if client == nil {
		t.Fatal("NewClient() = nil")
	}
	interp, err := New(client, cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return interp
}

func TestInterpretExtractsDetails(t *testing.T) {
	t.Parallel()

	var gotRequest map[string]any
	server := completionServer(t, `{
		"restaurant": "Luigi's",
		"location": "Brooklyn",
		"date_text": "next friday",
		"time_of_day": "7pm",
		"party_size": 4,
		"reservation_name": "Angel",
		"notes": "window seat"
	}`, &gotRequest)

	interp := newTestInterpreter(t, server.URL)

	details, err := interp.Interpret(context.Background(),
		"book a table for 4 at Luigi's in Brooklyn next friday at 7pm, name Angel, window seat please")
	if err != nil {
		t.Fatalf("Interpret() error = %v", err)
	}

	want := contractx.ReservationDetails{
		Restaurant:      "Luigi's",
		Location:        "Brooklyn",
		DateText:        "next friday",
		TimeOfDay:       "7pm",
		PartySize:       4,
		ReservationName: "Angel",
		Notes:           "window seat",
	}
	if details != want {
		t.Fatalf("Interpret() = %+v, want %+v", details, want)
	}

	if gotRequest["model"] != "openai/gpt-4o-mini" {
		t.Fatalf("request model = %v", gotRequest["model"])
	}
	messages, _ := gotRequest["messages"].([]any)
	if len(messages) != 2 {
		t.Fatalf("request messages = %v", messages)
	}
	system, _ := messages[0].(map[string]any)
	if system["role"] != "system" {
		t.Fatalf("first message role = %v", system["role"])
	}
}

func TestInterpretToleratesCodeFences(t *testing.T) {
	t.Parallel()

	server := completionServer(t, "```json\n{\"restaurant\":\"Nopa\",\"party_size\":2}\n```", nil)
	interp := newTestInterpreter(t, server.URL)

	details, err := interp.Interpret(context.Background(), "table for two at Nopa")
	if err != nil {
		t.Fatalf("Interpret() error = %v", err)
	}
	if details.Restaurant != "Nopa" || details.PartySize != 2 {
		t.Fatalf("Interpret() = %+v", details)
	}
}

func TestInterpretRejectsMissingRestaurant(t *testing.T) {
	t.Parallel()

	server := completionServer(t, `{"location":"Brooklyn","party_size":4}`, nil)
	interp := newTestInterpreter(t, server.URL)

	_, err := interp.Interpret(context.Background(), "book a table for 4 in Brooklyn")
	if !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("Interpret() error = %v, want ErrSchemaViolation", err)
	}
}

func TestInterpretRejectsNonJSONReply(t *testing.T) {
	t.Parallel()

	server := completionServer(t, "Sorry, I could not find a restaurant in that request.", nil)
	interp := newTestInterpreter(t, server.URL)

	_, err := interp.Interpret(context.Background(), "do the thing")
	if !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("Interpret() error = %v, want ErrSchemaViolation", err)
	}
}

func TestInterpretRequiresText(t *testing.T) {
	t.Parallel()

	server := completionServer(t, `{}`, nil)
	interp := newTestInterpreter(t, server.URL)

	_, err := interp.Interpret(context.Background(), "   ")
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("Interpret() error = %v, want ErrValidation", err)
	}
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	if _, err := New(nil, openrouterx.Config{Model: "m"}); err == nil {
		t.Fatal("New() with nil client, want error")
	}

	client := openrouterx.NewClient(openrouterx.Config{APIKey: "k", Model: "m"})
	if _, err := New(client, openrouterx.Config{}); err == nil {
		t.Fatal("New() without model, want error")
	}
}

func TestStripFences(t *testing.T) {
	t.Parallel()

	tests := [][2]string{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
	}
	for _, tt := range tests {
		if got := stripFences(tt[0]); got != tt[1] {
			t.Fatalf("stripFences(%q) = %q, want %q", tt[0], got, tt[1])
		}
	}
}
