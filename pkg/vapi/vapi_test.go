package vapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func testConfig(baseURL string) Config {
	return Config{
		BaseURL:       baseURL,
		APIKey:        "test-key",
		PhoneNumberID: "phone-1",
	}
}

func TestNewClientValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{PhoneNumberID: "phone-1"}); err == nil {
		t.Fatal("NewClient() without api key, want error")
	}
	if _, err := NewClient(Config{APIKey: "k"}); err == nil {
		t.Fatal("NewClient() without phone number id, want error")
	}
	if _, err := NewClient(Config{BaseURL: "not a url", APIKey: "k", PhoneNumberID: "p"}); err == nil {
		t.Fatal("NewClient() with invalid base url, want error")
	}
}

func TestCreateCallSendsTransientAssistant(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth string
	var gotPayload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		fmt.Fprint(w, `{"id":"call-1","status":"queued"}`)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(testConfig(server.URL), WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	call, err := client.CreateCall(context.Background(), CallRequest{
		CustomerNumber: "+15551234567",
		CustomerName:   "Sam",
		AssistantName:  "Alex",
		FirstMessage:   "Hi, this is Alex.",
		SystemPrompt:   "You are making an introduction call.",
	})
	if err != nil {
		t.Fatalf("CreateCall() error = %v", err)
	}
	if call.ID != "call-1" || call.Status != StatusQueued {
		t.Fatalf("CreateCall() = %+v", call)
	}

	if gotPath != "/call" {
		t.Fatalf("path = %q, want /call", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("auth = %q", gotAuth)
	}
	if gotPayload["phoneNumberId"] != "phone-1" {
		t.Fatalf("phoneNumberId = %v", gotPayload["phoneNumberId"])
	}

	customer, _ := gotPayload["customer"].(map[string]any)
	if customer["number"] != "+15551234567" {
		t.Fatalf("customer.number = %v", customer["number"])
	}

	assistant, _ := gotPayload["assistant"].(map[string]any)
	if assistant["firstMessage"] != "Hi, this is Alex." {
		t.Fatalf("assistant.firstMessage = %v", assistant["firstMessage"])
	}
	model, _ := assistant["model"].(map[string]any)
	if model["provider"] != "openai" || model["model"] != "gpt-4o" {
		t.Fatalf("assistant.model = %v", model)
	}
	messages, _ := model["messages"].([]any)
	if len(messages) != 1 {
		t.Fatalf("assistant.model.messages = %v", messages)
	}
	system, _ := messages[0].(map[string]any)
	if system["role"] != "system" || system["content"] != "You are making an introduction call." {
		t.Fatalf("system message = %v", system)
	}
	if _, ok := assistant["voice"]; ok {
		t.Fatal("payload must not carry voice settings")
	}
}

func TestCreateCallValidation(t *testing.T) {
	t.Parallel()

	client, err := NewClient(testConfig("https://api.vapi.ai"))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if _, err := client.CreateCall(context.Background(), CallRequest{SystemPrompt: "p"}); err == nil {
		t.Fatal("CreateCall() without number, want error")
	}
	if _, err := client.CreateCall(context.Background(), CallRequest{CustomerNumber: "+15550000000"}); err == nil {
		t.Fatal("CreateCall() without system prompt, want error")
	}
}

func TestGetCallNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(testConfig(server.URL), WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	_, err = client.GetCall(context.Background(), "missing")
	if !errors.Is(err, ErrCallNotFound) {
		t.Fatalf("GetCall() error = %v, want ErrCallNotFound", err)
	}
}

func TestGetCallErrorCarriesStatusAndBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"key expired"}`, http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(testConfig(server.URL), WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	_, err = client.GetCall(context.Background(), "call-2")
	if err == nil {
		t.Fatal("GetCall() error = nil, want failure")
	}
	msg := err.Error()
	if want := "status=401"; !strings.Contains(msg, want) {
		t.Fatalf("error %q missing %q", msg, want)
	}
	if want := "key expired"; !strings.Contains(msg, want) {
		t.Fatalf("error %q missing %q", msg, want)
	}
}

func TestPollCallStopsWhenEnded(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			fmt.Fprint(w, `{"id":"call-3","status":"in-progress"}`)
			return
		}
		fmt.Fprint(w, `{"id":"call-3","status":"ended","endedReason":"customer-ended-call"}`)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(testConfig(server.URL), WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	call, err := client.PollCall(context.Background(), "call-3", time.Millisecond)
	if err != nil {
		t.Fatalf("PollCall() error = %v", err)
	}
	if !call.Ended() {
		t.Fatalf("PollCall() status = %q, want ended", call.Status)
	}
	if call.EndedReason != "customer-ended-call" {
		t.Fatalf("PollCall() endedReason = %q", call.EndedReason)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("server hit %d times, want 3", got)
	}
}

func TestPollCallHonorsContext(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"call-4","status":"ringing"}`)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(testConfig(server.URL), WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = client.PollCall(ctx, "call-4", time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("PollCall() error = %v, want deadline exceeded", err)
	}
}
