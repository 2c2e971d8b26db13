package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClientValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("NewClient() without api key, want error")
	}
	if _, err := NewClient(Config{BaseURL: "::bad::", APIKey: "k"}); err == nil {
		t.Fatal("NewClient() with invalid base url, want error")
	}
}

func TestFindRestaurantSendsQueryAndHeaders(t *testing.T) {
	t.Parallel()

	var gotPath, gotKey, gotMask string
	var gotPayload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Goog-Api-Key")
		gotMask = r.Header.Get("X-Goog-FieldMask")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		fmt.Fprint(w, `{"places":[{
			"displayName":{"text":"Luigi's Trattoria"},
			"formattedAddress":"12 Mott St, New York, NY 10013",
			"nationalPhoneNumber":"(212) 555-0142",
			"internationalPhoneNumber":"+1 212-555-0142"
		}]}`)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL, APIKey: "places-key"}, WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	place, err := client.FindRestaurant(context.Background(), "Luigi's", "New York")
	if err != nil {
		t.Fatalf("FindRestaurant() error = %v", err)
	}

	if gotPath != "/v1/places:searchText" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotKey != "places-key" {
		t.Fatalf("api key header = %q", gotKey)
	}
	if gotMask != searchFieldMask {
		t.Fatalf("field mask = %q", gotMask)
	}
	if gotPayload["textQuery"] != "Luigi's in New York" {
		t.Fatalf("textQuery = %v", gotPayload["textQuery"])
	}
	if gotPayload["includedType"] != "restaurant" {
		t.Fatalf("includedType = %v", gotPayload["includedType"])
	}

	if place.Name != "Luigi's Trattoria" {
		t.Fatalf("place.Name = %q", place.Name)
	}
	if place.Phone() != "+1 212-555-0142" {
		t.Fatalf("place.Phone() = %q", place.Phone())
	}
}

func TestFindRestaurantNoResults(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL, APIKey: "k"}, WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	_, err = client.FindRestaurant(context.Background(), "Nowhere Diner", "")
	if !errors.Is(err, ErrNoResults) {
		t.Fatalf("FindRestaurant() error = %v, want ErrNoResults", err)
	}
}

func TestSearchTextErrorCarriesStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"API key invalid"}}`, http.StatusForbidden)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL, APIKey: "k"}, WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	_, err = client.SearchText(context.Background(), "anything", 3)
	if err == nil {
		t.Fatal("SearchText() error = nil, want failure")
	}
}

func TestPlacePhoneFallsBackToNational(t *testing.T) {
	t.Parallel()

	place := &Place{NationalPhone: "(212) 555-0100"}
	if got := place.Phone(); got != "(212) 555-0100" {
		t.Fatalf("Phone() = %q", got)
	}

	var nilPlace *Place
	if got := nilPlace.Phone(); got != "" {
		t.Fatalf("nil Phone() = %q", got)
	}
}
