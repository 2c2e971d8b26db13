package phone

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw    string
		region string
		want   string
	}{
		{"+1 212 555 0142", "", "+12125550142"},
		{"(212) 555-0142", "US", "+12125550142"},
		{"212-555-0142", "", "+12125550142"},
		{"020 7946 0958", "GB", "+442079460958"},
		{" +442079460958 ", "US", "+442079460958"},
	}

	for _, tt := range tests {
		got, err := Normalize(tt.raw, tt.region)
		if err != nil {
			t.Fatalf("Normalize(%q, %q) error = %v", tt.raw, tt.region, err)
		}
		if got != tt.want {
			t.Fatalf("Normalize(%q, %q) = %q, want %q", tt.raw, tt.region, got, tt.want)
		}
	}
}

func TestNormalizeRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "   ", "call me maybe", "+1 111"} {
		_, err := Normalize(raw, "US")
		if !errors.Is(err, ErrInvalidNumber) {
			t.Fatalf("Normalize(%q) error = %v, want ErrInvalidNumber", raw, err)
		}
	}
}

func TestRegion(t *testing.T) {
	t.Parallel()

	if got := Region("+12125550142"); got != "US" {
		t.Fatalf("Region() = %q, want US", got)
	}
	if got := Region("not-a-number"); got != "" {
		t.Fatalf("Region() = %q, want empty", got)
	}
}
