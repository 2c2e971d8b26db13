// Package phone normalizes phone numbers to E.164 before they are handed
// to the calling platform.
package phone

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const DefaultRegion = "US"

var ErrInvalidNumber = errors.New("invalid phone number")

// Normalize parses raw input in any common format and returns the E.164
// form. defaultRegion is used when the input has no country code; empty
// falls back to DefaultRegion.
func Normalize(raw, defaultRegion string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty input", ErrInvalidNumber)
	}

	region := strings.ToUpper(strings.TrimSpace(defaultRegion))
	if region == "" {
		region = DefaultRegion
	}

	num, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidNumber, raw, err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// Region returns the region code of an already normalized number, or ""
// when it cannot be determined. Used for log fields only.
func Region(e164 string) string {
	num, err := phonenumbers.Parse(strings.TrimSpace(e164), "")
	if err != nil {
		return ""
	}
	return phonenumbers.GetRegionCodeForNumber(num)
}
