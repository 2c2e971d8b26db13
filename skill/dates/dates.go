// Package dates resolves natural language date expressions ("tomorrow",
// "next friday", "March 15th", "3/15") into concrete calendar dates for
// outbound call prompts.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ResolvedDate is the outcome of resolving one date expression.
// When the expression is not recognized, Valid is false, Formatted echoes
// the original text and Date stays zero.
type ResolvedDate struct {
	Original  string    `json:"original"`
	Formatted string    `json:"formatted"`
	Date      time.Time `json:"date"`
	DayOfWeek string    `json:"day_of_week,omitempty"`
	Valid     bool      `json:"valid"`
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var months = map[string]time.Month{
	"january":   time.January,
	"jan":       time.January,
	"february":  time.February,
	"feb":       time.February,
	"march":     time.March,
	"mar":       time.March,
	"april":     time.April,
	"apr":       time.April,
	"may":       time.May,
	"june":      time.June,
	"jun":       time.June,
	"july":      time.July,
	"jul":       time.July,
	"august":    time.August,
	"aug":       time.August,
	"september": time.September,
	"sept":      time.September,
	"sep":       time.September,
	"october":   time.October,
	"oct":       time.October,
	"november":  time.November,
	"nov":       time.November,
	"december":  time.December,
	"dec":       time.December,
}

// rule pairs a phrase pattern with its resolver. Resolvers return ok=false
// when the captured values do not name a real calendar date.
type rule struct {
	pattern *regexp.Regexp
	resolve func(match []string, today time.Time) (time.Time, bool)
}

// rules are tried in order; the first pattern match wins.
var rules = []rule{
	{
		pattern: regexp.MustCompile(`^today$`),
		resolve: func(_ []string, today time.Time) (time.Time, bool) {
			return today, true
		},
	},
	{
		pattern: regexp.MustCompile(`^tomorrow$`),
		resolve: func(_ []string, today time.Time) (time.Time, bool) {
			return today.AddDate(0, 0, 1), true
		},
	},
	{
		pattern: regexp.MustCompile(`^(?:the )?day after tomorrow$`),
		resolve: func(_ []string, today time.Time) (time.Time, bool) {
			return today.AddDate(0, 0, 2), true
		},
	},
	{
		pattern: regexp.MustCompile(`^(next )?(sunday|monday|tuesday|wednesday|thursday|friday|saturday)$`),
		resolve: func(match []string, today time.Time) (time.Time, bool) {
			target := weekdays[match[2]]
			days := daysUntil(today.Weekday(), target)
			if days == 0 {
				days = 7
			}
			if match[1] != "" {
				days += 7
			}
			return today.AddDate(0, 0, days), true
		},
	},
	{
		pattern: regexp.MustCompile(`^this (sunday|monday|tuesday|wednesday|thursday|friday|saturday)$`),
		resolve: func(match []string, today time.Time) (time.Time, bool) {
			target := weekdays[match[1]]
			return today.AddDate(0, 0, daysUntil(today.Weekday(), target)), true
		},
	},
	{
		pattern: regexp.MustCompile(`^([a-z]+) (\d{1,2})(?:st|nd|rd|th)?$`),
		resolve: func(match []string, today time.Time) (time.Time, bool) {
			month, ok := months[match[1]]
			if !ok {
				return time.Time{}, false
			}
			day, err := strconv.Atoi(match[2])
			if err != nil {
				return time.Time{}, false
			}
			return monthDay(today, month, day)
		},
	},
	{
		pattern: regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})$`),
		resolve: func(match []string, today time.Time) (time.Time, bool) {
			month, err := strconv.Atoi(match[1])
			if err != nil || month < 1 || month > 12 {
				return time.Time{}, false
			}
			day, err := strconv.Atoi(match[2])
			if err != nil {
				return time.Time{}, false
			}
			return monthDay(today, time.Month(month), day)
		},
	},
}

// Resolve maps a free text date expression onto a concrete calendar date
// relative to today. Recognized phrases, in priority order: "today",
// "tomorrow", "day after tomorrow", "[next] <weekday>", "this <weekday>",
// "<month> <day>" with an optional ordinal suffix, and "m/d" or "m-d".
//
// A plain weekday always lands strictly after today; "next <weekday>" lands
// one week after that, so "next tuesday" spoken on a Tuesday resolves 14
// days out. "this <weekday>" allows today itself. Month/day forms that have
// already passed this year roll over to next year.
//
// Resolve never fails: unrecognized input yields a ResolvedDate with
// Valid=false whose Formatted field echoes the expression verbatim.
func Resolve(expression string, today time.Time) ResolvedDate {
	day := startOfDay(today)
	normalized := strings.ToLower(strings.Join(strings.Fields(expression), " "))

	for _, r := range rules {
		match := r.pattern.FindStringSubmatch(normalized)
		if match == nil {
			continue
		}
		date, ok := r.resolve(match, day)
		if !ok {
			continue
		}
		return ResolvedDate{
			Original:  expression,
			Formatted: Format(date),
			Date:      date,
			DayOfWeek: date.Weekday().String(),
			Valid:     true,
		}
	}

	return ResolvedDate{
		Original:  expression,
		Formatted: expression,
	}
}

// Format renders a date as it should be spoken on a call,
// e.g. "Friday, March 15th".
func Format(date time.Time) string {
	return fmt.Sprintf("%s, %s %s", date.Weekday(), date.Month(), ordinal(date.Day()))
}

// daysUntil counts days from one weekday to the next occurrence of another,
// returning 0 when they coincide.
func daysUntil(from, to time.Weekday) int {
	return (int(to) - int(from) + 7) % 7
}

// monthDay resolves a month/day pair to this year, rolling over to next
// year when the date has already passed. Pairs that do not name a real
// calendar day in the resolved year are rejected.
func monthDay(today time.Time, month time.Month, day int) (time.Time, bool) {
	date := time.Date(today.Year(), month, day, 0, 0, 0, 0, today.Location())
	if date.Month() != month || date.Day() != day {
		return time.Time{}, false
	}
	if date.Before(today) {
		date = time.Date(today.Year()+1, month, day, 0, 0, 0, 0, today.Location())
		if date.Month() != month || date.Day() != day {
			return time.Time{}, false
		}
	}
	return date, true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func ordinal(day int) string {
	suffix := "th"
	switch {
	case day%100 >= 11 && day%100 <= 13:
	case day%10 == 1:
		suffix = "st"
	case day%10 == 2:
		suffix = "nd"
	case day%10 == 3:
		suffix = "rd"
	}
	return strconv.Itoa(day) + suffix
}
