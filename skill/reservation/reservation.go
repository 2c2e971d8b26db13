// Package reservation orchestrates a restaurant reservation call: interpret
// the ask, resolve the date, look the restaurant up, normalize its number
// and dial out.
package reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	phonex "github.com/angelonuoha/openclaw/pkg/phone"
	vapix "github.com/angelonuoha/openclaw/pkg/vapi"
	contractx "github.com/angelonuoha/openclaw/skill/contract"
	datesx "github.com/angelonuoha/openclaw/skill/dates"
	promptx "github.com/angelonuoha/openclaw/skill/prompt"
	recordsx "github.com/angelonuoha/openclaw/skill/records"
)

const defaultAssistantName = "Alex"

type Config struct {
	AssistantName string        `envconfig:"ASSISTANT_NAME" split_words:"true" default:"Alex"`
	DefaultRegion string        `envconfig:"DEFAULT_REGION" split_words:"true" default:"US"`
	PollInterval  time.Duration `envconfig:"POLL_INTERVAL" split_words:"true" default:"5s"`
}

// Request describes one reservation ask. RawText carries the whole request
// in one sentence and is interpreted only when Restaurant is not set.
// PhoneOverride skips the directory lookup.
type Request struct {
	RawText         string
	Restaurant      string
	Location        string
	When            string
	TimeOfDay       string
	PartySize       int
	ReservationName string
	Notes           string
	PhoneOverride   string
}

type Orchestrator struct {
	directory contractx.Directory
	dialer    contractx.Dialer
	interp    contractx.Interpreter
	records   recordsx.Store
	prompts   promptx.PromptSet

	assistantName string
	defaultRegion string
	pollInterval  time.Duration

	now func() time.Time
}

// New wires the orchestrator. The interpreter may be nil; raw text requests
// then fail validation and callers must pass structured fields. A nil
// records store falls back to the no-op store.
func New(
	directory contractx.Directory,
	dialer contractx.Dialer,
	interp contractx.Interpreter,
	records recordsx.Store,
	cfg Config,
) (*Orchestrator, error) {
	if directory == nil {
		return nil, errors.New("directory is required")
	}
	if dialer == nil {
		return nil, errors.New("dialer is required")
	}
	if records == nil {
		records = recordsx.NoopStore{}
	}

	assistantName := strings.TrimSpace(cfg.AssistantName)
	if assistantName == "" {
		assistantName = defaultAssistantName
	}
	defaultRegion := strings.TrimSpace(cfg.DefaultRegion)
	if defaultRegion == "" {
		defaultRegion = phonex.DefaultRegion
	}
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}

	return &Orchestrator{
		directory:     directory,
		dialer:        dialer,
		interp:        interp,
		records:       records,
		prompts:       promptx.LoadPromptSet(),
		assistantName: assistantName,
		defaultRegion: defaultRegion,
		pollInterval:  pollInterval,
		now:           time.Now,
	}, nil
}

// Reserve runs the whole reservation flow and returns once the call is
// placed. An unrecognized date phrase does not stop the call; it is spoken
// verbatim so the staff member can sort it out.
func (o *Orchestrator) Reserve(ctx context.Context, req Request) (*contractx.CallOutcome, error) {
	details, err := o.details(ctx, req)
	if err != nil {
		return nil, err
	}

	if details.Restaurant == "" {
		return nil, fmt.Errorf("%w: restaurant is required", contractx.ErrValidation)
	}
	if details.PartySize < 1 {
		return nil, fmt.Errorf("%w: party size must be at least 1", contractx.ErrValidation)
	}
	if details.ReservationName == "" {
		return nil, fmt.Errorf("%w: reservation name is required", contractx.ErrValidation)
	}
	if details.DateText == "" {
		return nil, fmt.Errorf("%w: reservation date is required", contractx.ErrValidation)
	}

	when := datesx.Resolve(details.DateText, o.now())
	if !when.Valid {
		log.Debug().
			Str("expression", when.Original).
			Msg("date expression not recognized, speaking it verbatim")
	}

	number := strings.TrimSpace(req.PhoneOverride)
	restaurantName := details.Restaurant
	if number == "" {
		place, err := o.directory.FindRestaurant(ctx, details.Restaurant, details.Location)
		if err != nil {
			return nil, fmt.Errorf("find restaurant: %w", err)
		}
		if place.Phone() == "" {
			return nil, fmt.Errorf("%w: %s has no phone number listed", contractx.ErrPlaceNotFound, place.Name)
		}
		number = place.Phone()
		if place.Name != "" {
			restaurantName = place.Name
		}
	}

	e164, err := phonex.Normalize(number, o.defaultRegion)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrValidation, err)
	}

	data := struct {
		AssistantName   string
		Restaurant      string
		DateLine        string
		TimeOfDay       string
		PartySize       int
		ReservationName string
		Notes           string
	}{
		AssistantName:   o.assistantName,
		Restaurant:      restaurantName,
		DateLine:        when.Formatted,
		TimeOfDay:       details.TimeOfDay,
		PartySize:       details.PartySize,
		ReservationName: details.ReservationName,
		Notes:           details.Notes,
	}

	systemPrompt, err := promptx.Render("reservation_system", o.prompts.ReservationSystem, data)
	if err != nil {
		return nil, err
	}
	firstMessage, err := promptx.Render("reservation_first_message", o.prompts.ReservationFirst, data)
	if err != nil {
		return nil, err
	}

	call, err := o.dialer.CreateCall(ctx, vapix.CallRequest{
		CustomerNumber: e164,
		AssistantName:  o.assistantName,
		FirstMessage:   firstMessage,
		SystemPrompt:   systemPrompt,
	})
	if err != nil {
		return nil, fmt.Errorf("place reservation call: %w", err)
	}

	log.Info().
		Str("skill", string(contractx.SkillTypeReservation)).
		Str("call_id", call.ID).
		Str("status", call.Status).
		Str("restaurant", restaurantName).
		Str("requested_date", when.Formatted).
		Bool("date_resolved", when.Valid).
		Msg("reservation call placed")

	rec := recordsx.NewCallRecord(contractx.SkillTypeReservation, call.ID, e164, call.Status, o.now())
	rec.Restaurant = restaurantName
	rec.RequestedDate = when.Formatted
	if err := o.records.Save(ctx, rec); err != nil {
		log.Warn().Err(err).Str("call_id", call.ID).Msg("save call record failed")
	}

	return &contractx.CallOutcome{
		Skill:         contractx.SkillTypeReservation,
		CallID:        call.ID,
		Status:        call.Status,
		DialedNumber:  e164,
		Restaurant:    restaurantName,
		RequestedDate: when.Formatted,
		Summary: fmt.Sprintf("Reservation call to %s for %s, party of %d, is %s.",
			restaurantName, when.Formatted, details.PartySize, call.Status),
	}, nil
}

// Await polls the call until it ends and records the terminal status.
func (o *Orchestrator) Await(ctx context.Context, callID string) (*vapix.Call, error) {
	call, err := o.dialer.PollCall(ctx, callID, o.pollInterval)
	if err != nil {
		return nil, err
	}

	err = o.records.UpdateStatus(ctx, call.ID, call.Status, call.EndedReason, call.Summary)
	if err != nil && !errors.Is(err, recordsx.ErrRecordNotFound) {
		log.Warn().Err(err).Str("call_id", call.ID).Msg("update call record failed")
	}
	return call, nil
}

// details merges structured request fields with interpreter output. Fields
// the caller set explicitly always win.
func (o *Orchestrator) details(ctx context.Context, req Request) (contractx.ReservationDetails, error) {
	details := contractx.ReservationDetails{
		Restaurant:      strings.TrimSpace(req.Restaurant),
		Location:        strings.TrimSpace(req.Location),
		DateText:        strings.TrimSpace(req.When),
		TimeOfDay:       strings.TrimSpace(req.TimeOfDay),
		PartySize:       req.PartySize,
		ReservationName: strings.TrimSpace(req.ReservationName),
		Notes:           strings.TrimSpace(req.Notes),
	}

	raw := strings.TrimSpace(req.RawText)
	if raw == "" || details.Restaurant != "" {
		return details, nil
	}
	if o.interp == nil {
		return details, fmt.Errorf("%w: no interpreter configured, pass structured flags instead of raw text", contractx.ErrValidation)
	}

	interpreted, err := o.interp.Interpret(ctx, raw)
	if err != nil {
		return details, err
	}

	merged := interpreted
	if details.Location != "" {
		merged.Location = details.Location
	}
	if details.DateText != "" {
		merged.DateText = details.DateText
	}
	if details.TimeOfDay != "" {
		merged.TimeOfDay = details.TimeOfDay
	}
	if details.PartySize > 0 {
		merged.PartySize = details.PartySize
	}
	if details.ReservationName != "" {
		merged.ReservationName = details.ReservationName
	}
	if details.Notes != "" {
		merged.Notes = details.Notes
	}
	return merged, nil
}
