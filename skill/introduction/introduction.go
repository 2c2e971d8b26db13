// Package introduction places the outbound call in which the assistant
// introduces itself to a recipient.
package introduction

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
	promptx "github.com/angelonuoha/openclaw/skill/prompt"
	recordsx "github.com/angelonuoha/openclaw/skill/records"
)

const defaultAssistantName = "Alex"

type Config struct {
	AssistantName string `envconfig:"ASSISTANT_NAME" split_words:"true" default:"Alex"`
	DefaultRegion string `envconfig:"DEFAULT_REGION" split_words:"true" default:"US"`
}

// Request describes one introduction call.
type Request struct {
	PhoneNumber   string
	RecipientName string
	Context       string
}

type Skill struct {
	dialer  contractx.Dialer
	records recordsx.Store
	prompts promptx.PromptSet

	assistantName string
	defaultRegion string

	now func() time.Time
}

func New(dialer contractx.Dialer, records recordsx.Store, cfg Config) (*Skill, error) {
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

	return &Skill{
		dialer:        dialer,
		records:       records,
		prompts:       promptx.LoadPromptSet(),
		assistantName: assistantName,
		defaultRegion: defaultRegion,
		now:           time.Now,
	}, nil
}

// Place validates the request, renders the call prompts and dials out.
// The call record is best effort; a failed save never cancels a placed call.
func (s *Skill) Place(ctx context.Context, req Request) (*contractx.CallOutcome, error) {
	number, err := phonex.Normalize(req.PhoneNumber, s.defaultRegion)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrValidation, err)
	}

	data := struct {
		AssistantName string
		RecipientName string
		Context       string
	}{
		AssistantName: s.assistantName,
		RecipientName: strings.TrimSpace(req.RecipientName),
		Context:       strings.TrimSpace(req.Context),
	}

	systemPrompt, err := promptx.Render("introduction_system", s.prompts.IntroductionSystem, data)
	if err != nil {
		return nil, err
	}
	firstMessage, err := promptx.Render("introduction_first_message", s.prompts.IntroductionFirst, data)
	if err != nil {
		return nil, err
	}

	call, err := s.dialer.CreateCall(ctx, vapix.CallRequest{
		CustomerNumber: number,
		CustomerName:   data.RecipientName,
		AssistantName:  s.assistantName,
		FirstMessage:   firstMessage,
		SystemPrompt:   systemPrompt,
	})
	if err != nil {
		return nil, fmt.Errorf("place introduction call: %w", err)
	}

	log.Info().
		Str("skill", string(contractx.SkillTypeIntroduction)).
		Str("call_id", call.ID).
		Str("status", call.Status).
		Str("region", phonex.Region(number)).
		Msg("introduction call placed")

	rec := recordsx.NewCallRecord(contractx.SkillTypeIntroduction, call.ID, number, call.Status, s.now())
	if err := s.records.Save(ctx, rec); err != nil {
		log.Warn().Err(err).Str("call_id", call.ID).Msg("save call record failed")
	}

	return &contractx.CallOutcome{
		Skill:        contractx.SkillTypeIntroduction,
		CallID:       call.ID,
		Status:       call.Status,
		DialedNumber: number,
		Summary:      fmt.Sprintf("Introduction call to %s is %s.", number, call.Status),
	}, nil
}

// Await polls the call until it ends and records the terminal status.
func (s *Skill) Await(ctx context.Context, callID string, interval time.Duration) (*vapix.Call, error) {
	call, err := s.dialer.PollCall(ctx, callID, interval)
	if err != nil {
		return nil, err
	}

	err = s.records.UpdateStatus(ctx, call.ID, call.Status, call.EndedReason, call.Summary)
	if err != nil && !errors.Is(err, recordsx.ErrRecordNotFound) {
		log.Warn().Err(err).Str("call_id", call.ID).Msg("update call record failed")
	}
	return call, nil
}
