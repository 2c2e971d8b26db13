package cli

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	configx "github.com/angelonuoha/openclaw/pkg/config"
	openrouterx "github.com/angelonuoha/openclaw/pkg/openrouter"
	placesx "github.com/angelonuoha/openclaw/pkg/places"
	vapix "github.com/angelonuoha/openclaw/pkg/vapi"
	contractx "github.com/angelonuoha/openclaw/skill/contract"
	interpretx "github.com/angelonuoha/openclaw/skill/interpret"
	recordsx "github.com/angelonuoha/openclaw/skill/records"
)

func buildDialer() (*vapix.Client, error) {
	cfg, err := configx.New[vapix.Config]("VAPI")
	if err != nil {
		return nil, err
	}
	return vapix.NewClient(*cfg)
}

func buildDirectory() (*placesx.Client, error) {
	cfg, err := configx.New[placesx.Config]("PLACES")
	if err != nil {
		return nil, err
	}
	return placesx.NewClient(*cfg)
}

// buildRecords returns the Postgres store when RECORDS_DSN is set and the
// no-op store otherwise. History is a convenience, never a requirement.
func buildRecords(ctx context.Context) recordsx.Store {
	cfg, err := configx.New[recordsx.Config]("RECORDS")
	if err != nil {
		log.Warn().Err(err).Msg("records config invalid, continuing without history")
		return recordsx.NoopStore{}
	}
	if strings.TrimSpace(cfg.DSN) == "" {
		return recordsx.NoopStore{}
	}

	store, err := recordsx.NewPostgresStore(*cfg)
	if err != nil {
		log.Warn().Err(err).Msg("records store unavailable, continuing without history")
		return recordsx.NoopStore{}
	}
	if err := store.Init(ctx); err != nil {
		log.Warn().Err(err).Msg("records schema init failed, continuing without history")
		return recordsx.NoopStore{}
	}
	return store
}

// buildInterpreter is nil when no model credentials are configured; the
// reserve command then needs structured flags instead of free text.
func buildInterpreter() contractx.Interpreter {
	cfg, err := configx.New[openrouterx.Config]("OPENROUTER")
	if err != nil {
		log.Debug().Err(err).Msg("interpreter not configured")
		return nil
	}
	client := openrouterx.NewClient(*cfg)
	if client == nil {
		return nil
	}
	interp, err := interpretx.New(client, *cfg)
	if err != nil {
		log.Debug().Err(err).Msg("interpreter not configured")
		return nil
	}
	return interp
}
