package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

var (
	ErrRecordNotFound = errors.New("call record not found")
	ErrNilRecord      = errors.New("call record is nil")
	ErrInvalidCallID  = errors.New("call id is empty")
)

const defaultListLimit = 20

// Store is the call record persistence contract used by the skills, the
// webhook gateway and the history command.
type Store interface {
	Save(ctx context.Context, rec *CallRecord) error
	UpdateStatus(ctx context.Context, callID, status, endedReason, summary string) error
	Get(ctx context.Context, callID string) (*CallRecord, error)
	List(ctx context.Context, limit int) ([]CallRecord, error)
}

type Config struct {
	DSN     string        `envconfig:"DSN" split_words:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"5s"`
}

// PostgresStore persists call records in Postgres through bun.
type PostgresStore struct {
	db *bun.DB
}

func NewPostgresStore(cfg Config) (*PostgresStore, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("records dsn is required")
	}

	opts := []pgdriver.Option{pgdriver.WithDSN(dsn)}
	if cfg.Timeout > 0 {
		opts = append(opts, pgdriver.WithTimeout(cfg.Timeout))
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(opts...))
	db := bun.NewDB(sqldb, pgdialect.New())

	return &PostgresStore{db: db}, nil
}

// Init creates the call_records table when it does not exist yet.
func (s *PostgresStore) Init(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*CallRecord)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create call_records table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, rec *CallRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	rec.UpdatedAt = time.Now().UTC()

	_, err := s.db.NewInsert().
		Model(rec).
		On("CONFLICT (call_id) DO UPDATE").
		Set("status = EXCLUDED.status").
		Set("ended_reason = EXCLUDED.ended_reason").
		Set("summary = EXCLUDED.summary").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("save call record: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, callID, status, endedReason, summary string) error {
	id := strings.TrimSpace(callID)
	if id == "" {
		return ErrInvalidCallID
	}
	status = strings.TrimSpace(status)
	if status == "" {
		return errors.New("status is empty")
	}

	q := s.db.NewUpdate().
		Model((*CallRecord)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now().UTC()).
		Where("call_id = ?", id)
	if reason := strings.TrimSpace(endedReason); reason != "" {
		q = q.Set("ended_reason = ?", reason)
	}
	if summary = strings.TrimSpace(summary); summary != "" {
		q = q.Set("summary = ?", summary)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return fmt.Errorf("update call record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update call record: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, callID string) (*CallRecord, error) {
	id := strings.TrimSpace(callID)
	if id == "" {
		return nil, ErrInvalidCallID
	}

	rec := new(CallRecord)
	err := s.db.NewSelect().
		Model(rec).
		Where("call_id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load call record: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) List(ctx context.Context, limit int) ([]CallRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	var recs []CallRecord
	err := s.db.NewSelect().
		Model(&recs).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list call records: %w", err)
	}
	return recs, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// NoopStore is used when no records DSN is configured; calls still go out,
// they just leave no trail.
type NoopStore struct{}

func (NoopStore) Save(context.Context, *CallRecord) error { return nil }

func (NoopStore) UpdateStatus(context.Context, string, string, string, string) error { return nil }

func (NoopStore) Get(context.Context, string) (*CallRecord, error) {
	return nil, ErrRecordNotFound
}

func (NoopStore) List(context.Context, int) ([]CallRecord, error) { return nil, nil }
