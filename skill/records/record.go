package records

import (
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"

	contractx "github.com/angelonuoha/openclaw/skill/contract"
)

// CallRecord is the persisted trail of one outbound call.
type CallRecord struct {
	bun.BaseModel `bun:"table:call_records,alias:cr"`

	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	CallID        string    `bun:"call_id,notnull,unique" json:"call_id"`
	Skill         string    `bun:"skill,notnull" json:"skill"`
	PhoneNumber   string    `bun:"phone_number,notnull" json:"phone_number"`
	Restaurant    string    `bun:"restaurant" json:"restaurant,omitempty"`
	RequestedDate string    `bun:"requested_date" json:"requested_date,omitempty"`
	Status        string    `bun:"status,notnull" json:"status"`
	EndedReason   string    `bun:"ended_reason" json:"ended_reason,omitempty"`
	Summary       string    `bun:"summary" json:"summary,omitempty"`
	CreatedAt     time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// NewCallRecord builds a record for a freshly placed call.
func NewCallRecord(skill contractx.SkillType, callID, phoneNumber, status string, now time.Time) *CallRecord {
	return &CallRecord{
		CallID:      strings.TrimSpace(callID),
		Skill:       string(skill),
		PhoneNumber: strings.TrimSpace(phoneNumber),
		Status:      strings.TrimSpace(status),
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}
}

func (r *CallRecord) Validate() error {
	if r == nil {
		return ErrNilRecord
	}
	if strings.TrimSpace(r.CallID) == "" {
		return ErrInvalidCallID
	}
	if strings.TrimSpace(r.Skill) == "" {
		return errors.New("record skill is empty")
	}
	if strings.TrimSpace(r.PhoneNumber) == "" {
		return errors.New("record phone number is empty")
	}
	return nil
}

// Terminal reports whether the record reached the platform's end status.
func (r *CallRecord) Terminal() bool {
	return r != nil && r.Status == "ended"
}
