package contract

type SkillType string

const (
	SkillTypeIntroduction SkillType = "introduction"
	SkillTypeReservation  SkillType = "reservation"
)

// ReservationDetails are the structured fields a reservation call needs.
// DateText stays free text here; the dates resolver owns its meaning.
type ReservationDetails struct {
	Restaurant      string `json:"restaurant"`
	Location        string `json:"location,omitempty"`
	DateText        string `json:"date_text,omitempty"`
	TimeOfDay       string `json:"time_of_day,omitempty"`
	PartySize       int    `json:"party_size"`
	ReservationName string `json:"reservation_name"`
	Notes           string `json:"notes,omitempty"`
}

// CallOutcome summarizes a placed call for CLI output and call records.
type CallOutcome struct {
	Skill         SkillType `json:"skill"`
	CallID        string    `json:"call_id"`
	Status        string    `json:"status"`
	DialedNumber  string    `json:"dialed_number"`
	Restaurant    string    `json:"restaurant,omitempty"`
	RequestedDate string    `json:"requested_date,omitempty"`
	Summary       string    `json:"summary"`
}
