package prompt

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

var (
	//go:embed template/introduction_system.txt
	introductionSystemRaw string

	//go:embed template/introduction_first_message.txt
	introductionFirstRaw string

	//go:embed template/reservation_system.txt
	reservationSystemRaw string

	//go:embed template/reservation_first_message.txt
	reservationFirstRaw string

	//go:embed template/interpreter_system.txt
	interpreterSystemRaw string
)

// PromptSet holds the loaded call prompt templates.
type PromptSet struct {
	IntroductionSystem string
	IntroductionFirst  string
	ReservationSystem  string
	ReservationFirst   string
	InterpreterSystem  string
}

// LoadPromptSet returns a PromptSet with trimmed template bodies.
func LoadPromptSet() PromptSet {
	return PromptSet{
		IntroductionSystem: strings.TrimSpace(introductionSystemRaw),
		IntroductionFirst:  strings.TrimSpace(introductionFirstRaw),
		ReservationSystem:  strings.TrimSpace(reservationSystemRaw),
		ReservationFirst:   strings.TrimSpace(reservationFirstRaw),
		InterpreterSystem:  strings.TrimSpace(interpreterSystemRaw),
	}
}

// Render executes one template body against data. Referencing a field the
// data does not carry is an error, not silent empty output.
func Render(name, body string, data any) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(body)
	if err != nil {
		return "", fmt.Errorf("parse prompt %s: %w", name, err)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return strings.TrimSpace(sb.String()), nil
}
