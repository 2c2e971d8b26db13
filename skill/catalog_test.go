package skill

import (
	"testing"

	contractx "github.com/angelonuoha/openclaw/skill/contract"
)

func TestCatalog(t *testing.T) {
	t.Parallel()

	catalog := Catalog()
	if len(catalog) != 2 {
		t.Fatalf("Catalog() returned %d skills, want 2", len(catalog))
	}

	for _, desc := range catalog {
		if desc.Name == "" || desc.Summary == "" || desc.Example == "" {
			t.Errorf("descriptor for %q is incomplete: %+v", desc.Type, desc)
		}
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	desc, ok := Lookup(contractx.SkillTypeReservation)
	if !ok {
		t.Fatal("Lookup(reservation) not found")
	}
	if desc.Type != contractx.SkillTypeReservation {
		t.Errorf("desc.Type = %q, want %q", desc.Type, contractx.SkillTypeReservation)
	}

	if _, ok := Lookup(contractx.SkillType("karaoke")); ok {
		t.Error("Lookup(karaoke) = true, want false")
	}
}
