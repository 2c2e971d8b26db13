// Package skill catalogs the callable phone skills.
package skill

import (
	contractx "github.com/angelonuoha/openclaw/skill/contract"
)

// Descriptor describes one skill for listings and help output.
type Descriptor struct {
	Type    contractx.SkillType
	Name    string
	Summary string
	Example string
}

// Catalog returns every available skill in display order.
func Catalog() []Descriptor {
	return []Descriptor{
		descriptorFor(contractx.SkillTypeIntroduction),
		descriptorFor(contractx.SkillTypeReservation),
	}
}

// Lookup resolves a skill type to its descriptor.
func Lookup(skillType contractx.SkillType) (Descriptor, bool) {
	switch skillType {
	case contractx.SkillTypeIntroduction, contractx.SkillTypeReservation:
		return descriptorFor(skillType), true
	default:
		return Descriptor{}, false
	}
}

func descriptorFor(skillType contractx.SkillType) Descriptor {
	switch skillType {
	case contractx.SkillTypeIntroduction:
		return Descriptor{
			Type:    skillType,
			Name:    "Introduction call",
			Summary: "Calls a number and introduces the assistant to whoever answers.",
			Example: `openclaw introduce --phone "+12125550142" --name "Dana"`,
		}
	case contractx.SkillTypeReservation:
		return Descriptor{
			Type:    skillType,
			Name:    "Restaurant reservation",
			Summary: "Finds a restaurant, calls it, and books a table on your behalf.",
			Example: `openclaw reserve --restaurant "Luigi's" --location "New York" --when "next friday" --party-size 4 --reservation-name "Dana Smith"`,
		}
	default:
		return Descriptor{Type: skillType}
	}
}
