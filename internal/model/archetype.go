// Package model defines the journaling, assessment, and archetype data types.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownArchetype is returned when a name does not match any archetype.
var ErrUnknownArchetype = errors.New("unknown archetype")

// Archetype is one of the six shadow archetypes. The zero value is Tyrant.
type Archetype uint8

// Archetypes in enumeration order. Ranking ties resolve in this order.
const (
	Tyrant Archetype = iota
	Victim
	Martyr
	Saboteur
	Judge
	Rebel

	// NumArchetypes is the size of the closed set.
	NumArchetypes = int(Rebel) + 1
)

// Archetypes lists every archetype in enumeration order.
var Archetypes = [NumArchetypes]Archetype{Tyrant, Victim, Martyr, Saboteur, Judge, Rebel}

// ParseArchetype resolves an id ("tyrant") or display name ("The Tyrant").
func ParseArchetype(s string) (Archetype, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, "the ")
	for _, a := range Archetypes {
		if a.String() == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownArchetype, s)
}

// Valid reports whether a is a member of the closed set.
func (a Archetype) Valid() bool {
	return int(a) < NumArchetypes
}

func (a Archetype) String() string {
	switch a {
	case Tyrant:
		return "tyrant"
	case Victim:
		return "victim"
	case Martyr:
		return "martyr"
	case Saboteur:
		return "saboteur"
	case Judge:
		return "judge"
	case Rebel:
		return "rebel"
	}
	return fmt.Sprintf("archetype(%d)", uint8(a))
}

// MarshalText encodes the archetype as its id, which also makes it usable
// as a JSON map key.
func (a Archetype) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownArchetype, uint8(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText decodes an archetype id.
func (a *Archetype) UnmarshalText(b []byte) error {
	parsed, err := ParseArchetype(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ArchetypeInfo is the static text attached to an archetype.
type ArchetypeInfo struct {
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	Profile             string   `json:"profile"`
	Practice            string   `json:"practice"`
	Fears               []string `json:"fears"`
	IntegratedPotential string   `json:"integratedPotential"`
	ImageURL            string   `json:"imageUrl"`
}

// Info returns the catalogue entry for a. Every member of the closed set has
// an entry; calling Info on an out-of-range value is a programming error.
func (a Archetype) Info() ArchetypeInfo {
	switch a {
	case Tyrant:
		return ArchetypeInfo{
			Name:                "The Tyrant",
			Description:         "The Tyrant archetype represents the shadow side of power and control. It emerges when we feel powerless and compensate by dominating others.",
			Profile:             "Your need for control and perfection may be protecting you from vulnerability and chaos.",
			Practice:            "Your Tyrant is loud. This is a sign you're trying to control too much. Use the Control-Fear Matrix to identify what you're truly afraid of.",
			Fears:               []string{"Loss of control", "Vulnerability", "Being dominated"},
			IntegratedPotential: "Healthy leadership, assertiveness, and the ability to set boundaries",
			ImageURL:            "https://images.unsplash.com/photo-1518709268805-4e9042af9f23?w=400",
		}
	case Victim:
		return ArchetypeInfo{
			Name:                "The Victim",
			Description:         "The Victim archetype manifests when we feel helpless and believe external forces control our destiny.",
			Profile:             "You may feel powerless in situations, believing life happens to you rather than for you.",
			Practice:            "Your Victim is active. You're giving away power. Use the Victim-to-Victor Reframer to find where you have control.",
			Fears:               []string{"Taking responsibility", "Personal power", "Change"},
			IntegratedPotential: "Empathy, compassion, and the ability to ask for help when needed",
			ImageURL:            "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=400",
		}
	case Martyr:
		return ArchetypeInfo{
			Name:                "The Martyr",
			Description:         "The Martyr sacrifices themselves for others, often to gain recognition or avoid dealing with their own needs.",
			Profile:             "Your over-giving and self-sacrifice may be driven by a need for validation and worth.",
			Practice:            "Your Martyr is loud. This is a sign you're ignoring your own needs. Use the Yes/No Need Sorter to practice a Boundaried No today.",
			Fears:               []string{"Being selfish", "Not being needed", "Self-care"},
			IntegratedPotential: "Genuine service, healthy giving, and balanced self-care",
			ImageURL:            "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=400",
		}
	case Saboteur:
		return ArchetypeInfo{
			Name:                "The Saboteur",
			Description:         "The Saboteur undermines our success and happiness, often stemming from deep-seated beliefs of unworthiness.",
			Profile:             "You may undermine your own success as a twisted form of self-protection.",
			Practice:            "Your Saboteur is undermining you. Write a Letter from Your Saboteur to understand what it's trying to protect you from.",
			Fears:               []string{"Success", "Happiness", "Being seen"},
			IntegratedPotential: "Healthy caution, risk assessment, and self-protection",
			ImageURL:            "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=400",
		}
	case Judge:
		return ArchetypeInfo{
			Name:                "The Judge",
			Description:         "The Judge constantly criticizes and evaluates, both ourselves and others, creating separation and shame.",
			Profile:             "Your critical inner voice may be a projection of your own insecurities and fears.",
			Practice:            "Your Judge is active. Use the Judgment Tracker to find the value hidden in your self-criticism.",
			Fears:               []string{"Being judged", "Imperfection", "Vulnerability"},
			IntegratedPotential: "Discernment, wisdom, and healthy boundaries",
			ImageURL:            "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=400",
		}
	case Rebel:
		return ArchetypeInfo{
			Name:                "The Rebel",
			Description:         "The Rebel rejects authority and convention, sometimes to the point of self-destruction.",
			Profile:             "Your defiance of authority may be a reaction against feeling controlled or trapped.",
			Practice:            "Your Rebel is resisting. Practice the Reactive vs. Authentic No quiz to distinguish between self-sabotage and true autonomy.",
			Fears:               []string{"Conformity", "Loss of identity", "Being controlled"},
			IntegratedPotential: "Authenticity, innovation, and healthy independence",
			ImageURL:            "https://images.unsplash.com/photo-1506794778202-cad84cf45f1d?w=400",
		}
	}
	panic(fmt.Sprintf("model: no catalogue entry for %s", a))
}
