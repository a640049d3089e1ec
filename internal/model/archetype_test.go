package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArchetype(t *testing.T) {
	cases := map[string]Archetype{
		"tyrant":       Tyrant,
		"The Victim":   Victim,
		"  MARTYR ":    Martyr,
		"the saboteur": Saboteur,
		"judge":        Judge,
		"Rebel":        Rebel,
	}
	for in, want := range cases {
		got, err := ParseArchetype(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseArchetype("hero")
	assert.True(t, errors.Is(err, ErrUnknownArchetype))
}

func TestEveryArchetypeHasCatalogueEntry(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range Archetypes {
		info := a.Info()
		assert.NotEmpty(t, info.Name, a.String())
		assert.NotEmpty(t, info.Description, a.String())
		assert.NotEmpty(t, info.Profile, a.String())
		assert.NotEmpty(t, info.Practice, a.String())
		assert.Len(t, info.Fears, 3, a.String())
		assert.False(t, seen[info.Name], "duplicate name %s", info.Name)
		seen[info.Name] = true
	}
}

func TestInfoPanicsOutsideClosedSet(t *testing.T) {
	assert.Panics(t, func() { Archetype(42).Info() })
	assert.False(t, Archetype(42).Valid())
}

func TestArchetypeJSONMapKeys(t *testing.T) {
	v := Volumes{Current: map[Archetype]int{Tyrant: 40, Rebel: 10}}
	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"current":{"tyrant":40,"rebel":10}}`, string(b))

	var back Volumes
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, v, back)
}

func TestArchetypeUnmarshalRejectsUnknown(t *testing.T) {
	var card ArchetypeCard
	err := json.Unmarshal([]byte(`{"id":"hero"}`), &card)
	assert.Error(t, err)
}

func TestDefaultArchetypeCards(t *testing.T) {
	cards := DefaultArchetypeCards()
	require.Len(t, cards, NumArchetypes)
	for i, c := range cards {
		assert.Equal(t, Archetypes[i], c.ID)
		assert.False(t, c.Claimed)
	}
}
