package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		resortID string
		expected string
	}{
		{"compound key splits", "BridgerBowl", "Bridger Bowl"},
		{"legacy red lodge key", "RedLodge", "Red Lodge Mountain"},
		{"renamed red lodge key", "RedLodgeMountain", "Red Lodge Mountain"},
		{"identity mapping", "Schweitzer", "Schweitzer"},
		{"big mountain", "BigMountain", "Big Mountain"},
		{"unknown key passes through", "MysteryBowl", "MysteryBowl"},
		{"empty key passes through", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveDisplayName(tt.resortID))
		})
	}
}

func TestLocations(t *testing.T) {
	t.Run("fixed list of seventeen resorts", func(t *testing.T) {
		locs := Locations()
		require.Len(t, locs, 17)

		seen := make(map[string]bool, len(locs))
		for _, l := range locs {
			assert.False(t, seen[l.DisplayName], "duplicate %s", l.DisplayName)
			seen[l.DisplayName] = true
			assert.NotZero(t, l.Lat)
			assert.NotZero(t, l.Lon)
		}
	})

	t.Run("every alias target has a location row", func(t *testing.T) {
		byName := make(map[string]bool)
		for _, l := range Locations() {
			byName[l.DisplayName] = true
		}
		for key, display := range displayNames {
			assert.True(t, byName[display], "alias %s points at missing location %s", key, display)
		}
	})

	t.Run("callers get a copy", func(t *testing.T) {
		first := Locations()
		first[0].DisplayName = "Scribbled Over"

		second := Locations()
		assert.NotEqual(t, "Scribbled Over", second[0].DisplayName)
	})
}
