package state

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewPlayerState_Defaults(t *testing.T) {
	p := NewPlayerState("whatsapp:+15550001111")

	assert.Equal(t, "whatsapp:+15550001111", p.ID)
	assert.False(t, p.Registered)
	assert.False(t, p.InGame())
	assert.Equal(t, DefaultStartingResources, p.Resources)
	assert.Equal(t, DefaultStartingDefense, p.DefensePoints)
	assert.Equal(t, DefaultStartingAttack, p.AttackPower)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, "en", p.Language)
	assert.NoError(t, ValidatePlayerState(p))
}

func TestSpendResources_FloorsAtZero(t *testing.T) {
	p := NewPlayerState("p1")
	p.Resources = 10

	p.SpendResources(25)

	assert.Equal(t, 0, p.Resources)
}

func TestSpendResources_NeverNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := NewPlayerState("p1")
		p.Resources = rapid.IntRange(0, 10000).Draw(t, "resources")
		amount := rapid.IntRange(0, 20000).Draw(t, "amount")

		p.SpendResources(amount)

		if p.Resources < 0 {
			t.Fatalf("resources went negative: %d", p.Resources)
		}
	})
}

func TestRecordCommand_BoundedMostRecentFirst(t *testing.T) {
	p := NewPlayerState("p1")

	for i := 0; i < 8; i++ {
		p.RecordCommand(fmt.Sprintf("collect %d", i))
	}

	require.Len(t, p.MessageHistory, HistoryLimit)
	assert.Equal(t, "collect 7", p.MessageHistory[0])
	assert.Equal(t, "collect 3", p.MessageHistory[HistoryLimit-1])
	assert.Equal(t, "collect 7", p.LastMessage)
}

func TestRemovePendingAlliance(t *testing.T) {
	p := NewPlayerState("p1")
	p.PendingAlliances = []string{"a", "b", "c"}

	p.RemovePendingAlliance("b")
	assert.Equal(t, []string{"a", "c"}, p.PendingAlliances)

	// Absent id is a no-op.
	p.RemovePendingAlliance("zz")
	assert.Equal(t, []string{"a", "c"}, p.PendingAlliances)
}

func TestResetToDefaults(t *testing.T) {
	p := NewPlayerState("p1")
	p.GameID = "12345"
	p.Resources = 900
	p.DefensePoints = 5
	p.AttackPower = 70
	p.LastAttack = 100
	p.LastCollect = 100
	p.LastDefense = 100
	p.Alliances = []string{"p2"}
	p.PendingAlliances = []string{"p3"}

	p.ResetToDefaults()

	assert.False(t, p.InGame())
	assert.Equal(t, DefaultStartingResources, p.Resources)
	assert.Equal(t, DefaultStartingDefense, p.DefensePoints)
	assert.Equal(t, DefaultStartingAttack, p.AttackPower)
	assert.Zero(t, p.LastAttack)
	assert.Zero(t, p.LastCollect)
	assert.Zero(t, p.LastDefense)
	assert.Empty(t, p.Alliances)
	assert.Empty(t, p.PendingAlliances)
}

func TestValidatePlayerState(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*PlayerState)
		wantCode string
	}{
		{name: "valid", mutate: func(p *PlayerState) {}},
		{
			name:     "empty id",
			mutate:   func(p *PlayerState) { p.ID = "" },
			wantCode: CodeInvalidPlayerState,
		},
		{
			name:     "negative resources",
			mutate:   func(p *PlayerState) { p.Resources = -10 },
			wantCode: CodeInvalidPlayerState,
		},
		{
			name:     "zero level",
			mutate:   func(p *PlayerState) { p.Level = 0 },
			wantCode: CodeInvalidPlayerState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayerState("p1")
			tt.mutate(p)

			err := ValidatePlayerState(p)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			ge, ok := IsGameError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, ge.Code)
		})
	}
}
