package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestMatch_Exact(t *testing.T) {
	r := DefaultRegistry()

	cmd, ok := r.Match("attack", false)
	require.True(t, ok)
	assert.Equal(t, HandlerAttack, cmd.Handler)

	cmd, ok = r.Match("config", false) // alias
	require.True(t, ok)
	assert.Equal(t, HandlerLanguage, cmd.Handler)
}

func TestMatch_SingleTypo(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		input string
		want  string
	}{
		{"atack", HandlerAttack},
		{"attck", HandlerAttack},
		{"colect", HandlerCollect},
		{"defnd", HandlerDefend},
		{"allianse", HandlerAlliance},
		{"registr", HandlerRegister},
		{"playes", HandlerPlayers},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd, ok := r.Match(tt.input, false)
			require.True(t, ok, "expected %q to match", tt.input)
			assert.Equal(t, tt.want, cmd.Handler)
		})
	}
}

func TestMatch_NoMatch(t *testing.T) {
	r := DefaultRegistry()

	for _, input := range []string{"xyz123", "banana", "qqqqqq", ""} {
		_, ok := r.Match(input, false)
		assert.False(t, ok, "expected %q not to match", input)
	}
}

func TestMatch_ShortTokensNeverDrift(t *testing.T) {
	r := DefaultRegistry()

	// One- and two-letter inputs have no edit budget beyond exact aliases,
	// so they must not land on unrelated commands.
	for _, input := range []string{"a", "x", "jo", "at", "de"} {
		_, ok := r.Match(input, false)
		assert.False(t, ok, "short token %q spuriously matched", input)
	}

	// The "?" help alias still resolves exactly.
	cmd, ok := r.Match("?", false)
	require.True(t, ok)
	assert.Equal(t, HandlerHelp, cmd.Handler)
}

func TestMatch_AdminCommandsHiddenFromPlayers(t *testing.T) {
	r := DefaultRegistry()

	_, ok := r.Match("setlevel", false)
	assert.False(t, ok)
	_, ok = r.Match("setlevl", false)
	assert.False(t, ok)

	cmd, ok := r.Match("setlevel", true)
	require.True(t, ok)
	assert.Equal(t, HandlerSetLevel, cmd.Handler)
	cmd, ok = r.Match("setlevl", true)
	require.True(t, ok)
	assert.Equal(t, HandlerSetLevel, cmd.Handler)
}

func TestMatch_EveryCanonicalNameMatchesItself(t *testing.T) {
	r := DefaultRegistry()
	for _, cmd := range r.Commands() {
		got, ok := r.Match(cmd.Name, true)
		require.True(t, ok, "canonical name %q not matched", cmd.Name)
		assert.Equal(t, cmd.Name, got.Name)
	}
}

func TestMatch_MatchedCommandIsAlwaysClose(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := DefaultRegistry()
		token := rapid.StringMatching(`[a-z_.?]{0,12}`).Draw(t, "token")

		cmd, ok := r.Match(token, false)
		if !ok {
			return
		}
		if _, exact := r.Resolve(token); exact {
			return
		}
		if sim := Similarity(token, cmd.Name); sim < SimilarityThreshold {
			t.Fatalf("fuzzy match %q -> %q below threshold: %f", token, cmd.Name, sim)
		}
	})
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("attack", "attack"))
	assert.Equal(t, 1.0, Similarity("Attack", "attack"))
	assert.InDelta(t, 0.8333, Similarity("atack", "attack"), 0.001)
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 0.0, Similarity("", "attack"))
}

func TestBestName(t *testing.T) {
	names := []string{"Alice", "Bob", "Charlotte"}

	idx, ok := BestName("alice", names)
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = BestName("charlote", names)
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = BestName("zebra", names)
	assert.False(t, ok)

	_, ok = BestName("bob", nil)
	assert.False(t, ok)
}
