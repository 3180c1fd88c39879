package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	for _, code := range []string{"en", "es", "fr", "de", "it", "pt", "ru", "zh", "ja", "ko", "he"} {
		assert.True(t, Valid(code), "expected %q to be supported", code)
	}
	assert.False(t, Valid("xx"))
	assert.False(t, Valid("EN"))
	assert.False(t, Valid(""))
}

func TestName(t *testing.T) {
	assert.Equal(t, "English", Name("en"))
	assert.Equal(t, "Español", Name("es"))
	assert.Equal(t, "xx", Name("xx"))
}

func TestAvailable_ListsAllCodes(t *testing.T) {
	got := Available()
	assert.Contains(t, got, "en (English)")
	assert.Contains(t, got, "he (עברית)")
	assert.Contains(t, got, "pt (Português)")
}

func TestTranslate_Substitution(t *testing.T) {
	got := Translate("en", "language_updated", map[string]string{"language": "fr"})
	assert.Equal(t, "Language updated to fr", got)
}

func TestTranslate_TranslatedLanguage(t *testing.T) {
	got := Translate("es", "welcome", nil)
	assert.Equal(t, "¡Bienvenido a Alliance Wars!", got)
}

func TestTranslate_FallsBackToEnglishForMissingKey(t *testing.T) {
	// Spanish has no attack_cooldown template; the English one is used.
	got := Translate("es", "attack_cooldown", map[string]string{"seconds": "42"})
	assert.Equal(t, "⏳ Attack Cooldown: 42 seconds remaining", got)
}

func TestTranslate_UnknownLanguageUsesDefault(t *testing.T) {
	got := Translate("xx", "welcome", nil)
	assert.Equal(t, "Welcome to Alliance Wars!", got)
}

func TestTranslate_UnknownPlaceholderLeftIntact(t *testing.T) {
	got := Translate("en", "language_updated", nil)
	assert.Equal(t, "Language updated to {language}", got)
}

func TestTranslate_MissingKeyRendersKey(t *testing.T) {
	assert.Equal(t, "no_such_key", Translate("en", "no_such_key", nil))
}

func TestTranslate_HighTrafficKeysLocalized(t *testing.T) {
	keys := []string{
		"not_registered", "already_registered", "join_game_first",
		"game_not_found", "game_full", "player_not_found",
		"self_attack", "help_header", "ready", "cooling_down", "status",
	}
	for code := range table.Messages {
		if code == Default {
			continue
		}
		for _, key := range keys {
			english := table.Messages[Default][key]
			got := Translate(code, key, nil)
			assert.NotEmpty(t, got, "%s/%s rendered empty", code, key)
			assert.NotEqual(t, english, got, "%s/%s fell back to English", code, key)
		}
	}
}

func TestTranslate_StatusPlaceholdersFilledEverywhere(t *testing.T) {
	params := map[string]string{
		"name": "Alicia", "game": "99999", "resources": "100",
		"defense": "50", "attack": "30", "level": "1",
		"battles": "0", "timeLeft": "1h", "alliances": "None",
		"pending": "None", "attackReady": "✅", "defendReady": "✅",
		"collectReady": "✅",
	}
	for code := range table.Messages {
		got := Translate(code, "status", params)
		assert.NotContains(t, got, "{", "%s status left a placeholder unfilled: %s", code, got)
		assert.Contains(t, got, "Alicia")
		assert.Contains(t, got, "99999")
	}
}

func TestTranslate_EveryEnglishKeyRenders(t *testing.T) {
	for key := range table.Messages[Default] {
		got := Translate("en", key, nil)
		assert.NotEmpty(t, got, "key %q rendered empty", key)
	}
}
