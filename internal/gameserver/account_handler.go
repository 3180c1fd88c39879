package gameserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/cory-johannsen/alliancewars/internal/game/lang"
	"github.com/cory-johannsen/alliancewars/internal/game/state"
)

// handleRegister sets the caller's display name exactly once.
func (e *Engine) handleRegister(ctx context.Context, p *state.PlayerState, name string) (string, error) {
	if p.Registered {
		return e.reply(p, "already_registered", nil), nil
	}
	if name == "" {
		return e.reply(p, "name_required", nil), nil
	}

	p.Name = name
	p.Registered = true
	if err := e.players.Save(ctx, p); err != nil {
		return "", err
	}
	return e.reply(p, "registration_success", map[string]string{"name": p.Name}), nil
}

// handleLanguage validates and stores the caller's language preference.
// "config lang <code>" is accepted for backwards compatibility with the
// original config command shape.
func (e *Engine) handleLanguage(ctx context.Context, p *state.PlayerState, args []string) (string, error) {
	if len(args) > 0 && args[0] == "lang" {
		args = args[1:]
	}
	if len(args) == 0 {
		return e.reply(p, "invalid_language", map[string]string{"languages": lang.Available()}), nil
	}

	code := strings.ToLower(args[0])
	if !lang.Valid(code) {
		return e.reply(p, "invalid_language", map[string]string{"languages": lang.Available()}), nil
	}

	p.Language = code
	if err := e.players.Save(ctx, p); err != nil {
		return "", err
	}
	return e.reply(p, "language_updated", map[string]string{"language": lang.Name(code)}), nil
}

// handleHistory lists the caller's recent commands, most recent first.
func (e *Engine) handleHistory(p *state.PlayerState) string {
	if len(p.MessageHistory) == 0 {
		return e.reply(p, "history_empty", nil)
	}

	var b strings.Builder
	b.WriteString(e.reply(p, "history_header", nil))
	for i, text := range p.MessageHistory {
		b.WriteString(fmt.Sprintf("\n%d. %s", i+1, text))
	}
	return b.String()
}
