// Package gameserver implements the Alliance Wars rules engine: per-command
// preconditions and state transitions, cooldowns, the alliance handshake,
// the recovery boost, and the dispatcher that ties raw chat text to them.
package gameserver

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/alliancewars/internal/config"
	"github.com/cory-johannsen/alliancewars/internal/game/command"
	"github.com/cory-johannsen/alliancewars/internal/game/lang"
	"github.com/cory-johannsen/alliancewars/internal/game/state"
)

// PlayerStore is the player persistence surface the engine consumes.
type PlayerStore interface {
	// Get returns the stored record or the default new state for unseen ids.
	Get(ctx context.Context, id string) (*state.PlayerState, error)
	// Save validates and persists the record.
	Save(ctx context.Context, p *state.PlayerState) error
	// Delete removes the record entirely.
	Delete(ctx context.Context, id string) error
	// All returns every stored player record.
	All(ctx context.Context) ([]*state.PlayerState, error)
}

// GameStore is the game persistence surface the engine consumes.
type GameStore interface {
	// Get returns the stored game or a GAME_NOT_FOUND GameError.
	Get(ctx context.Context, id string) (*state.GameData, error)
	// Save validates the config and persists the record.
	Save(ctx context.Context, g *state.GameData) error
	// NewGameID returns an unused random game id.
	NewGameID(ctx context.Context) (string, error)
}

// Engine validates and applies game commands against the stores. It is
// constructed once at process setup and passed by parameter; it holds no
// mutable state of its own, so concurrent invocations only contend on the
// store.
type Engine struct {
	players  PlayerStore
	games    GameStore
	commands *command.Registry
	clock    Clock
	defaults config.GameConfig
	logger   *zap.Logger
}

// NewEngine creates an Engine with the given dependencies.
//
// Precondition: players, games, registry, clock, and logger must be non-nil.
// Postcondition: Returns a fully initialised Engine.
func NewEngine(
	players PlayerStore,
	games GameStore,
	registry *command.Registry,
	clock Clock,
	defaults config.GameConfig,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		players:  players,
		games:    games,
		commands: registry,
		clock:    clock,
		defaults: defaults,
		logger:   logger,
	}
}

// HandleCommand is the single entry point of the engine: it loads the
// caller's state, applies the recovery check, expands the repeat shortcut,
// records command history, fuzzy-matches the command, routes to the matching
// rule, and returns the reply. User mistakes come back as reply text;
// returned errors are reserved for store failures and state-invariant
// violations.
//
// Postcondition: On success, all state changes are persisted and the reply
// is non-empty. On error, no reply text is returned.
func (e *Engine) HandleCommand(ctx context.Context, playerID, rawText string) (string, error) {
	p, err := e.players.Get(ctx, playerID)
	if err != nil {
		return "", err
	}
	now := e.clock.Now().Unix()

	boosted := applyRecovery(p, now)
	if boosted {
		e.logger.Info("recovery boost applied",
			zap.String("player", p.ID),
			zap.Int("resources", p.Resources),
		)
	}

	rawText = strings.TrimSpace(rawText)
	parsed := command.Parse(rawText)

	repeat := parsed.Command == command.RepeatShortcut
	if repeat {
		if p.LastMessage == "" {
			if err := e.players.Save(ctx, p); err != nil {
				return "", err
			}
			return e.withBoost(p, boosted, e.reply(p, "no_last_command", nil)), nil
		}
		// The stored text is never "." itself, so one expansion suffices.
		parsed = command.Parse(p.LastMessage)
	}

	cmd, ok := e.commands.Match(parsed.Command, p.IsAdmin)
	if !ok {
		if err := e.players.Save(ctx, p); err != nil {
			return "", err
		}
		return e.withBoost(p, boosted, e.helpText(p)), nil
	}

	if !repeat {
		p.RecordCommand(rawText)
	}
	// History and recovery are persisted before rule evaluation; failed
	// preconditions must not roll them back.
	if err := e.players.Save(ctx, p); err != nil {
		return "", err
	}

	reply, err := e.route(ctx, cmd, p, parsed, now)
	if err != nil {
		return "", err
	}
	return e.withBoost(p, boosted, reply), nil
}

// route invokes the rule for a matched command.
func (e *Engine) route(ctx context.Context, cmd *command.Command, p *state.PlayerState, parsed command.ParseResult, now int64) (string, error) {
	switch cmd.Handler {
	case command.HandlerRegister:
		return e.handleRegister(ctx, p, parsed.RawArgs)
	case command.HandlerLanguage:
		return e.handleLanguage(ctx, p, parsed.Args)
	case command.HandlerCreate:
		return e.handleCreate(ctx, p, parsed.RawArgs, now)
	case command.HandlerCreateGame:
		return e.handleCreateGame(ctx, p, parsed.Args, now)
	case command.HandlerJoin:
		return e.handleJoin(ctx, p, parsed.Args)
	case command.HandlerLeave:
		return e.handleLeave(ctx, p)
	case command.HandlerAttack:
		return e.handleAttack(ctx, p, parsed.RawArgs, now)
	case command.HandlerDefend:
		return e.handleDefend(ctx, p, now)
	case command.HandlerCollect:
		return e.handleCollect(ctx, p, now)
	case command.HandlerAlliance:
		return e.handleAlliance(ctx, p, parsed.RawArgs)
	case command.HandlerStatus:
		return e.handleStatus(ctx, p, now)
	case command.HandlerPlayers:
		return e.handlePlayers(ctx, p)
	case command.HandlerHistory:
		return e.handleHistory(p), nil
	case command.HandlerHelp:
		return e.helpText(p), nil
	case command.HandlerDelete:
		return e.handleDelete(ctx, p, parsed.RawArgs)
	case command.HandlerGive:
		return e.handleGive(ctx, p, parsed.Args)
	case command.HandlerSetLevel:
		return e.handleSetLevel(ctx, p, parsed.Args)
	default:
		// Unreachable while the registry and this table stay in sync.
		return e.helpText(p), nil
	}
}

// reply renders a translated message for the player.
func (e *Engine) reply(p *state.PlayerState, key string, params map[string]string) string {
	return lang.Translate(p.Language, key, params)
}

// withBoost prefixes the recovery-boost notice when the check granted one.
func (e *Engine) withBoost(p *state.PlayerState, boosted bool, reply string) string {
	if !boosted {
		return reply
	}
	notice := e.reply(p, "recovery_boost", map[string]string{
		"resources": formatThousands(state.RecoveryBoostAmount),
		"defense":   formatThousands(state.RecoveryBoostAmount / 2),
	})
	return notice + "\n\n" + reply
}

// helpCategories fixes the section order of the help output. Admin commands
// come last and only for admin callers.
var helpCategories = []string{
	command.CategoryAccount,
	command.CategoryGame,
	command.CategoryBattle,
	command.CategoryDiplomacy,
	command.CategoryInfo,
}

// helpText lists the available commands by category, with the admin section
// appended for admin callers.
func (e *Engine) helpText(p *state.PlayerState) string {
	byCategory := e.commands.CommandsByCategory()

	var b strings.Builder
	b.WriteString(e.reply(p, "help_header", nil))
	for _, cat := range helpCategories {
		for _, cmd := range byCategory[cat] {
			b.WriteString("\n• *")
			b.WriteString(cmd.Usage)
			b.WriteString("*: ")
			b.WriteString(cmd.Help)
		}
	}

	if p.IsAdmin {
		b.WriteString("\n\n")
		b.WriteString(e.reply(p, "admin_help_header", nil))
		for _, cmd := range byCategory[command.CategoryAdmin] {
			b.WriteString("\n• *")
			b.WriteString(cmd.Usage)
			b.WriteString("*: ")
			b.WriteString(cmd.Help)
		}
	}
	return b.String()
}

// requireRegistered returns a reply for unregistered callers, or "".
func (e *Engine) requireRegistered(p *state.PlayerState) string {
	if !p.Registered {
		return e.reply(p, "not_registered", nil)
	}
	return ""
}

// requireInGame returns a reply for callers outside any game, or "".
// Registration is implied: unregistered players are never in a game, and
// the registration message takes priority.
func (e *Engine) requireInGame(p *state.PlayerState) string {
	if msg := e.requireRegistered(p); msg != "" {
		return msg
	}
	if !p.InGame() {
		return e.reply(p, "join_game_first", nil)
	}
	return ""
}
