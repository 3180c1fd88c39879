package gameserver

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/alliancewars/internal/game/state"
)

// handleCreate creates a game with the configured defaults and places the
// caller inside it.
func (e *Engine) handleCreate(ctx context.Context, p *state.PlayerState, name string, now int64) (string, error) {
	if msg := e.requireRegistered(p); msg != "" {
		return msg, nil
	}
	if name == "" {
		return e.reply(p, "game_name_required", nil), nil
	}

	return e.createGame(ctx, p, state.GameConfig{
		Name:              name,
		Duration:          int64(e.defaults.DefaultDuration.Seconds()),
		MaxPlayers:        e.defaults.DefaultMaxPlayers,
		StartingResources: e.defaults.StartingResources,
		StartingDefense:   e.defaults.StartingDefense,
		StartingAttack:    e.defaults.StartingAttack,
		CreatedAt:         now,
		HostID:            p.ID,
	})
}

// handleCreateGame creates a game with explicit duration and capacity.
// Admin only.
func (e *Engine) handleCreateGame(ctx context.Context, p *state.PlayerState, args []string, now int64) (string, error) {
	if !p.IsAdmin {
		return e.reply(p, "not_authorized", nil), nil
	}
	if msg := e.requireRegistered(p); msg != "" {
		return msg, nil
	}
	if len(args) < 3 {
		return e.reply(p, "create_game_usage", nil), nil
	}

	hours, err := strconv.Atoi(args[1])
	if err != nil || hours <= 0 {
		return e.reply(p, "create_game_usage", nil), nil
	}
	maxPlayers, err := strconv.Atoi(args[2])
	if err != nil || maxPlayers <= 1 {
		return e.reply(p, "create_game_usage", nil), nil
	}

	return e.createGame(ctx, p, state.GameConfig{
		Name:              args[0],
		Duration:          int64(hours) * 3600,
		MaxPlayers:        maxPlayers,
		StartingResources: e.defaults.StartingResources,
		StartingDefense:   e.defaults.StartingDefense,
		StartingAttack:    e.defaults.StartingAttack,
		CreatedAt:         now,
		HostID:            p.ID,
	})
}

// createGame stores the new game and moves the caller onto its roster with
// the starting stats.
func (e *Engine) createGame(ctx context.Context, p *state.PlayerState, cfg state.GameConfig) (string, error) {
	id, err := e.games.NewGameID(ctx)
	if err != nil {
		return "", err
	}
	cfg.ID = id

	cfg, err = state.ValidateGameConfig(cfg)
	if err != nil {
		return "", err
	}

	if err := e.removeFromCurrentGame(ctx, p); err != nil {
		return "", err
	}

	g := state.NewGameData(cfg)
	g.AddPlayer(p.ID)
	if err := e.games.Save(ctx, g); err != nil {
		return "", err
	}

	e.enterGame(p, cfg)
	if err := e.players.Save(ctx, p); err != nil {
		return "", err
	}

	e.logger.Info("game created",
		zap.String("game", cfg.ID),
		zap.String("host", p.ID),
	)
	return e.reply(p, "game_created", map[string]string{"name": cfg.Name, "id": cfg.ID}), nil
}

// handleJoin places the caller into an existing game if there is room.
func (e *Engine) handleJoin(ctx context.Context, p *state.PlayerState, args []string) (string, error) {
	if msg := e.requireRegistered(p); msg != "" {
		return msg, nil
	}
	if len(args) == 0 {
		return e.reply(p, "game_id_required", nil), nil
	}

	gameID := args[0]
	g, err := e.games.Get(ctx, gameID)
	if err != nil {
		if ge, ok := state.IsGameError(err); ok && ge.Code == state.CodeGameNotFound {
			return e.reply(p, "game_not_found", nil), nil
		}
		return "", err
	}
	if g.Full() {
		return e.reply(p, "game_full", nil), nil
	}

	if err := e.removeFromCurrentGame(ctx, p); err != nil {
		return "", err
	}

	g.AddPlayer(p.ID)
	if err := e.games.Save(ctx, g); err != nil {
		return "", err
	}

	e.enterGame(p, g.Config)
	if err := e.players.Save(ctx, p); err != nil {
		return "", err
	}
	return e.reply(p, "game_joined", map[string]string{"name": g.Config.Name}), nil
}

// handleLeave returns the caller to the lobby with default stats.
func (e *Engine) handleLeave(ctx context.Context, p *state.PlayerState) (string, error) {
	if msg := e.requireInGame(p); msg != "" {
		return msg, nil
	}

	if err := e.removeFromCurrentGame(ctx, p); err != nil {
		return "", err
	}

	p.ResetToDefaults()
	if err := e.players.Save(ctx, p); err != nil {
		return "", err
	}
	return e.reply(p, "left_game", nil), nil
}

// enterGame resets the player's combat stats to the game's starting values.
func (e *Engine) enterGame(p *state.PlayerState, cfg state.GameConfig) {
	p.GameID = cfg.ID
	p.Resources = cfg.StartingResources
	p.DefensePoints = cfg.StartingDefense
	p.AttackPower = cfg.StartingAttack
}

// removeFromCurrentGame drops the caller from their current game's roster,
// if any. A missing game record is tolerated: the player can always get back
// to the lobby.
func (e *Engine) removeFromCurrentGame(ctx context.Context, p *state.PlayerState) error {
	if !p.InGame() {
		return nil
	}

	g, err := e.games.Get(ctx, p.GameID)
	if err != nil {
		if ge, ok := state.IsGameError(err); ok && ge.Code == state.CodeGameNotFound {
			e.logger.Warn("leaving a game whose record is gone",
				zap.String("game", p.GameID),
				zap.String("player", p.ID),
			)
			return nil
		}
		return err
	}

	g.RemovePlayer(p.ID)
	return e.games.Save(ctx, g)
}

// handleStatus reports the caller's full state, including cooldown
// readiness and the remaining game time.
func (e *Engine) handleStatus(ctx context.Context, p *state.PlayerState, now int64) (string, error) {
	if msg := e.requireRegistered(p); msg != "" {
		return msg, nil
	}

	names, err := e.nameIndex(ctx)
	if err != nil {
		return "", err
	}

	game := "-"
	timeLeft := "-"
	if p.InGame() {
		game = p.GameID
		g, err := e.games.Get(ctx, p.GameID)
		if err == nil {
			remaining := g.Config.Duration - (now - g.Config.CreatedAt)
			timeLeft = formatDuration(remaining)
		}
	}

	return e.reply(p, "status", map[string]string{
		"name":         p.Name,
		"game":         game,
		"resources":    formatThousands(p.Resources),
		"defense":      formatThousands(p.DefensePoints),
		"attack":       formatThousands(p.AttackPower),
		"level":        strconv.Itoa(p.Level),
		"battles":      strconv.Itoa(p.SuccessfulBattles),
		"timeLeft":     timeLeft,
		"alliances":    joinNames(p.Alliances, names),
		"pending":      joinNames(p.PendingAlliances, names),
		"attackReady":  e.readiness(p, now-p.LastAttack >= state.CooldownAttack),
		"defendReady":  e.readiness(p, now-p.LastDefense >= state.CooldownDefend),
		"collectReady": e.readiness(p, now-p.LastCollect >= state.CooldownCollect),
	}), nil
}

func (e *Engine) readiness(p *state.PlayerState, ready bool) string {
	if ready {
		return e.reply(p, "ready", nil)
	}
	return e.reply(p, "cooling_down", nil)
}

// nameIndex maps player ids to display names for status replies.
func (e *Engine) nameIndex(ctx context.Context) (map[string]string, error) {
	all, err := e.players.All(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(all))
	for _, p := range all {
		names[p.ID] = p.Name
	}
	return names, nil
}

// joinNames renders a list of player ids as display names where known.
func joinNames(ids []string, names map[string]string) string {
	if len(ids) == 0 {
		return "None"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		if name, ok := names[id]; ok && name != "" {
			parts[i] = name
		} else {
			parts[i] = id
		}
	}
	return strings.Join(parts, ", ")
}

// handlePlayers lists registered players: the caller's game-mates when
// inside a game, everyone otherwise.
func (e *Engine) handlePlayers(ctx context.Context, p *state.PlayerState) (string, error) {
	all, err := e.players.All(ctx)
	if err != nil {
		return "", err
	}

	var listed []*state.PlayerState
	for _, other := range all {
		if !other.Registered {
			continue
		}
		if p.InGame() && other.GameID != p.GameID {
			continue
		}
		listed = append(listed, other)
	}
	if len(listed) == 0 {
		return e.reply(p, "no_players", nil), nil
	}

	sort.Slice(listed, func(i, j int) bool { return listed[i].Name < listed[j].Name })

	var b strings.Builder
	b.WriteString(e.reply(p, "players_header", nil))
	for _, other := range listed {
		b.WriteString(fmt.Sprintf("\n• %s (Level %d)", other.Name, other.Level))
	}
	return b.String(), nil
}
