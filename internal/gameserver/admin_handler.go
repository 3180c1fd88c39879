package gameserver

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/alliancewars/internal/game/state"
	storageredis "github.com/cory-johannsen/alliancewars/internal/storage/redis"
)

// handleDelete erases the named player's record. Admin only.
func (e *Engine) handleDelete(ctx context.Context, p *state.PlayerState, targetName string) (string, error) {
	if !p.IsAdmin {
		return e.reply(p, "not_authorized", nil), nil
	}
	if targetName == "" {
		return e.reply(p, "delete_usage", nil), nil
	}

	target, err := e.findByName(ctx, targetName)
	if err != nil {
		return "", err
	}
	if target == nil {
		return e.reply(p, "player_not_found", map[string]string{"name": targetName}), nil
	}

	if target.InGame() {
		if err := e.removeFromCurrentGame(ctx, target); err != nil {
			return "", err
		}
	}
	if err := e.players.Delete(ctx, target.ID); err != nil {
		if errors.Is(err, storageredis.ErrPlayerNotFound) {
			return e.reply(p, "player_not_found", map[string]string{"name": targetName}), nil
		}
		return "", err
	}

	e.logger.Info("player deleted",
		zap.String("admin", p.ID),
		zap.String("player", target.ID),
	)
	return e.reply(p, "player_deleted", map[string]string{"name": target.Name}), nil
}

// handleGive grants resources to the named player. Admin only.
func (e *Engine) handleGive(ctx context.Context, p *state.PlayerState, args []string) (string, error) {
	if !p.IsAdmin {
		return e.reply(p, "not_authorized", nil), nil
	}
	if len(args) < 2 {
		return e.reply(p, "give_usage", nil), nil
	}

	amount, ok := parseAmount(args[len(args)-1])
	if !ok {
		return e.reply(p, "invalid_amount", nil), nil
	}
	targetName := strings.Join(args[:len(args)-1], " ")

	target, err := e.findByName(ctx, targetName)
	if err != nil {
		return "", err
	}
	if target == nil {
		return e.reply(p, "player_not_found", map[string]string{"name": targetName}), nil
	}

	// Negative amounts debit; the floor-at-zero rule still applies.
	if amount >= 0 {
		target.Resources += amount
	} else {
		target.SpendResources(-amount)
	}
	if err := e.players.Save(ctx, target); err != nil {
		return "", err
	}

	e.logger.Info("resources granted",
		zap.String("admin", p.ID),
		zap.String("player", target.ID),
		zap.Int("amount", amount),
	)
	return e.reply(p, "gave_resources", map[string]string{
		"name":   target.Name,
		"amount": formatThousands(amount),
	}), nil
}

// handleSetLevel sets the named player's level. Admin only.
func (e *Engine) handleSetLevel(ctx context.Context, p *state.PlayerState, args []string) (string, error) {
	if !p.IsAdmin {
		return e.reply(p, "not_authorized", nil), nil
	}
	if len(args) < 2 {
		return e.reply(p, "setlevel_usage", nil), nil
	}

	level, err := strconv.Atoi(args[len(args)-1])
	if err != nil || level < 1 {
		return e.reply(p, "invalid_level", nil), nil
	}
	targetName := strings.Join(args[:len(args)-1], " ")

	target, err := e.findByName(ctx, targetName)
	if err != nil {
		return "", err
	}
	if target == nil {
		return e.reply(p, "player_not_found", map[string]string{"name": targetName}), nil
	}

	target.Level = level
	if err := e.players.Save(ctx, target); err != nil {
		return "", err
	}

	e.logger.Info("level set",
		zap.String("admin", p.ID),
		zap.String("player", target.ID),
		zap.Int("level", level),
	)
	return e.reply(p, "level_set", map[string]string{
		"name":  target.Name,
		"level": strconv.Itoa(level),
	}), nil
}

// parseAmount reads an integer argument, tolerating comma grouping. Sign is
// preserved: give treats negative amounts as a debit.
func parseAmount(s string) (int, bool) {
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}
