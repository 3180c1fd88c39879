package gameserver

import (
	"context"

	"go.uber.org/zap"

	"github.com/cory-johannsen/alliancewars/internal/game/state"
)

// handleAlliance runs one leg of the alliance handshake with the named
// player. A fresh proposal is recorded on the caller; a matching inbound
// proposal from the other side forms the alliance for both.
func (e *Engine) handleAlliance(ctx context.Context, p *state.PlayerState, targetName string) (string, error) {
	if msg := e.requireInGame(p); msg != "" {
		return msg, nil
	}
	if targetName == "" {
		return e.reply(p, "alliance_target_required", nil), nil
	}

	target, err := e.findByName(ctx, targetName)
	if err != nil {
		return "", err
	}
	if target == nil || target.GameID != p.GameID {
		return e.reply(p, "player_not_found", map[string]string{"name": targetName}), nil
	}
	if target.ID == p.ID {
		return e.reply(p, "self_alliance", nil), nil
	}
	if p.AlliedWith(target.ID) {
		return e.reply(p, "already_allied", map[string]string{"name": target.Name}), nil
	}

	if target.HasPendingAllianceWith(p.ID) {
		// Their proposal meets ours: the alliance forms for both sides.
		target.RemovePendingAlliance(p.ID)
		p.RemovePendingAlliance(target.ID)
		target.Alliances = append(target.Alliances, p.ID)
		p.Alliances = append(p.Alliances, target.ID)

		if err := e.players.Save(ctx, target); err != nil {
			return "", err
		}
		if err := e.players.Save(ctx, p); err != nil {
			return "", err
		}
		e.logger.Info("alliance formed",
			zap.String("player", p.ID),
			zap.String("ally", target.ID),
		)
		return e.reply(p, "alliance_formed", map[string]string{"name": target.Name}), nil
	}

	if p.HasPendingAllianceWith(target.ID) {
		// Repeating the proposal is a no-op; it stays pending.
		return e.reply(p, "alliance_already_proposed", map[string]string{"name": target.Name}), nil
	}

	p.PendingAlliances = append(p.PendingAlliances, target.ID)
	if err := e.players.Save(ctx, p); err != nil {
		return "", err
	}
	return e.reply(p, "alliance_proposed", map[string]string{"name": target.Name}), nil
}
