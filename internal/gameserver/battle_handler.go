package gameserver

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/cory-johannsen/alliancewars/internal/game/state"
)

// handleAttack resolves a battle against the named target.
//
// Damage scales the attacker's advantage by the level ratio and floors at
// zero; a tenth of the damage transfers from the target's resources to the
// attacker's.
func (e *Engine) handleAttack(ctx context.Context, p *state.PlayerState, targetName string, now int64) (string, error) {
	if msg := e.requireInGame(p); msg != "" {
		return msg, nil
	}
	if targetName == "" {
		return e.reply(p, "target_required", nil), nil
	}
	if remaining := state.CooldownAttack - (now - p.LastAttack); p.LastAttack > 0 && remaining > 0 {
		return e.reply(p, "attack_cooldown", map[string]string{
			"seconds": strconv.FormatInt(remaining, 10),
		}), nil
	}

	target, err := e.findByName(ctx, targetName)
	if err != nil {
		return "", err
	}
	if target == nil || target.GameID != p.GameID {
		return e.reply(p, "player_not_found", map[string]string{"name": targetName}), nil
	}
	if target.ID == p.ID {
		return e.reply(p, "self_attack", nil), nil
	}
	if p.AlliedWith(target.ID) {
		return e.reply(p, "ally_attack", map[string]string{"name": target.Name}), nil
	}

	rawDamage := p.AttackPower - target.DefensePoints
	if rawDamage < 0 {
		rawDamage = 0
	}
	damage := int(float64(rawDamage) * float64(p.Level) / float64(target.Level))
	stolen := damage / 10

	target.SpendResources(stolen)
	p.Resources += stolen
	p.SuccessfulBattles++
	p.LastAttack = now

	// Target first: if its save fails the attacker keeps their cooldown
	// window and no resources move.
	if err := e.players.Save(ctx, target); err != nil {
		return "", err
	}
	if err := e.players.Save(ctx, p); err != nil {
		return "", err
	}

	e.logger.Info("attack resolved",
		zap.String("attacker", p.ID),
		zap.String("target", target.ID),
		zap.Int("damage", damage),
		zap.Int("stolen", stolen),
	)
	return e.reply(p, "attack_success", map[string]string{
		"name":   target.Name,
		"damage": formatThousands(damage),
		"stolen": formatThousands(stolen),
	}), nil
}

// handleDefend raises the caller's defense by a level-scaled boost.
func (e *Engine) handleDefend(ctx context.Context, p *state.PlayerState, now int64) (string, error) {
	if msg := e.requireInGame(p); msg != "" {
		return msg, nil
	}
	if remaining := state.CooldownDefend - (now - p.LastDefense); p.LastDefense > 0 && remaining > 0 {
		return e.reply(p, "defend_cooldown", map[string]string{
			"seconds": strconv.FormatInt(remaining, 10),
		}), nil
	}

	boost := 5 * p.Level
	p.DefensePoints += boost
	p.LastDefense = now
	if err := e.players.Save(ctx, p); err != nil {
		return "", err
	}
	return e.reply(p, "defend_success", map[string]string{
		"boost":   formatThousands(boost),
		"defense": formatThousands(p.DefensePoints),
	}), nil
}

// handleCollect grants the level-scaled resource income.
func (e *Engine) handleCollect(ctx context.Context, p *state.PlayerState, now int64) (string, error) {
	if msg := e.requireInGame(p); msg != "" {
		return msg, nil
	}
	if remaining := state.CooldownCollect - (now - p.LastCollect); p.LastCollect > 0 && remaining > 0 {
		return e.reply(p, "collect_cooldown", map[string]string{
			"seconds": strconv.FormatInt(remaining, 10),
		}), nil
	}

	amount := 15 + 2*p.Level
	p.Resources += amount
	p.LastCollect = now
	if err := e.players.Save(ctx, p); err != nil {
		return "", err
	}
	return e.reply(p, "collect_success", map[string]string{
		"amount": formatThousands(amount),
		"total":  formatThousands(p.Resources),
	}), nil
}
