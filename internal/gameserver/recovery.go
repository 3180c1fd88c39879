package gameserver

import "github.com/cory-johannsen/alliancewars/internal/game/state"

// weakPlayerThreshold is the resource level below which the recovery boost
// applies: half of the default starting resources.
const weakPlayerThreshold = state.DefaultStartingResources * state.WeakPlayerThresholdPc / 100

// applyRecovery runs the once-per-interval recovery check before dispatch.
// Weak players are granted resources and defense; the check timestamp is
// always advanced, boost or not.
//
// Postcondition: p.LastRecoveryCheck == now; returns whether a boost applied.
func applyRecovery(p *state.PlayerState, now int64) bool {
	due := now-p.LastRecoveryCheck >= state.RecoveryInterval
	p.LastRecoveryCheck = now
	if !due || p.Resources >= weakPlayerThreshold {
		return false
	}

	p.Resources += state.RecoveryBoostAmount
	p.DefensePoints += state.RecoveryBoostAmount / 2
	return true
}
