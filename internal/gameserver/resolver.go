package gameserver

import (
	"context"

	"github.com/cory-johannsen/alliancewars/internal/game/command"
	"github.com/cory-johannsen/alliancewars/internal/game/state"
)

// findByName resolves a human-typed name to a registered player with the
// same tolerance as command matching: case-insensitive exact match first,
// then the best fuzzy candidate above the similarity threshold.
//
// Postcondition: Returns (player, nil) or (nil, nil) when nothing matches;
// errors are store failures only.
func (e *Engine) findByName(ctx context.Context, name string) (*state.PlayerState, error) {
	all, err := e.players.All(ctx)
	if err != nil {
		return nil, err
	}

	var registered []*state.PlayerState
	var names []string
	for _, p := range all {
		if !p.Registered || p.Name == "" {
			continue
		}
		registered = append(registered, p)
		names = append(names, p.Name)
	}

	idx, ok := command.BestName(name, names)
	if !ok {
		return nil, nil
	}
	return registered[idx], nil
}
