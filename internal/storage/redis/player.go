package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/cory-johannsen/alliancewars/internal/game/state"
)

// ErrPlayerNotFound is returned by Delete when the record does not exist.
var ErrPlayerNotFound = errors.New("player not found")

// PlayerRepository persists PlayerState records keyed by player id.
type PlayerRepository struct {
	client *Client
}

// NewPlayerRepository creates a PlayerRepository backed by the given client.
//
// Precondition: client must be non-nil and connected.
func NewPlayerRepository(client *Client) *PlayerRepository {
	return &PlayerRepository{client: client}
}

// Get loads the player record for id, or the default starting state when no
// record exists yet. First reference creates the player implicitly; only
// Save persists it.
//
// Postcondition: Returns a non-nil PlayerState or a non-nil error.
func (r *PlayerRepository) Get(ctx context.Context, id string) (*state.PlayerState, error) {
	data, err := r.client.rdb.Get(ctx, playerKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return state.NewPlayerState(id), nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting player %q: %w", id, err)
	}

	var p state.PlayerState
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding player %q: %w", id, err)
	}
	return &p, nil
}

// Save validates and persists the player record.
//
// Postcondition: Returns nil on success; a *state.GameError when the state
// violates its invariants.
func (r *PlayerRepository) Save(ctx context.Context, p *state.PlayerState) error {
	if err := state.ValidatePlayerState(p); err != nil {
		return err
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding player %q: %w", p.ID, err)
	}
	if err := r.client.rdb.Set(ctx, playerKey(p.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("saving player %q: %w", p.ID, err)
	}
	return nil
}

// Delete removes the player record entirely.
//
// Postcondition: Returns ErrPlayerNotFound if no record existed.
func (r *PlayerRepository) Delete(ctx context.Context, id string) error {
	n, err := r.client.rdb.Del(ctx, playerKey(id)).Result()
	if err != nil {
		return fmt.Errorf("deleting player %q: %w", id, err)
	}
	if n == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

// All returns every persisted player record. The scan is cursor-based so
// large keyspaces do not block the store.
//
// Postcondition: Returns all stored players in unspecified order.
func (r *PlayerRepository) All(ctx context.Context) ([]*state.PlayerState, error) {
	var players []*state.PlayerState

	iter := r.client.rdb.Scan(ctx, 0, playerKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		data, err := r.client.rdb.Get(ctx, iter.Val()).Bytes()
		if errors.Is(err, goredis.Nil) {
			continue // deleted between scan and get
		}
		if err != nil {
			return nil, fmt.Errorf("getting %q: %w", iter.Val(), err)
		}
		var p state.PlayerState
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decoding %q: %w", iter.Val(), err)
		}
		players = append(players, &p)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scanning players: %w", err)
	}
	return players, nil
}
