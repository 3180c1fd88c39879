package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"

	goredis "github.com/redis/go-redis/v9"

	"github.com/cory-johannsen/alliancewars/internal/game/state"
)

// gameIDAttempts bounds the retry loop when drawing a fresh game id.
const gameIDAttempts = 20

// GameRepository persists GameData records keyed by game id.
type GameRepository struct {
	client *Client
}

// NewGameRepository creates a GameRepository backed by the given client.
//
// Precondition: client must be non-nil and connected.
func NewGameRepository(client *Client) *GameRepository {
	return &GameRepository{client: client}
}

// Get loads the game record for id.
//
// Postcondition: Returns the GameData, or a *state.GameError with code
// GAME_NOT_FOUND when no record exists.
func (r *GameRepository) Get(ctx context.Context, id string) (*state.GameData, error) {
	data, err := r.client.rdb.Get(ctx, gameKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, state.NewGameError(state.CodeGameNotFound, fmt.Sprintf("game %q does not exist", id))
	}
	if err != nil {
		return nil, fmt.Errorf("getting game %q: %w", id, err)
	}

	var g state.GameData
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("decoding game %q: %w", id, err)
	}
	return &g, nil
}

// Save validates the config and persists the game record.
//
// Postcondition: Returns nil on success; a *state.GameError when the config
// violates its invariants.
func (r *GameRepository) Save(ctx context.Context, g *state.GameData) error {
	cfg, err := state.ValidateGameConfig(g.Config)
	if err != nil {
		return err
	}
	g.Config = cfg

	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encoding game %q: %w", g.Config.ID, err)
	}
	if err := r.client.rdb.Set(ctx, gameKey(g.Config.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("saving game %q: %w", g.Config.ID, err)
	}
	return nil
}

// Exists reports whether a game record is stored under id.
func (r *GameRepository) Exists(ctx context.Context, id string) (bool, error) {
	n, err := r.client.rdb.Exists(ctx, gameKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("checking game %q: %w", id, err)
	}
	return n > 0, nil
}

// NewGameID draws a random 5-digit game id that is not already in use.
// Uniqueness is enforced against the live keyspace rather than accepted as a
// collision risk.
//
// Postcondition: Returns an unused id, or an error after bounded retries.
func (r *GameRepository) NewGameID(ctx context.Context) (string, error) {
	for i := 0; i < gameIDAttempts; i++ {
		id := fmt.Sprintf("%05d", 10000+rand.Intn(90000))
		exists, err := r.Exists(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	return "", fmt.Errorf("no free game id after %d attempts", gameIDAttempts)
}
