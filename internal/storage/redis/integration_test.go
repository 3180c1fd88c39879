//go:build integration

package redis_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/alliancewars/internal/game/state"
	storage "github.com/cory-johannsen/alliancewars/internal/storage/redis"
	"github.com/cory-johannsen/alliancewars/internal/testutil"
)

func TestPlayerLifecycle_RealRedis(t *testing.T) {
	rc := testutil.NewRedisContainer(t)
	players := storage.NewPlayerRepository(rc.Client)
	ctx := context.Background()

	p := state.NewPlayerState("whatsapp:+15550009999")
	p.Name = "Integration Ida"
	p.Registered = true
	require.NoError(t, players.Save(ctx, p))

	got, err := players.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	all, err := players.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, players.Delete(ctx, p.ID))
	assert.ErrorIs(t, players.Delete(ctx, p.ID), storage.ErrPlayerNotFound)
}

func TestGameLifecycle_RealRedis(t *testing.T) {
	rc := testutil.NewRedisContainer(t)
	games := storage.NewGameRepository(rc.Client)
	ctx := context.Background()

	id, err := games.NewGameID(ctx)
	require.NoError(t, err)

	g := state.NewGameData(state.GameConfig{
		ID:         id,
		Name:       "container war",
		Duration:   state.DefaultGameDuration,
		MaxPlayers: 6,
		HostID:     "host-1",
	})
	g.AddPlayer("host-1")
	require.NoError(t, games.Save(ctx, g))

	got, err := games.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "container war", got.Config.Name)
	assert.True(t, got.Players["host-1"])

	exists, err := games.Exists(ctx, id)
	require.NoError(t, err)
	assert.True(t, exists)
}
