package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/alliancewars/internal/config"
	"github.com/cory-johannsen/alliancewars/internal/game/command"
	"github.com/cory-johannsen/alliancewars/internal/game/state"
	"github.com/cory-johannsen/alliancewars/internal/gameserver"
	storageredis "github.com/cory-johannsen/alliancewars/internal/storage/redis"
)

type testHarness struct {
	ts      *httptest.Server
	players *storageredis.PlayerRepository
}

func newTestServer(t *testing.T) *testHarness {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	client := storageredis.NewClientFromRedis(rdb)
	players := storageredis.NewPlayerRepository(client)
	games := storageredis.NewGameRepository(client)
	logger := zaptest.NewLogger(t)

	engine := gameserver.NewEngine(players, games, command.DefaultRegistry(), gameserver.SystemClock{}, config.Defaults().Game, logger)
	srv := NewHTTPServer(config.Defaults().Server, engine, players, client, logger)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &testHarness{ts: ts, players: players}
}

func (h *testHarness) post(t *testing.T, path string, body any) (*http.Response, []byte) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(h.ts.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func (h *testHarness) command(t *testing.T, playerID, text string) commandResponse {
	t.Helper()
	resp, body := h.post(t, "/command", commandRequest{PlayerID: playerID, Text: text})
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %s", body)

	var out commandResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t)

	resp, err := http.Get(h.ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCommandDispatch(t *testing.T) {
	h := newTestServer(t)

	out := h.command(t, "p1", "register Alice")
	assert.Contains(t, out.Message, "Alice")
	assert.Empty(t, out.PlayerID, "known callers are not issued ids")

	p, err := h.players.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, p.Registered)
}

func TestCommandIssuesIDForAnonymousCallers(t *testing.T) {
	h := newTestServer(t)

	out := h.command(t, "", "help")
	assert.NotEmpty(t, out.PlayerID)
	assert.Contains(t, out.Message, "Available Commands")

	// The issued id is stable for follow-up calls.
	next := h.command(t, out.PlayerID, "register Ghost")
	assert.Contains(t, next.Message, "Ghost")
}

func TestCommandRejectsMalformedBody(t *testing.T) {
	h := newTestServer(t)

	resp, err := http.Post(h.ts.URL+"/command", "application/json", bytes.NewReader([]byte("{")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStatusReturnsPlayerRecord(t *testing.T) {
	h := newTestServer(t)
	h.command(t, "p1", "register Alice")

	resp, err := http.Get(h.ts.URL + "/status/p1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var p state.PlayerState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	assert.Equal(t, "Alice", p.Name)
	assert.True(t, p.Registered)
}

func TestStatusUnknownIDReturnsDefaults(t *testing.T) {
	h := newTestServer(t)

	resp, err := http.Get(h.ts.URL + "/status/nobody")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var p state.PlayerState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	assert.False(t, p.Registered)
	assert.Equal(t, state.DefaultStartingResources, p.Resources)
}

func TestRestartRequiresAdmin(t *testing.T) {
	h := newTestServer(t)
	h.command(t, "p1", "register Alice")

	resp, _ := h.post(t, "/restart", restartRequest{PlayerID: "p1"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	p, err := h.players.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, p.Registered, "nothing was wiped")
}

func TestRestartWipesAndReseedsWebClient(t *testing.T) {
	h := newTestServer(t)
	h.command(t, "p1", "register Alice")

	admin := state.NewPlayerState("root")
	admin.Name = "Root"
	admin.Registered = true
	admin.IsAdmin = true
	require.NoError(t, h.players.Save(context.Background(), admin))

	resp, _ := h.post(t, "/restart", restartRequest{PlayerID: "root"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	gone, err := h.players.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.False(t, gone.Registered, "old records are wiped")

	seed, err := h.players.Get(context.Background(), WebClientID)
	require.NoError(t, err)
	assert.True(t, seed.IsAdmin)
	assert.Equal(t, 10, seed.Level)
	assert.Equal(t, 1000, seed.Resources)
}

func TestServerStartStop(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	client := storageredis.NewClientFromRedis(rdb)
	players := storageredis.NewPlayerRepository(client)
	games := storageredis.NewGameRepository(client)
	logger := zaptest.NewLogger(t)
	engine := gameserver.NewEngine(players, games, command.DefaultRegistry(), gameserver.SystemClock{}, config.Defaults().Game, logger)

	cfg := config.Defaults().Server
	cfg.Port = 0 // unused; listener fails fast if the port is taken
	srv := NewHTTPServer(cfg, engine, players, client, logger)

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	time.Sleep(50 * time.Millisecond)
	srv.Stop()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop in time")
	}
}
