// Package main provides the Alliance Wars game server binary: the rules
// engine behind an HTTP surface for the web-client.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/alliancewars/internal/config"
	"github.com/cory-johannsen/alliancewars/internal/game/command"
	"github.com/cory-johannsen/alliancewars/internal/gameserver"
	"github.com/cory-johannsen/alliancewars/internal/observability"
	"github.com/cory-johannsen/alliancewars/internal/server"
	storageredis "github.com/cory-johannsen/alliancewars/internal/storage/redis"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	// Connect to Redis for player and game persistence.
	storeStart := time.Now()
	client, err := storageredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal("connecting to redis", zap.Error(err))
	}
	logger.Info("redis connected",
		zap.String("addr", cfg.Redis.Addr),
		zap.Duration("elapsed", time.Since(storeStart)),
	)

	players := storageredis.NewPlayerRepository(client)
	games := storageredis.NewGameRepository(client)

	engine := gameserver.NewEngine(
		players,
		games,
		command.DefaultRegistry(),
		gameserver.SystemClock{},
		cfg.Game,
		logger,
	)

	httpSrv := server.NewHTTPServer(cfg.Server, engine, players, client, logger)

	lifecycle := server.NewLifecycle(logger)

	// Services stop in reverse order: the HTTP server drains before the
	// Redis connection closes.
	redisDone := make(chan struct{})
	lifecycle.Add("redis", &server.FuncService{
		StartFn: func() error {
			<-redisDone
			return nil
		},
		StopFn: func() {
			if err := client.Close(); err != nil {
				logger.Warn("closing redis", zap.Error(err))
			}
			close(redisDone)
		},
	})
	lifecycle.Add("http", httpSrv)

	logger.Info("game server initialized",
		zap.Duration("startup", time.Since(start)),
		zap.String("http_addr", cfg.Server.Addr()),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
