// Package main provides a CLI tool for granting or revoking a player's
// admin flag.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cory-johannsen/alliancewars/internal/config"
	storageredis "github.com/cory-johannsen/alliancewars/internal/storage/redis"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	playerID := flag.String("player", "", "target player id (required)")
	revoke := flag.Bool("revoke", false, "revoke the admin flag instead of granting it")
	flag.Parse()

	if *playerID == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := storageredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("connecting to redis: %v", err)
	}
	defer client.Close()

	repo := storageredis.NewPlayerRepository(client)

	p, err := repo.Get(ctx, *playerID)
	if err != nil {
		log.Fatalf("looking up player %q: %v", *playerID, err)
	}

	was := p.IsAdmin
	p.IsAdmin = !*revoke
	if err := repo.Save(ctx, p); err != nil {
		log.Fatalf("saving player: %v", err)
	}

	elapsed := time.Since(start)
	fmt.Fprintf(os.Stdout, "admin flag for %s (%s): %t -> %t [%s]\n",
		p.Name, p.ID, was, p.IsAdmin, elapsed)
}
