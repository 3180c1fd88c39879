// Package testutil provides test helpers including container management for
// integration tests against a real Redis.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/cory-johannsen/alliancewars/internal/config"
	storage "github.com/cory-johannsen/alliancewars/internal/storage/redis"
)

// RedisContainer wraps a testcontainers Redis instance.
type RedisContainer struct {
	container testcontainers.Container
	Client    *storage.Client
	Config    config.RedisConfig
}

// NewRedisContainer starts a Redis test container and returns a connected
// store client.
//
// Precondition: Docker must be available.
// Postcondition: Returns a running container with a connected client, or
// fails the test.
func NewRedisContainer(t *testing.T) *RedisContainer {
	t.Helper()
	ctx := context.Background()
	start := time.Now()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor: wait.ForLog("Ready to accept connections").
			WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("starting redis container: %v [%s]", err, time.Since(start))
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("getting container host: %v", err)
	}

	mappedPort, err := container.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("getting mapped port: %v", err)
	}

	cfg := config.RedisConfig{
		Addr:        host + ":" + mappedPort.Port(),
		DB:          0,
		DialTimeout: 5 * time.Second,
	}

	client, err := storage.NewClient(ctx, cfg)
	if err != nil {
		t.Fatalf("connecting to redis container: %v", err)
	}

	t.Cleanup(func() {
		client.Close() //nolint:errcheck
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminating redis container: %v", err)
		}
	})

	return &RedisContainer{
		container: container,
		Client:    client,
		Config:    cfg,
	}
}
