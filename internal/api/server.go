package api

import (
	"context"
	"log"
	"os"
	"strings"

	"fieldroute/internal/config"
	"fieldroute/internal/directions"
	"fieldroute/internal/engine"
	"fieldroute/internal/store"
)

// Server wires the engine, monitor, store and position cache behind HTTP.
type Server struct {
	Optimizer *engine.Optimizer
	Monitor   *engine.Monitor
	Store     store.Store
	Positions *PositionCache
}

// NewServer builds a Server from the environment. Without DATABASE_URL it
// uses the in-memory store; without REDIS_URL the in-process route cache.
func NewServer() (*Server, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	opt := engine.New(cfg)
	if url := os.Getenv("REDIS_URL"); url != "" {
		if rc, err := engine.NewRedisCache(url, cfg.CacheTTL()); err == nil {
			opt.WithCache(rc)
		} else {
			log.Printf("redis cache unavailable, using memory: %v", err)
		}
	}
	if base := os.Getenv("DIRECTIONS_URL"); base != "" {
		opt.WithDirections(directions.NewClient(base, os.Getenv("DIRECTIONS_API_KEY")))
	}

	var s store.Store
	dsn := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(dsn) == "" {
		s = store.NewMemory()
	} else {
		sp, err := store.NewPostgres(dsn)
		if err != nil {
			return nil, err
		}
		if os.Getenv("DB_MIGRATE") != "false" {
			if err := sp.EnsureSchema(context.Background()); err != nil {
				return nil, err
			}
		}
		s = sp
	}

	return &Server{
		Optimizer: opt,
		Monitor:   engine.NewMonitor(opt),
		Store:     s,
		Positions: NewPositionCache(),
	}, nil
}
