package environment

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"lavatop-go/internal/config"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Env struct {
	Config  *config.Config
	Logger  *slog.Logger
	Clients *Clients

	Observability *http.Server
}

func Setup(ctx context.Context) (*Env, error) {
	// Load .env if present; absence is fine
	_ = godotenv.Load()

	var cfg config.Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("env processing: %w", err)
	}

	logger := initLogger(cfg)

	clients, err := newClients(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("newClients: %w", err)
	}

	return &Env{
		Config:        &cfg,
		Logger:        logger,
		Clients:       clients,
		Observability: initObservability(cfg),
	}, nil
}
