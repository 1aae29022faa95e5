package environment

import (
	"log/slog"

	"lavatop-go/internal/config"
	"lavatop-go/pkg/lavatop"
)

type Clients struct {
	LavaTop *lavatop.Client
}

func newClients(cfg config.Config, logger *slog.Logger) (*Clients, error) {
	client, err := provideLavaTop(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Clients{
		LavaTop: client,
	}, nil
}

func provideLavaTop(cfg config.Config, logger *slog.Logger) (*lavatop.Client, error) {
	opts := []lavatop.Option{
		lavatop.WithBaseURL(cfg.LavaTop.BaseURL),
		lavatop.WithTimeout(cfg.LavaTop.Timeout),
		lavatop.WithLogger(logger.With("client", "lavatop")),
	}

	if cfg.LavaTop.APIKey != "" {
		opts = append(opts, lavatop.WithAPIKey(cfg.LavaTop.APIKey))
	}
	if cfg.LavaTop.Token != "" {
		opts = append(opts, lavatop.WithBearerToken(cfg.LavaTop.Token))
	}
	if cfg.LavaTop.Username != "" && cfg.LavaTop.Password != "" {
		opts = append(opts, lavatop.WithBasicAuth(cfg.LavaTop.Username, cfg.LavaTop.Password))
	}
	if cfg.LavaTop.RateLimit.RPS > 0 {
		opts = append(opts, lavatop.WithRateLimit(cfg.LavaTop.RateLimit.RPS, cfg.LavaTop.RateLimit.Burst))
	}

	return lavatop.New(opts...)
}
