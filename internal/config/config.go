package config

import (
	"fmt"
	"time"
)

type Config struct {
	Env              string                  `env:"ENV,default=local"`
	Logger           LoggerConfig            `env:",prefix=LOGGER_"`
	Observability    ObservabilityHTTPConfig `env:",prefix=OBSERVABILITY_"`
	ShutdownDuration time.Duration           `env:"SHUTDOWN_DURATION,default=30s"`
	LavaTop          LavaTopConfig           `env:",prefix=LAVATOP_"`
}

// LavaTopConfig configures the gate.lava.top client. Any combination
// of the three credential kinds may be set; all configured ones are
// sent on every request.
type LavaTopConfig struct {
	BaseURL   string        `env:"BASE_URL,default=https://gate.lava.top"`
	APIKey    string        `env:"API_KEY"`
	Token     string        `env:"TOKEN"`
	Username  string        `env:"USERNAME"`
	Password  string        `env:"PASSWORD"`
	Timeout   time.Duration `env:"TIMEOUT,default=30s"`
	RateLimit struct {
		Burst int     `env:"BURST,default=1"`
		RPS   float64 `env:"RPS,default=0"`
	} `env:",prefix=RATE_LIMIT_"`
}

type LoggerConfig struct {
	Level string `env:"LEVEL,default=debug"`
}

type ObservabilityHTTPConfig struct {
	Host         string        `env:"HOST,default=127.0.0.1"`
	Port         uint16        `env:"PORT,default=8383"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT,default=30s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT,default=30s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT,default=1m"`
}

func (a ObservabilityHTTPConfig) ADDR() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}
