package trigger

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	defaultBufferSize = 16
	defaultNumWorkers = 4
)

// Config sizes the dispatch pool a Group runs its fires on.
type Config struct {
	// BufferSize is the per-queue intake buffer. A full queue drops fires
	// rather than stalling Notify.
	BufferSize int `env:"REACT_IVE_GO_TRIGGER_BUFFER_SIZE" envDefault:"16"`
	// NumWorkers is the number of intake queues. Triggers are partitioned
	// across queues by their id.
	NumWorkers int `env:"REACT_IVE_GO_TRIGGER_NUM_WORKERS" envDefault:"4"`
}

// ConfigFromEnv loads the group configuration from environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// normalize keeps any Config usable: non-positive sizes fall back to the
// defaults, so the zero value means "default pool".
func (c Config) normalize() Config {
	if c.BufferSize <= 0 {
		c.BufferSize = defaultBufferSize
	}
	if c.NumWorkers <= 0 {
		c.NumWorkers = defaultNumWorkers
	}
	return c
}
