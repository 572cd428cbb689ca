package server

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Settings configures the HTTP API. Values come from SQUAREMAP_* environment
// variables.
type Settings struct {
	Addr           string        `envconfig:"ADDR" default:":8080"`
	MaxBodyBytes   int64         `envconfig:"MAX_BODY_BYTES" default:"4194304"`
	MaxItems       int           `envconfig:"MAX_ITEMS" default:"10000"`
	BatchLimit     int           `envconfig:"BATCH_LIMIT" default:"8"`
	MaxBatch       int           `envconfig:"MAX_BATCH" default:"64"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
}

// LoadSettings reads Settings from the environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := envconfig.Process("squaremap", &s); err != nil {
		return Settings{}, fmt.Errorf("load server settings: %w", err)
	}
	if s.BatchLimit < 1 {
		s.BatchLimit = 1
	}
	return s, nil
}
