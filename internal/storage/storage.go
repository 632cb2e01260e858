package storage

import (
	"time"

	"jtr/internal/config"
	"jtr/internal/domain"
)

// Storage persists and loads the last run's outcomes (e.g. for the
// details viewer).
type Storage interface {
	Save(outcomes []domain.TestOutcome, duration time.Duration, debug bool) error
	Load() (*domain.RunOutput, error)
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
