package app

import (
	"context"

	"github.com/fairyhunter13/resume-matcher/internal/config"
)

// Pinger is anything that can report its own reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BuildTikaCheck returns a readiness probe for the Tika backend, or nil when
// the local PDF extractor is in use and no external dependency exists.
func BuildTikaCheck(cfg config.Config, tika Pinger) func(ctx context.Context) error {
	if cfg.Extractor != config.ExtractorTika || tika == nil {
		return nil
	}
	return tika.Ping
}
