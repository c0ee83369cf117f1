package app

import (
	"fmt"
	"os"

	"courier-admin/internal/config"
	"courier-admin/internal/logx"
)

// NewLogger builds the process logger selected by LOG_BACKEND.
func NewLogger(cfg *config.Config) (logx.Logger, error) {
	switch cfg.Log.Backend {
	case "zap":
		l, err := logx.NewZapProduction(cfg.Log.Level)
		if err != nil {
			return nil, fmt.Errorf("zap logger: %w", err)
		}
		return l, nil
	case "", "slog":
		return logx.NewSlogJSON(os.Stdout, cfg.Log.Level), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", cfg.Log.Backend)
	}
}
