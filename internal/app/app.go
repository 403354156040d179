package app

import (
	"io"
	"log/slog"

	"github.com/norclim/caserig/internal/config"
	"github.com/norclim/caserig/internal/toolchain"
)

// App encapsulates one invocation's dependencies and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader config.Loader
	runner toolchain.Runner
}

// NewApp constructs the application. The loader and runner are passed in so
// tests can substitute a canned case file source and a fake toolchain.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, runner toolchain.Runner) *App {
	return &App{
		outW:   outW,
		logger: newLogger(cfg.LogLevel, cfg.LogFormat, outW),
		config: cfg,
		loader: loader,
		runner: runner,
	}
}
