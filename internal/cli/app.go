// Package cli implements the jobtracker command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/jobtracker/internal/config"
	"github.com/JonMunkholm/jobtracker/internal/core"
	_ "github.com/JonMunkholm/jobtracker/internal/core/tables" // Register all tables
	"github.com/JonMunkholm/jobtracker/internal/forms"
	"github.com/JonMunkholm/jobtracker/internal/logging"
	"github.com/JonMunkholm/jobtracker/internal/store"
)

// App holds what the commands share. Command output goes to Out; logs and
// disambiguation listings go to Err.
type App struct {
	Out io.Writer
	Err io.Writer

	// Service is built on first use unless already set.
	Service *core.Service

	// JSON switches command output to JSON.
	JSON bool

	closeStore func()
}

// New creates an App writing to stdout and stderr.
func New() *App {
	return &App{Out: os.Stdout, Err: os.Stderr}
}

// Setup loads configuration and opens the store. It is a no-op when the
// service is already set.
func (a *App) Setup(ctx context.Context) error {
	if a.Service != nil {
		return nil
	}

	// A missing .env file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	slog.SetDefault(logging.New(a.Err, cfg.Logging.Level, cfg.Logging.Format))

	backend, closeStore, err := store.Open(ctx, store.OptionsFromConfig(cfg.Store))
	if err != nil {
		return err
	}

	formSet, err := forms.Load(cfg.Forms.File)
	if err != nil {
		closeStore()
		return err
	}

	a.closeStore = closeStore
	a.Service = core.NewService(backend, formSet, core.WithPrompter(a.prompter()))
	return nil
}

// Close releases the store.
func (a *App) Close() {
	if a.closeStore != nil {
		a.closeStore()
		a.closeStore = nil
	}
}

// prompter prints disambiguation listings to Err.
func (a *App) prompter() core.Prompter {
	return core.PrompterFunc(func(_ context.Context, message string) {
		fmt.Fprintln(a.Err, message)
	})
}
