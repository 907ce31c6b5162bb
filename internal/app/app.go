package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/vitrine-dev/vitrine/internal/actions"
	"github.com/vitrine-dev/vitrine/internal/api"
	"github.com/vitrine-dev/vitrine/internal/config"
	"github.com/vitrine-dev/vitrine/internal/localstore"
	"github.com/vitrine-dev/vitrine/internal/prefs"
	"github.com/vitrine-dev/vitrine/internal/store"
	"github.com/vitrine-dev/vitrine/internal/ui"
)

// Options configure the Vitrine application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/vitrine/prefs.toml
	APIURL     string // overrides the configured api_url when set
}

// Run boots the Vitrine TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}
	if cfg.APIURL == "" {
		return fmt.Errorf("no api_url configured; set it in the config file or VITRINE_API_URL")
	}

	log, closeLog, err := openLogger(cfg.LogPath())
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()

	kv, err := localstore.Open(cfg.StorePath())
	if err != nil {
		return fmt.Errorf("open local store: %w", err)
	}

	client, err := api.NewClient(cfg.APIURL,
		api.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second))
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	// Rehydrate favorites and the session from disk before the first
	// render so the UI never flashes an anonymous state.
	seed := actions.SeedFromStore(kv, log)
	st := store.New(seed)
	acts := actions.New(client, st, kv, log)

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		log.Warn().Err(err).Msg("load prefs failed, using defaults")
	}

	log.Info().Str("api_url", cfg.APIURL).Msg("starting")

	return ui.Run(ui.Options{
		Context:   ctx,
		Actions:   acts,
		Store:     st,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		LogPath:   cfg.LogPath(),
		PerPage:   userPrefs.PerPage,
	})
}

// openLogger opens an append-only file logger. The TUI owns the
// terminal, so logs never go to stderr while the program runs.
func openLogger(path string) (zerolog.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	log := zerolog.New(f).With().Timestamp().Logger()
	return log, func() { _ = f.Close() }, nil
}
