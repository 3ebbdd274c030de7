// Package cli implements the milkdiary command tree.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/iniyantalkies/milkdiary/internal/app/ledger"
	"github.com/iniyantalkies/milkdiary/internal/app/license"
	"github.com/iniyantalkies/milkdiary/internal/app/settings"
	"github.com/iniyantalkies/milkdiary/internal/daemon"
	"github.com/iniyantalkies/milkdiary/internal/domain"
	"github.com/iniyantalkies/milkdiary/internal/infra/sqlite"
)

var rootCmd = &cobra.Command{
	Use:   "milkdiary",
	Short: "Personal milk delivery tracker and bill generator",
	Long: `Milk Diary tracks your household's daily milk deliveries: mark the
days milk was not supplied or extra was purchased, then generate a
month or custom-range bill and send it to your milkman over WhatsApp.

A license key (requested from the admin) unlocks the diary on this
device. All data stays in a local sqlite file under ~/.milkdiary.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// ─── Shared Plumbing ────────────────────────────────────────────────────────

// app bundles the opened store and the services the commands use.
type app struct {
	cfg      daemon.Config
	db       *sqlite.DB
	license  *license.Service
	ledger   *ledger.Service
	settings *settings.Service
}

// openApp loads config and opens the sqlite store, creating the config
// directory on first run.
func openApp() (*app, error) {
	cfg, err := daemon.Load()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	db, err := sqlite.Open(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:      cfg,
		db:       db,
		license:  license.NewService(db, cfg.Admin.WhatsApp),
		ledger:   ledger.NewService(db),
		settings: settings.NewService(db),
	}, nil
}

func (a *app) Close() { a.db.Close() }

// requireUnlocked blocks diary commands while no valid license exists.
func (a *app) requireUnlocked() error {
	_, unlocked, err := a.license.Status()
	if err != nil {
		return err
	}
	if !unlocked {
		return fmt.Errorf("%w — run 'milkdiary unlock KEY' (or 'milkdiary request-key' to get one)", domain.ErrLocked)
	}
	return nil
}
