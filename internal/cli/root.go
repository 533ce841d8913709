// Package cli implements the messledger command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/messhub/ledger/internal/config"
	"github.com/messhub/ledger/internal/db"
)

// app carries what every command needs once the root command has loaded the
// configuration
type app struct {
	cfg        *config.Config
	logger     *slog.Logger
	configPath string
}

// NewRootCmd builds the messledger command tree
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "messledger",
		Short: "Prepaid mess card ledger",
		Long: `messledger keeps the balances of prepaid mess cards. Every recharge
updates the card and records a Recharge and a Transaction that reference
each other, all in one database transaction.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath
			if path == "" {
				path = os.Getenv("CONFIG_FILE")
			}
			cfg, err := config.LoadFile(path)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = cfg.Logger.NewLogger()
			slog.SetDefault(a.logger)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "TOML configuration file (defaults to $CONFIG_FILE)")

	root.AddCommand(
		newServeCmd(a),
		newMigrateCmd(a),
		newRechargeCmd(a),
		newCardCmd(a),
		newUserCmd(a),
		newAuditCmd(a),
		newTokenCmd(a),
	)

	return root
}

// Execute runs the command line and returns the process exit code
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		return 1
	}
	return 0
}

// openDB connects to the configured database. The caller closes it.
func (a *app) openDB(ctx context.Context) (*db.DB, error) {
	database, err := db.Connect(ctx, &a.cfg.Database, a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, nil
}
