// Package commands implements the sqlb CLI commands.
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/sqlfluent/internal/config"
	"github.com/satishbabariya/sqlfluent/internal/debug"
	"github.com/satishbabariya/sqlfluent/internal/utils/container"
	"github.com/satishbabariya/sqlfluent/internal/version"
)

// rootOptions holds the persistent flags and the configuration they produce.
type rootOptions struct {
	configFile string
	driver     string
	dsn        string
	debug      bool

	cfg *config.Config
}

// NewRootCommand creates the sqlb root command.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "sqlb",
		Short: "Build, inspect and run SQL statements",
		Long: `sqlb compiles fluent statement definitions into parameterized SQL and runs
them against SQLite, MySQL or PostgreSQL.

The connection is read from .sqlb.yaml, SQLB_DRIVER / SQLB_DSN, DATABASE_URL
or the --driver and --dsn flags.`,
		Version:       version.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default .sqlb.yaml)")
	cmd.PersistentFlags().StringVar(&opts.driver, "driver", "", "database driver: sqlite, mysql or postgres")
	cmd.PersistentFlags().StringVar(&opts.dsn, "dsn", "", "database connection string")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(NewDescribeCommand(opts))
	cmd.AddCommand(NewCompileCommand(opts))
	cmd.AddCommand(NewExecCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

func (o *rootOptions) load() error {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return err
	}

	if o.dsn != "" {
		cfg.Database.URL = o.dsn
		cfg.Database.Provider = config.DetectProvider(o.dsn)
	}
	if o.driver != "" {
		cfg.Database.Provider = o.driver
	}
	if o.debug {
		cfg.Debug = true
	}

	debug.Init(cfg.Debug)
	o.cfg = cfg
	return nil
}

// connect opens the configured database.
func (o *rootOptions) connect(ctx context.Context) (*container.Container, error) {
	if o.cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return container.NewContainer(ctx, o.cfg)
}
