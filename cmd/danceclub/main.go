// Package main is the entry point of the danceclub console.
//
// Running the binary without arguments opens the interactive menu over
// stdin/stdout. The schema subcommands manage the datastore without entering
// the menu.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/baiana/danceclub/config"
	"github.com/baiana/danceclub/internal/interface/console"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

type rootOptions struct {
	configFile string
	dbPath     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "danceclub",
		Short:         "Cadastro de alunos, níveis e avaliações da escola de dança",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConsole(cmd, opts)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "sqlite database file (overrides DB_PATH)")

	root.AddCommand(newSchemaCmd(opts), newVersionCmd(opts))
	return root
}

// loadConfig applies the command line overrides on top of Load.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if o.dbPath != "" {
		cfg.Database.Driver = config.DriverSQLite
		cfg.Database.Path = o.dbPath
	}
	return cfg, nil
}

func runConsole(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	app, err := bootstrap(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	c := console.New(console.Config{
		In:       cmd.InOrStdin(),
		Out:      cmd.OutOrStdout(),
		Commands: app.Commands,
		Queries:  app.Queries,
		Flags:    cfg.Features,
		Logger:   app.Log,
	})
	return c.Run(cmd.Context())
}

func newVersionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", cfg.App.Name, cfg.App.Version, cfg.App.Environment)
			return nil
		},
	}
}
