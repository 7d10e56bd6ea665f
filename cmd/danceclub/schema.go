package main

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/baiana/danceclub/internal/infrastructure/persistence/sqlstore"
)

func newSchemaCmd(opts *rootOptions) *cobra.Command {
	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Datastore schema commands",
	}

	schemaCmd.AddCommand(
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withStore(cmd, opts, func(m *sqlstore.Migrator) error {
					n, err := m.Migrate(cmd.Context())
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%d migration(s) applied\n", n)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show applied and pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withStore(cmd, opts, func(m *sqlstore.Migrator) error {
					status, err := m.Status(cmd.Context())
					if err != nil {
						return err
					}

					t := tablewriter.NewWriter(cmd.OutOrStdout())
					t.SetHeader([]string{"VERSION", "NAME", "APPLIED"})
					t.SetAutoWrapText(false)
					for _, mig := range status {
						applied := "pending"
						if mig.IsApplied {
							applied = mig.AppliedAt.Format("2006-01-02 15:04:05")
						}
						t.Append([]string{strconv.Itoa(mig.Version), mig.Name, applied})
					}
					t.Render()
					return nil
				})
			},
		},
	)

	return schemaCmd
}

// withStore opens the configured datastore without migrating it.
func withStore(cmd *cobra.Command, opts *rootOptions, fn func(*sqlstore.Migrator) error) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	conn, err := openStore(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(sqlstore.NewMigrator(conn))
}
