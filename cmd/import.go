package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-shellnav/pkg/host/fixture"
	"github.com/mattsolo1/grove-shellnav/pkg/host/sqlhost"
)

func NewImportCmd(app **App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <fixture.yaml>",
		Short: "Load a YAML namespace fixture into the SQLite database",
		Long: `Replace the contents of the SQLite namespace database (--db) with the tree
described by a YAML fixture.

Examples:
  shellnav import namespace.yaml --db ./namespace.db`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{skipHost: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *app
			f, err := fixture.Load(args[0])
			if err != nil {
				return err
			}

			h, err := sqlhost.Open(a.Config.DB)
			if err != nil {
				return err
			}
			defer h.Close()

			n, err := h.Import(context.Background(), f)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			a.Log.WithField("items", n).WithField("db", a.Config.DB).Info("imported namespace")

			if a.JSON {
				return outputJSON(cmd.OutOrStdout(), map[string]any{"db": a.Config.DB, "items": n})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d items into %s\n", n, a.Config.DB)
			return err
		},
	}
	return cmd
}
