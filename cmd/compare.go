package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-shellnav/pkg/hierarchy"
)

func NewCompareCmd(app **App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Report how location b relates to location a",
		Long: `Compare two locations. The result is parent, current, child or unrelated
and describes b relative to a.

Inputs that cannot be resolved are compared by path alone.

Examples:
  shellnav compare 'C:\Users' 'C:\Users\Me\Music'
  shellnav compare 'X:\Data\P' 'Y:\Data\P'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *app
			left, err := a.locate(args[0])
			if err != nil {
				return err
			}
			right, err := a.locate(args[1])
			if err != nil {
				return err
			}

			rel := hierarchy.Compare(left, right)
			if a.JSON {
				return outputJSON(cmd.OutOrStdout(), map[string]any{
					"a":        viewOf(left),
					"b":        viewOf(right),
					"relation": rel.String(),
				})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rel)
			return err
		},
	}
	return cmd
}
