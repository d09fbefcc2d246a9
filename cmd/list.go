package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-shellnav/pkg/factory"
	"github.com/mattsolo1/grove-shellnav/pkg/location"
)

func NewListCmd(app **App) *cobra.Command {
	var parseNames bool

	cmd := &cobra.Command{
		Use:     "ls <location> [mask]",
		Short:   "List the children of a location",
		Aliases: []string{"list"},
		Long: `List the direct children of a location, optionally filtered by a
case-insensitive wildcard mask.

Examples:
  shellnav ls '::{20D04FE0-3AEA-1069-A2D8-08002B30309D}'
  shellnav ls 'C:\Users\Me' 'D*'
  shellnav ls 'This PC' 'C:\' --parse-names`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *app
			parent, err := a.Factory.Create(args[0])
			if err != nil {
				return err
			}

			var mask string
			if len(args) == 2 {
				mask = args[1]
			}
			mode := factory.NameOnly
			if parseNames {
				mode = factory.NameOrParseName
			}

			var children []*location.Location
			for child := range a.Factory.GetChildItems(parent, mask, mode) {
				children = append(children, child)
			}

			if a.JSON {
				return outputJSON(cmd.OutOrStdout(), viewsOf(children))
			}
			return printLocationsTable(cmd.OutOrStdout(), children)
		},
	}

	cmd.Flags().BoolVar(&parseNames, "parse-names", false, "also match the mask against parse names")

	return cmd
}
