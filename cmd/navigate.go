package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-shellnav/pkg/location"
)

func NewNavigateCmd(app **App) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "navigate <target>",
		Short: "Move from a location chain to a target path",
		Long: `Re-root the chain of the --from location, keep the deepest element that
contains the target and resolve the rest of the target below it.

Examples:
  shellnav navigate --from '::{20D04FE0-3AEA-1069-A2D8-08002B30309D}\Documents' 'C:\Users\Me\Documents\Reports'
  shellnav navigate 'C:\Users\Me\Desktop\Projects'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *app
			var chain []*location.Location
			if from != "" {
				loc, err := a.locate(from)
				if err != nil {
					return err
				}
				if chain, err = a.Resolver.FindRoot(loc); err != nil {
					return err
				}
			}

			out, err := a.Resolver.Navigate(chain, args[0])
			if err != nil {
				return err
			}

			if a.JSON {
				return outputJSON(cmd.OutOrStdout(), viewsOf(out))
			}
			return printChain(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "location whose chain to start from (default Desktop)")

	return cmd
}
