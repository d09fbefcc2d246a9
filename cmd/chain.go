package cmd

import (
	"github.com/spf13/cobra"
)

func NewRootChainCmd(app **App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "root <location>",
		Short: "Print the chain from Desktop down to a location",
		Long: `Print every location between the Desktop root (excluded) and the given
location (included).

Examples:
  shellnav root 'C:\Users\Me\Documents\Reports'
  shellnav root 'Libraries\Music' --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *app
			loc, err := a.locate(args[0])
			if err != nil {
				return err
			}
			chain, err := a.Resolver.FindRoot(loc)
			if err != nil {
				return err
			}

			if a.JSON {
				return outputJSON(cmd.OutOrStdout(), viewsOf(chain))
			}
			return printChain(cmd.OutOrStdout(), chain)
		},
	}
	return cmd
}
