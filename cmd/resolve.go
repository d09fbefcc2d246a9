package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-shellnav/pkg/factory"
	"github.com/mattsolo1/grove-shellnav/pkg/idlist"
	"github.com/mattsolo1/grove-shellnav/pkg/location"
)

func NewResolveCmd(app **App) *cobra.Command {
	var (
		findSpecial bool
		byID        bool
		name        string
		label       string
	)

	cmd := &cobra.Command{
		Use:   "resolve <input>",
		Short: "Resolve a path, special reference or display-name path to a location",
		Long: `Resolve an input against the namespace and print the resulting location.

Examples:
  shellnav resolve 'C:\Users\Me\Documents'
  shellnav resolve 'Libraries\Music' --find-special
  shellnav resolve --id 0300`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *app
			var (
				loc *location.Location
				err error
			)
			switch {
			case byID:
				var id idlist.IDList
				if id, err = idlist.ParseHex(args[0]); err != nil {
					return err
				}
				loc, err = a.Factory.CreateFromID(id)
			case name != "" || label != "":
				loc, err = a.Factory.CreateNamed(args[0], name, label)
			case findSpecial:
				loc, err = a.Factory.Create(args[0], factory.FindSpecial())
			default:
				loc, err = a.Factory.Create(args[0])
			}
			if err != nil {
				return err
			}

			if a.JSON {
				return outputJSON(cmd.OutOrStdout(), viewOf(loc))
			}
			return printLocationDetail(cmd.OutOrStdout(), loc)
		},
	}

	cmd.Flags().BoolVar(&findSpecial, "find-special", false, "look up the special reference even if that fills the special-folder cache")
	cmd.Flags().BoolVar(&byID, "id", false, "treat the input as a hex-encoded identifier list")
	cmd.Flags().StringVar(&name, "name", "", "override the resolved name")
	cmd.Flags().StringVar(&label, "label", "", "override the resolved display label")

	return cmd
}
