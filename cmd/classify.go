package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-shellnav/pkg/pathtype"
)

func NewClassifyCmd(app **App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <input>...",
		Short: "Classify inputs as file-system, special-folder or shell display-name paths",
		Long: `Classify each input without touching the namespace.

Examples:
  shellnav classify 'C:\Windows'
  shellnav classify '::{20D04FE0-3AEA-1069-A2D8-08002B30309D}'
  shellnav classify 'Libraries\Music'`,
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{skipHost: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			type result struct {
				Input string `json:"input"`
				Type  string `json:"type"`
			}
			results := make([]result, len(args))
			for i, in := range args {
				results[i] = result{Input: in, Type: pathtype.Classify(in).String()}
			}

			if (*app).JSON {
				return outputJSON(cmd.OutOrStdout(), results)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, r := range results {
				fmt.Fprintf(w, "%s\t%s\n", r.Input, r.Type)
			}
			return w.Flush()
		},
	}
	return cmd
}
