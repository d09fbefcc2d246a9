package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X github.com/mattsolo1/grove-shellnav/cmd.Version=...".
var (
	Version = "dev"
	Commit  = "unknown"
	Branch  = "unknown"
)

type versionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Branch  string `json:"branch"`
}

func (v versionInfo) String() string {
	return fmt.Sprintf("shellnav %s (commit %s, branch %s)", v.Version, v.Commit, v.Branch)
}

func NewVersionCmd(app **App) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Long:        "Display the version, commit and branch information for shellnav",
		Annotations: map[string]string{skipHost: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			info := versionInfo{Version: Version, Commit: Commit, Branch: Branch}
			if (*app).JSON {
				return outputJSON(cmd.OutOrStdout(), info)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), info)
			return err
		},
	}
	return cmd
}
