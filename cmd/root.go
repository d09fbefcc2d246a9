package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-shellnav/internal/logging"
	"github.com/mattsolo1/grove-shellnav/pkg/config"
)

// skipHost marks commands that run without opening the namespace.
const skipHost = "shellnav/skip-host"

// rootCommand is the command tree plus the App its last run opened.
type rootCommand struct {
	cmd *cobra.Command
	app *App
}

// close releases the host opened by the last run, failed runs included.
func (r *rootCommand) close() error {
	if r.app == nil {
		return nil
	}
	return r.app.Close()
}

// Execute runs the command tree and releases the namespace host afterwards,
// whether or not the command succeeded.
func Execute() error {
	r := newRootCommand()
	err := r.cmd.Execute()
	if cerr := r.close(); err == nil {
		err = cerr
	}
	return err
}

// NewRootCmd assembles the shellnav command tree.
func NewRootCmd() *cobra.Command {
	return newRootCommand().cmd
}

func newRootCommand() *rootCommand {
	var (
		r       = &rootCommand{}
		app     = &r.app
		cfgFile string
		jsonOut bool
	)

	rootCmd := &cobra.Command{
		Use:           "shellnav",
		Short:         "Resolve and navigate shell namespace locations",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.New(cfgFile)
			if err != nil {
				return err
			}
			flags := cmd.Root().PersistentFlags()
			for key, name := range map[string]string{
				config.KeyHost:     "host",
				config.KeyFixture:  "fixture",
				config.KeyDB:       "db",
				config.KeyLogLevel: "log-level",
				config.KeyMetrics:  "metrics",
			} {
				if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
					return err
				}
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			*app = NewApp(cfg, logging.New(cfg.LogLevel))
			(*app).JSON = jsonOut
			if cmd.Annotations[skipHost] == "true" {
				return nil
			}
			return (*app).OpenHost()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if *app == nil {
				return nil
			}
			return (*app).ReportMetrics()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/shellnav/config.yaml)")
	pf.String("host", "", "namespace host: memory or sqlite")
	pf.String("fixture", "", "YAML namespace fixture for the memory host")
	pf.String("db", "", "SQLite namespace database")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.Bool("metrics", false, "log host call metrics when the command finishes")
	pf.BoolVar(&jsonOut, "json", false, "output JSON")

	rootCmd.AddCommand(NewClassifyCmd(app))
	rootCmd.AddCommand(NewResolveCmd(app))
	rootCmd.AddCommand(NewListCmd(app))
	rootCmd.AddCommand(NewCompareCmd(app))
	rootCmd.AddCommand(NewRootChainCmd(app))
	rootCmd.AddCommand(NewNavigateCmd(app))
	rootCmd.AddCommand(NewImportCmd(app))
	rootCmd.AddCommand(NewVersionCmd(app))

	r.cmd = rootCmd
	return r
}
