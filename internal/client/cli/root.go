package cli

import (
	"bufio"
	"context"

	"github.com/dmitrijs2005/dessertcatalog/internal/buildinfo"
	"github.com/dmitrijs2005/dessertcatalog/internal/client/config"
	"github.com/spf13/cobra"
)

// newAppFn is a test seam for NewApp.
var newAppFn = NewApp

// runtime carries the App from the root pre-run hook to the subcommands.
type runtime struct {
	args      []string
	ephemeral bool
	app       *App
}

func (r *runtime) close() error {
	if r.app == nil {
		return nil
	}
	return r.app.Close()
}

// Execute runs the command line in args and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	root, rt := newRootCmd(args)
	err := root.ExecuteContext(ctx)
	if cerr := rt.close(); err == nil {
		err = cerr
	}
	if err != nil {
		printError(root.ErrOrStderr(), err)
		return 1
	}
	return 0
}

func newRootCmd(args []string) (*cobra.Command, *runtime) {
	rt := &runtime{args: args}

	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Browse the dessert catalog and export it to PDF",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(rt.args)
			if err != nil {
				return err
			}
			app, err := newAppFn(cmd.Context(), cfg, rt.ephemeral)
			if err != nil {
				return err
			}
			app.out = cmd.OutOrStdout()
			app.errOut = cmd.ErrOrStderr()
			app.reader = bufio.NewReader(cmd.InOrStdin())
			rt.app = app
			return nil
		},
	}
	root.SetArgs(args)

	// Config flags are parsed by config.Load; they are declared here so the
	// command tree accepts them and lists them in help.
	pf := root.PersistentFlags()
	pf.StringP("config", "c", "", "path to JSON config file")
	for _, f := range config.Flags() {
		if f.Duration {
			pf.DurationP(f.Name, f.Short, 0, f.Usage)
		} else {
			pf.StringP(f.Name, f.Short, "", f.Usage)
		}
	}
	pf.BoolVar(&rt.ephemeral, "ephemeral", false, "keep the session in memory only")

	root.AddCommand(
		newVersionCmd(),
		newLoginCmd(rt),
		newRegisterCmd(rt),
		newLogoutCmd(rt),
		newWhoamiCmd(rt),
		newProfileCmd(rt),
		newListCmd(rt),
		newShowCmd(rt),
		newCategoriesCmd(rt),
		newCreateCmd(rt),
		newUpdateCmd(rt),
		newDeleteCmd(rt),
		newSetActiveCmd(rt, "activate", true),
		newSetActiveCmd(rt, "deactivate", false),
		newImageCmd(rt),
		newTemplatesCmd(rt),
		newExportCmd(rt),
		newUsersCmd(rt),
		newLogsCmd(rt),
		newBrowseCmd(rt),
	)
	return root, rt
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// no config or session needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}
