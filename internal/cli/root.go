package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/jobtracker/internal/core"
)

// RootCmd is the root command. All sub-commands are registered here.
func RootCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "jobtracker",
		Short:         "jobtracker logs and queries job applications.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.Out = cmd.OutOrStdout()
			a.Err = cmd.ErrOrStderr()
			return a.Setup(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.Close()
		},
	}

	cmd.PersistentFlags().BoolVar(&a.JSON, "json", false, "print results as JSON")

	cmd.AddCommand(
		initCmd(a),
		findCmd(a),
		statusCmd(a),
		viewCmd(a),
		companyCmd(a),
		latestCmd(a),
		logCmd(a),
	)

	return cmd
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, a *App, args []string) int {
	cmd := RootCmd(a)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		printError(a, err)
		a.Close()
		return 1
	}
	return 0
}

// printError writes err and, for known errors, the user message.
func printError(a *App, err error) {
	fmt.Fprintf(a.Err, "Error: %v\n", err)
	if core.IsUserFacing(err) {
		fmt.Fprintln(a.Err, core.FormatUserError(err))
	}
}
