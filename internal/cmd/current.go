package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/awsp/internal/active"
)

func newCurrentCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "current",
		Short: "Show the currently active profile",
		Long: `Shows the profile named by the AWS_PROFILE environment variable.

With --quiet, prints only the profile name (exit status 1 when no profile
is active), suitable for use in prompts and scripts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCurrent(quiet)
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print only the profile name")

	return cmd
}

func runCurrent(quiet bool) error {
	resolver := active.NewResolver(nil, nil)
	name, ok := resolver.Current()

	if quiet {
		if !ok {
			os.Exit(1)
		}
		fmt.Println(name)
		return nil
	}

	if !ok {
		fmt.Println("No profile currently active")
		fmt.Println("Switch to one with 'awsp switch <name>'")
		return nil
	}

	fmt.Printf("Active profile: %s\n", name)
	return nil
}
