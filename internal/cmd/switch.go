package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/awsp/internal/active"
	"github.com/user/awsp/internal/profile"
	"github.com/user/awsp/internal/shell"
)

func newSwitchCmd() *cobra.Command {
	var (
		shellMode bool
		shellName string
	)

	cmd := &cobra.Command{
		Use:   "switch <profile>",
		Short: "Switch to a different AWS profile",
		Long: `Switch the active profile for the current shell session.

Without --shell-mode, prints a confirmation and the export command to run.
With --shell-mode, prints exactly one shell-evaluable line that assigns
AWS_PROFILE; the wrapper function installed by 'awsp init' evals it so the
assignment lands in the invoking shell, not in this process.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSwitch(args[0], shellMode, shellName)
		},
	}

	cmd.Flags().BoolVar(&shellMode, "shell-mode", false, "Emit a single shell-evaluable line")
	cmd.Flags().StringVar(&shellName, "shell", "", "Shell dialect for the directive (bash, zsh, fish)")

	return cmd
}

func runSwitch(name string, shellMode bool, shellName string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	resolver := active.NewResolver(store, nil)
	intent, err := resolver.SwitchIntent(name)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return fmt.Errorf("profile %q not found", name)
		}
		return err
	}

	if shellName == "" {
		shellName = loadSettings().Defaults.Shell
	}
	dialect, err := shell.ParseDialect(shellName)
	if err != nil {
		return err
	}

	if shellMode {
		fmt.Println(intent.Directive(dialect))
		return nil
	}

	fmt.Println(intent.Description())
	fmt.Println("\nTo apply it in your current shell, run:")
	fmt.Printf("  %s\n", intent.Directive(dialect))
	fmt.Println("\nOr install the shell hook once with 'awsp init'.")
	return nil
}
