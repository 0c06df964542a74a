package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/awsp/internal/active"
	"github.com/user/awsp/internal/profile"
	"github.com/user/awsp/internal/prompter"
)

func newRemoveCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "remove <profile>",
		Aliases: []string{"rm"},
		Short:   "Remove an AWS profile",
		Long: `Remove a profile's sections from both shared AWS files.

Removing the active profile does not unset AWS_PROFILE in your shell; this
process cannot reach into its parent's environment. Switch to another
profile afterwards.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(args[0], force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Remove without confirmation")

	return cmd
}

func runRemove(name string, force bool) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	if !force {
		ok, err := prompter.Confirm(fmt.Sprintf("Remove profile %q?", name), false)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := store.Remove(name); err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return fmt.Errorf("profile %q not found", name)
		}
		return err
	}

	fmt.Printf("Profile %q removed\n", name)

	resolver := active.NewResolver(store, nil)
	if current, ok := resolver.Current(); ok && current == name {
		fmt.Println("Note: AWS_PROFILE still names the removed profile; switch to another one")
	}
	return nil
}
