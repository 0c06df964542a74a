package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/awsp/internal/active"
	"github.com/user/awsp/internal/profile"
	"github.com/user/awsp/internal/validate"
)

func newValidateCmd() *cobra.Command {
	var useSDK bool

	cmd := &cobra.Command{
		Use:   "validate [profile]",
		Short: "Check that a profile's credentials work",
		Long: `Calls sts get-caller-identity for the profile and reports the result.
Without an argument, validates the currently active profile.

By default the check shells out to the aws binary; --sdk performs it
in-process through the AWS SDK instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runValidate(cmd.Context(), name, useSDK)
		},
	}

	cmd.Flags().BoolVar(&useSDK, "sdk", false, "Validate through the AWS SDK instead of the aws binary")

	return cmd
}

func runValidate(ctx context.Context, name string, useSDK bool) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	if name == "" {
		resolver := active.NewResolver(store, nil)
		current, ok := resolver.Current()
		if !ok {
			return fmt.Errorf("no profile currently active; pass a profile name")
		}
		name = current
	}

	if _, err := store.Get(name); err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return fmt.Errorf("profile %q not found", name)
		}
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}

	var validator validate.Validator = validate.NewCLIValidator()
	if useSDK || loadSettings().Defaults.Validator == "sdk" {
		validator = validate.STSValidator{}
	}

	result := validator.Validate(ctx, name)
	if !result.Valid {
		return fmt.Errorf("validation failed for profile %q: %s", name, result.Diagnostic)
	}

	fmt.Printf("Profile %q is valid (account %s)\n", name, result.AccountID)
	return nil
}
