package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/user/awsp/internal/active"
	"github.com/user/awsp/internal/profile"
)

func newInfoCmd() *cobra.Command {
	var open bool

	cmd := &cobra.Command{
		Use:   "info [profile]",
		Short: "Show details for a profile",
		Long: `Show the fields of one profile. Without an argument, shows the
currently active profile. Secret material is masked.

For SSO profiles, --open opens the start URL in your browser.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runInfo(name, open)
		},
	}

	cmd.Flags().BoolVar(&open, "open", false, "Open the SSO start URL in a browser (SSO profiles only)")

	return cmd
}

func runInfo(name string, open bool) error {
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

	p, err := store.Get(name)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return fmt.Errorf("profile %q not found", name)
		}
		return err
	}

	printProfileInfo(p)

	if open {
		if p.Kind != profile.KindSSO {
			return fmt.Errorf("profile %q is not an SSO profile", name)
		}
		if err := browser.OpenURL(p.SSOStartURL); err != nil {
			return fmt.Errorf("failed to open browser: %w\nURL: %s", err, p.SSOStartURL)
		}
	}
	return nil
}

func printProfileInfo(p profile.Profile) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("   ")
	table.SetNoWhiteSpace(true)

	table.Append([]string{"Name", p.Name})
	table.Append([]string{"Type", p.Kind.String()})

	switch p.Kind {
	case profile.KindIAM:
		table.Append([]string{"Access Key ID", maskString(p.AccessKeyID, 4)})
		table.Append([]string{"Secret Access Key", "********"})
		if p.SessionToken != "" {
			table.Append([]string{"Session Token", "********"})
		}
	case profile.KindSSO:
		table.Append([]string{"SSO Start URL", p.SSOStartURL})
		table.Append([]string{"SSO Region", p.SSORegion})
		table.Append([]string{"SSO Account ID", p.SSOAccountID})
		table.Append([]string{"SSO Role Name", p.SSORoleName})
	}

	if p.Region != "" {
		table.Append([]string{"Region", p.Region})
	}
	if p.Output != "" {
		table.Append([]string{"Output", p.Output})
	}
	table.Render()
}

// maskString keeps the first and last n characters and stars the middle.
func maskString(s string, n int) string {
	if len(s) <= 2*n {
		return s
	}
	masked := []byte(s)
	for i := n; i < len(s)-n; i++ {
		masked[i] = '*'
	}
	return string(masked)
}
