package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/user/awsp/internal/active"
	"github.com/user/awsp/internal/profile"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all AWS profiles",
		Long: `List all AWS profiles from the shared credentials and config files.

The active profile (from AWS_PROFILE) is marked with an asterisk.`,
		RunE: runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	profiles := store.List()
	if len(profiles) == 0 {
		fmt.Println("No AWS profiles found")
		fmt.Println("Add one with 'awsp add' or create entries in ~/.aws/credentials")
		return nil
	}

	resolver := active.NewResolver(store, nil)
	current, _ := resolver.Current()

	printProfileTable(profiles, current)
	return nil
}

func printProfileTable(profiles []profile.Profile, current string) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"", "Name", "Type", "Region"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("   ")
	table.SetNoWhiteSpace(true)

	for _, p := range profiles {
		marker := ""
		if p.Name == current {
			marker = "*"
		}
		region := p.Region
		if region == "" {
			region = "-"
		}
		table.Append([]string{marker, p.Name, p.Kind.String(), region})
	}
	table.Render()
}
