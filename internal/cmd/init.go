package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/awsp/internal/config"
	"github.com/user/awsp/internal/logging"
	"github.com/user/awsp/internal/shell"
)

func newInitCmd() *cobra.Command {
	var shellName string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Print the shell integration hook",
		Long: `Prints the wrapper function that makes 'awsp switch' take effect in
the current shell. Add it to your shell rc file:

  # bash: ~/.bashrc    zsh: ~/.zshrc
  eval "$(awsp init --shell bash)"

  # fish: ~/.config/fish/config.fish
  awsp init --shell fish | source

A shell passed with --shell is remembered in the settings file, so later
runs of 'awsp init' can omit the flag.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(shellName)
		},
	}

	cmd.Flags().StringVar(&shellName, "shell", "", "Shell dialect (bash, zsh, fish)")

	return cmd
}

func runInit(shellName string) error {
	explicit := shellName != ""
	if !explicit {
		shellName = loadSettings().Defaults.Shell
	}

	dialect, err := shell.ParseDialect(shellName)
	if err != nil {
		return err
	}

	if explicit {
		if err := rememberShell(string(dialect)); err != nil {
			logging.Warn("failed to save settings", "error", err)
		}
	}

	fmt.Println(shell.InitScript(dialect))
	return nil
}

// rememberShell persists an explicitly chosen shell as the default.
func rememberShell(name string) error {
	path, err := settingsPath()
	if err != nil {
		return err
	}

	cfg := loadSettings()
	if cfg.Defaults.Shell == name {
		return nil
	}
	cfg.Defaults.Shell = name
	return config.SaveConfig(cfg, path)
}
