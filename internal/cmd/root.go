// Package cmd wires the CLI boundary: flag parsing, output rendering and
// exit-code mapping around the profile core.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/awsp/internal/awsfile"
	"github.com/user/awsp/internal/config"
	"github.com/user/awsp/internal/logging"
	"github.com/user/awsp/internal/profile"
)

var (
	cfgFile         string
	credentialsFile string
	awsConfigFile   string
	verbose         bool
	debug           bool
)

// NewRootCmd creates the root command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "awsp",
		Short: "AWS Profile Switcher",
		Long: `awsp manages named AWS profiles: list, inspect, add, remove, validate
and switch the active profile.

Profiles live in the shared AWS files (~/.aws/credentials and ~/.aws/config).
Switching works through a shell wrapper function, because a child process
cannot change its parent shell's environment; install the wrapper with
'awsp init'.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.InitLogger(verbose, debug)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Settings file (default: ~/.awsp/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&credentialsFile, "credentials-file", "", "AWS credentials file (default: ~/.aws/credentials)")
	rootCmd.PersistentFlags().StringVar(&awsConfigFile, "aws-config-file", "", "AWS config file (default: ~/.aws/config)")

	// Add subcommands
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newCurrentCmd())
	rootCmd.AddCommand(newSwitchCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}

// profilePaths resolves the two AWS file paths, honoring the command-line
// overrides before the environment ones.
func profilePaths() (credPath, configPath string, err error) {
	credPath = credentialsFile
	if credPath == "" {
		credPath, err = awsfile.DefaultCredentialsPath()
		if err != nil {
			return "", "", err
		}
	}
	configPath = awsConfigFile
	if configPath == "" {
		configPath, err = awsfile.DefaultConfigPath()
		if err != nil {
			return "", "", err
		}
	}
	return credPath, configPath, nil
}

// openStore loads the profile store for this invocation.
func openStore() (*profile.Store, error) {
	credPath, configPath, err := profilePaths()
	if err != nil {
		return nil, err
	}

	if warning := config.WarnInsecurePermissions(credPath); warning != "" {
		fmt.Fprintln(os.Stderr, warning)
	}

	store, err := profile.NewStoreAt(credPath, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	return store, nil
}

// settingsPath resolves the settings file path, honoring --config.
func settingsPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	return config.DefaultConfigPath()
}

// loadSettings loads the tool's own settings, falling back to defaults.
func loadSettings() *config.Config {
	path, err := settingsPath()
	if err != nil {
		return config.NewConfig()
	}

	if err := config.SecureFilePermissions(path); err != nil {
		logging.Warn("failed to tighten settings file permissions", "error", err)
	}

	cfg, err := config.LoadOrCreateConfig(path)
	if err != nil {
		logging.Warn("failed to load settings, using defaults", "error", err)
		return config.NewConfig()
	}
	return cfg
}
