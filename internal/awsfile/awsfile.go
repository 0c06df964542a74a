// Package awsfile reads and writes the two AWS shared configuration files
// (~/.aws/credentials and ~/.aws/config) with round-trip fidelity: section
// order and keys the tool does not interpret survive a load/save cycle.
package awsfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// configSectionPrefix marks non-default profile sections in the config file.
// The credentials file uses bare profile names.
const configSectionPrefix = "profile "

// DefaultProfileName is the unprefixed section both files reserve.
const DefaultProfileName = "default"

// DefaultCredentialsPath returns the credentials file path, honoring the
// AWS_SHARED_CREDENTIALS_FILE override.
func DefaultCredentialsPath() (string, error) {
	if envPath := os.Getenv("AWS_SHARED_CREDENTIALS_FILE"); envPath != "" {
		return envPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".aws", "credentials"), nil
}

// DefaultConfigPath returns the config file path, honoring the
// AWS_CONFIG_FILE override.
func DefaultConfigPath() (string, error) {
	if envPath := os.Getenv("AWS_CONFIG_FILE"); envPath != "" {
		return envPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".aws", "config"), nil
}

// Load parses an AWS shared file. A missing file yields an empty document,
// not an error.
func Load(path string) (*ini.File, error) {
	cfg, err := ini.LooseLoad(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return cfg, nil
}

// SaveAtomic serializes cfg to a temporary file in the target directory and
// renames it over path, so a crash mid-write never corrupts the existing
// file. The written file is mode 0600.
func SaveAtomic(path string, cfg *ini.File) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := cfg.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := os.Chmod(tmpPath, 0600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions on %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// ConfigSection maps a profile name to its config-file section name:
// "default" stays bare, everything else gets the "profile " prefix.
func ConfigSection(name string) string {
	if name == DefaultProfileName {
		return name
	}
	return configSectionPrefix + name
}

// ProfileName maps a config-file section name back to a profile name.
// Sections that do not follow the profile convention (including ini's
// implicit default section) report ok=false.
func ProfileName(section string) (name string, ok bool) {
	if section == DefaultProfileName {
		return DefaultProfileName, true
	}
	if strings.HasPrefix(section, configSectionPrefix) {
		name = strings.TrimSpace(strings.TrimPrefix(section, configSectionPrefix))
		return name, name != ""
	}
	return "", false
}
