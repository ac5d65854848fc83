package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "orion"

	// TypeVirus is the organism-type code marking viral taxa in the
	// NCBI taxonomy dump (column 8 of nodes.dmp).
	TypeVirus = "9"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/orion by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/orion/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/orion/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// SourcesFilePath returns the full path to the sources.yaml file
// listing remote source locations.
// Returns ~/.config/orion/sources.yaml by default.
func SourcesFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "sources.yaml")
}
