// Package config provides configuration management for ORION.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via
// gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml >
// defaults.
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - General: data_dir, block_size, jobs_number
//   - Normalizer: url
//   - Locator: lookback
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - UniRef.Files, UniRef.IndexSuffix, Proteome.Files,
//     Proteome.OutName, Cord19.Fetch (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use ORION_ prefix with underscores for nesting:
//
//	ORION_DATA_DIR=/data/orion
//	ORION_NORMALIZER_URL=https://nodenormalization-sri.renci.org/get_normalized_nodes
//	ORION_LOG_LEVEL=info
package config

import (
	"runtime"
)

// Config represents the complete ORION configuration.
type Config struct {
	// DataDir is the directory holding source data files. Output
	// node/edge tables are written next to their inputs.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// BlockSize is the number of accumulated node rows that triggers
	// a normalize/flush cycle during streaming ingestion. It bounds
	// memory use only; correctness does not depend on it.
	BlockSize int `mapstructure:"block_size" yaml:"block_size"`

	// JobsNumber is the number of concurrent workers for source file
	// retrieval. The extraction pipeline itself is sequential.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// Normalizer contains settings for the identity-normalization
	// service.
	Normalizer NormalizerConfig `mapstructure:"normalizer" yaml:"normalizer"`

	// Locator contains settings for the offset-indexed record locator.
	Locator LocatorConfig `mapstructure:"locator" yaml:"locator"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// UniRef contains settings specific to the uniref command.
	UniRef UniRefConfig

	// Proteome contains settings specific to the proteome command.
	Proteome ProteomeConfig

	// Cord19 contains settings specific to the cord19 command.
	Cord19 Cord19Config

	// HomeDir determines where config and log directories reside.
	// It must be set by CLI during init, there is no default value.
	HomeDir string
}

// NormalizerConfig contains parameters for the Node Normalization
// service client.
type NormalizerConfig struct {
	// URL is the bulk normalization endpoint. Identifiers are sent as
	// repeated "curie" query parameters.
	URL string `mapstructure:"url" yaml:"url"`
}

// LocatorConfig contains parameters for recovering records from
// approximate byte offsets.
type LocatorConfig struct {
	// Lookback is the maximum number of bytes the locator walks
	// backward from an index offset while searching for the record
	// opening tag.
	Lookback int `mapstructure:"lookback" yaml:"lookback"`
}

// UniRefConfig contains settings specific to the uniref command.
type UniRefConfig struct {
	// Files are the UniRef dataset base names to process
	// (e.g. "uniref100"). Each base name resolves to <name>.xml and
	// <name>_<IndexSuffix> in DataDir.
	Files []string

	// IndexSuffix is the file name suffix of the offset index that
	// accompanies each UniRef file.
	IndexSuffix string
}

// ProteomeConfig contains settings specific to the proteome command.
type ProteomeConfig struct {
	// Files are the GOA annotation files to process, relative to
	// DataDir.
	Files []string

	// OutName is the prefix for the output node/edge tables.
	OutName string
}

// Cord19Config contains settings specific to the cord19 command.
type Cord19Config struct {
	// Fetch downloads the CORD-19 source files into DataDir before
	// parsing.
	Fetch bool
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or
	// STDOUT.
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		DataDir:   ".",
		BlockSize: 10_000,
		Normalizer: NormalizerConfig{
			URL: "https://nodenormalization-sri.renci.org/get_normalized_nodes",
		},
		Locator: LocatorConfig{
			Lookback: 500,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		UniRef: UniRefConfig{
			IndexSuffix: "taxon_file_indexes.txt",
		},
		Proteome: ProteomeConfig{
			OutName: "Viral_proteome_GOA",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
