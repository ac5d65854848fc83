package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDataDir sets the directory holding source data files.
func OptDataDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Data Dir", s) {
			c.DataDir = s
		}
	}
}

// OptBlockSize sets the node-row count that triggers a flush.
func OptBlockSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Block Size", i) {
			c.BlockSize = i
		}
	}
}

// OptJobsNumber sets the number of concurrent download workers.
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptNormalizerURL sets the Node Normalization endpoint.
func OptNormalizerURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Normalizer URL", s) {
			c.Normalizer.URL = s
		}
	}
}

// OptLocatorLookback sets the maximum backward scan distance of the
// record locator.
func OptLocatorLookback(i int) Option {
	return func(c *Config) {
		if isValidInt("Locator Lookback", i) {
			c.Locator.Lookback = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the logging format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets the logging destination.
// Valid values: "file", "stdout", "stderr".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the user home directory. Runtime-only.
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Dir", s) {
			c.HomeDir = s
		}
	}
}

// OptUniRefFiles sets the UniRef dataset base names. Runtime-only.
func OptUniRefFiles(files []string) Option {
	return func(c *Config) {
		if len(files) > 0 {
			c.UniRef.Files = files
		}
	}
}

// OptUniRefIndexSuffix sets the offset index file suffix.
// Runtime-only.
func OptUniRefIndexSuffix(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("UniRef Index Suffix", s) {
			c.UniRef.IndexSuffix = s
		}
	}
}

// OptProteomeFiles sets the GOA annotation file names. Runtime-only.
func OptProteomeFiles(files []string) Option {
	return func(c *Config) {
		if len(files) > 0 {
			c.Proteome.Files = files
		}
	}
}

// OptProteomeOutName sets the output table prefix for the proteome
// command. Runtime-only.
func OptProteomeOutName(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Proteome Out Name", s) {
			c.Proteome.OutName = s
		}
	}
}

// OptCord19Fetch enables downloading of CORD-19 sources before
// parsing. Runtime-only.
func OptCord19Fetch(b bool) Option {
	return func(c *Config) {
		c.Cord19.Fetch = b
	}
}
