// Package iosources loads the sources.yaml file that lists remote
// locations of downloadable source data.
package iosources

import (
	"os"

	"github.com/beasleyjonm/ORION/pkg/config"
	"gopkg.in/yaml.v3"
)

// SourceFile is one downloadable source file.
type SourceFile struct {
	URL string `yaml:"url"`
}

// SourcesConfig mirrors the structure of sources.yaml.
type SourcesConfig struct {
	Cord19 []SourceFile `yaml:"cord19"`
}

// Load reads sources.yaml from the user's config directory.
func Load(homeDir string) (*SourcesConfig, error) {
	path := config.SourcesFilePath(homeDir)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, SourcesConfigError(path, err)
	}

	var res SourcesConfig
	if err = yaml.Unmarshal(data, &res); err != nil {
		return nil, SourcesConfigError(path, err)
	}
	return &res, nil
}

// URLs flattens a source file list into its URLs.
func URLs(files []SourceFile) []string {
	res := make([]string, len(files))
	for i, f := range files {
		res[i] = f.URL
	}
	return res
}
