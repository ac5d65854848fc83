package iotaxon

import (
	"fmt"

	"github.com/beasleyjonm/ORION/pkg/errcode"
	"github.com/gnames/gn"
)

// TaxonomyFileError creates an error for when the taxonomy dump
// cannot be read.
func TaxonomyFileError(path string, err error) error {
	msg := `Cannot read taxonomy dump

<em>File:</em> %s

<em>How to fix:</em>
  1. Download taxdump.tar.gz from the NCBI taxonomy FTP site
  2. Extract nodes.dmp into the data directory`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.TaxonomyLoadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read taxonomy dump %s: %w", path, err),
	}
}
