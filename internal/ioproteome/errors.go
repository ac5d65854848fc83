package ioproteome

import (
	"fmt"

	"github.com/beasleyjonm/ORION/pkg/errcode"
	"github.com/gnames/gn"
)

// InputFileError creates an error for when a GOA annotation file
// cannot be read.
func InputFileError(path string, err error) error {
	msg := `Cannot read GOA annotation file

<em>File:</em> %s

<em>How to fix:</em>
  1. Check the data directory setting
  2. Download the proteome GOA files from the EBI GOA FTP site`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.ProteomeInputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read GOA file %s: %w", path, err),
	}
}

// OutputError creates an error for when an output table cannot be
// written.
func OutputError(path string, err error) error {
	msg := "Cannot write output table <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.ProteomeOutputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write output %s: %w", path, err),
	}
}
