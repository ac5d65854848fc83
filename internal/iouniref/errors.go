package iouniref

import (
	"fmt"

	"github.com/beasleyjonm/ORION/pkg/errcode"
	"github.com/gnames/gn"
)

// InputFileError creates an error for when a UniRef data file cannot
// be opened.
func InputFileError(path string, err error) error {
	msg := `Cannot open UniRef data file

<em>File:</em> %s

<em>How to fix:</em>
  1. Check the data directory setting
  2. Download the file from the UniProt UniRef FTP site`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.UniRefInputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot open UniRef file %s: %w", path, err),
	}
}

// IndexFileError creates an error for when an offset index file
// cannot be read.
func IndexFileError(path string, err error) error {
	msg := `Cannot read UniRef offset index

<em>File:</em> %s

<em>How to fix:</em>
  1. Check the data directory setting
  2. Regenerate the index (grep byte offsets of target taxa)`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.UniRefIndexError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read index %s: %w", path, err),
	}
}

// OutputError creates an error for when an output table cannot be
// written.
func OutputError(path string, err error) error {
	msg := "Cannot write output table <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.UniRefOutputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write output %s: %w", path, err),
	}
}
