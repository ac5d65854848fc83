package iocord19

import (
	"fmt"

	"github.com/beasleyjonm/ORION/pkg/errcode"
	"github.com/gnames/gn"
)

// FetchError creates an error for when CORD-19 source files cannot
// be downloaded.
func FetchError(err error) error {
	msg := `Cannot download CORD-19 source files

<em>How to fix:</em>
  1. Check the network connection
  2. Check the URLs in the sources file
  3. Rerun without fetching if the files are already in place`

	return &gn.Error{
		Code: errcode.FetchError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot fetch CORD-19 sources: %w", err),
	}
}

// InputFileError creates an error for when a CORD-19 data file cannot
// be read.
func InputFileError(path string, err error) error {
	msg := `Cannot read CORD-19 data file

<em>File:</em> %s

<em>How to fix:</em>
  1. Check the data directory setting
  2. Rerun with fetching enabled to download the file`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.Cord19InputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read CORD-19 file %s: %w", path, err),
	}
}

// OutputError creates an error for when an output table cannot be
// written.
func OutputError(path string, err error) error {
	msg := "Cannot write output table <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.Cord19OutputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write output %s: %w", path, err),
	}
}
