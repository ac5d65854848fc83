// Package errcode enumerates error codes used by ORION's gn.Error
// values.
package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File system errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Source data errors
	TaxonomyLoadError
	SourcesConfigError
	FetchError

	// UniRef loader errors
	UniRefInputError
	UniRefIndexError
	UniRefOutputError

	// Proteome loader errors
	ProteomeInputError
	ProteomeOutputError

	// CORD-19 loader errors
	Cord19InputError
	Cord19OutputError
)
