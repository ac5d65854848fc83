// Package orion holds application-wide metadata and the contract
// implemented by every data-source loader.
package orion

import "context"

var (
	// Version is set by the build system via ldflags.
	Version = "dev"
	// Build is the build timestamp, set via ldflags.
	Build = "n/a"
)

// Loader converts one external data source into KGX node and edge
// tables. A loader owns its normalization cache and output files for
// the duration of a single run.
type Loader interface {
	// Load runs the full extraction pipeline for the source and
	// writes the node/edge tables. Per-record failures are logged and
	// skipped; only unreadable inputs or unwritable outputs return an
	// error.
	Load(ctx context.Context) error
}
