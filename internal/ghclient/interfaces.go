// Package ghclient provides GitHub API client functionality.
package ghclient

import (
	"github.com/spiffcs/refbot/internal/references"
	"github.com/spiffcs/refbot/internal/stats"
)

// Ensure Client implements the capabilities consumed by the core.
var (
	_ references.Linker   = (*Client)(nil)
	_ references.Searcher = (*Client)(nil)
	_ stats.Counter       = (*Client)(nil)
)
