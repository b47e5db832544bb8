// Package lmerr defines the sentinel errors callers distinguish with
// errors.Is to pick an exit-code class, rather than parsing messages.
package lmerr

import "errors"

var (
	// ErrMalformedBudget is returned when a budget string does not
	// match the `\d+(\.\d+)?(k|m)?` grammar.
	ErrMalformedBudget = errors.New("malformed budget")

	// ErrRootNotFound is returned when the source root does not
	// exist or is not a directory.
	ErrRootNotFound = errors.New("root not found")

	// ErrCacheCorrupt is returned when the chunk cache database
	// exists but fails schema initialization or a sanity query.
	ErrCacheCorrupt = errors.New("cache corrupt")
)
