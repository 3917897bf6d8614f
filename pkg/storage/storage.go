// Package storage manages the transient working area for uploaded and generated files.
// Each request opens a Scope that names its files uniquely and deletes them on Release,
// so concurrent requests never collide and no file outlives the request that created it.
package storage

import (
	"time"

	"github.com/JaimeStill/doc-convert/pkg/lifecycle"
)

// System defines the storage area operations.
type System interface {
	// Start registers lifecycle hooks with the coordinator.
	// The base directory is created on startup and the stale sweeper
	// runs until the coordinator shuts down.
	Start(lc *lifecycle.Coordinator) error

	// Scope opens a new request scope. Callers must Release it.
	Scope() *Scope

	// Sweep removes files in the base directory last modified before
	// now minus olderThan. Returns the number of files removed.
	Sweep(olderThan time.Duration) (int, error)

	// BasePath returns the absolute storage directory.
	BasePath() string
}
