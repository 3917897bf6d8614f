package storage

import "errors"

// Storage errors returned by System and Scope.
var (
	// ErrNotFound indicates the requested file is not owned by the scope.
	ErrNotFound = errors.New("storage: file not found")

	// ErrPermissionDenied indicates insufficient permissions on the storage area.
	ErrPermissionDenied = errors.New("storage: permission denied")

	// ErrInvalidKey indicates a key that is empty or escapes the base path.
	ErrInvalidKey = errors.New("storage: invalid key")

	// ErrScopeReleased indicates a file was requested from a scope after Release.
	ErrScopeReleased = errors.New("storage: scope released")
)
