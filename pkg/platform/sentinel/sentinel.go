// Package sentinel holds the sentinel errors stores return for factual
// resource states. Services translate them into coded domain errors
// (pkg/domain-errors); handlers never see these directly.
package sentinel

import "errors"

var (
	// ErrNotFound: the row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict: a uniqueness or optimistic-concurrency check failed.
	ErrConflict = errors.New("conflict")
	// ErrUnavailable: the backing resource is temporarily unreachable.
	ErrUnavailable = errors.New("unavailable")
)
