package cache

import (
	"errors"
	"fmt"
)

// BackendError reports a failure of the storage behind a cache, as opposed
// to a miss.
type BackendError struct {
	Backend string // "file" or "redis"
	Op      string // "get", "set", "delete", "clear"
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s cache %s: %v", e.Backend, e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// IsBackendError reports whether err came from a cache backend.
func IsBackendError(err error) bool {
	var be *BackendError
	return errors.As(err, &be)
}

func backendErr(backend, op string, err error) error {
	if err == nil {
		return nil
	}
	return &BackendError{Backend: backend, Op: op, Err: err}
}
