package execmodel

import "fmt"

// Debug gates the internal invariant assertions described in the cache's
// error handling design (package digest drift, empty version maps). It
// defaults to false; tests that want the extra checks set it explicitly.
// A package-level flag is used instead of a build tag because table-driven
// tests need to turn the checks on and off within a single binary.
var Debug = false

// StoreError wraps an error returned by the underlying durable store. The
// cache never synthesizes, swallows, or caches store errors; it only adds
// enough context (which operation, which key) to make the wrapped error
// actionable for the caller.
type StoreError struct {
	Op  string
	Key fmt.Stringer
	Err error
}

func (e *StoreError) Error() string {
	if e.Key != nil {
		return fmt.Sprintf("execcache: store error during %s(%s): %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("execcache: store error during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// WrapStoreError wraps err (if non-nil) as a *StoreError identifying the
// failing operation and key. It returns nil if err is nil so callers can
// write `return WrapStoreError(...)` unconditionally.
func WrapStoreError(op string, key fmt.Stringer, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Key: key, Err: err}
}

// ObjectAsPackageError is returned by GetPackageObject when the store's
// object for the given id is not actually a package.
type ObjectAsPackageError struct {
	ID ObjectID
}

func (e *ObjectAsPackageError) Error() string {
	return fmt.Sprintf("execcache: object %s is not a Move package", e.ID)
}

// InvariantError reports a debug-build-only invariant violation (I5/I6).
// Production code must treat these as unreachable; they exist purely so
// Debug-gated assertions have a typed error to report through a test
// harness instead of panicking directly.
type InvariantError struct {
	Invariant string
	Detail    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("execcache: invariant %s violated: %s", e.Invariant, e.Detail)
}
