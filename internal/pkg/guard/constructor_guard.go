// Package guard implements the constructor-guard pattern used by domain
// objects to ensure they are only created through their factory functions.
// The zero value of a guarded object fails validation, which catches
// accidental struct-literal construction that would bypass invariants.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no object-specific
// error is supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed.
// Embed it as a field and initialize it with NewConstructorGuard inside the
// object's constructor. The zero value is intentionally invalid.
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard creates a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns nil for a properly constructed guard.
// For a zero-value guard it returns the supplied error, or
// ErrDefaultConstructorGuard when err is nil.
func (g ConstructorGuard) Validate(err error) error {
	if g.constructed {
		return nil
	}
	if err == nil {
		return ErrDefaultConstructorGuard
	}
	return err
}
