// Package guard provides the constructor guard pattern used by domain objects,
// commands, and queries to enforce creation through their designated constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by ConstructorGuard.Validate()
// when a nil error is passed as the validation error. This ensures that validation
// always fails with a meaningful message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is a defensive programming pattern that ensures value objects
// and entities are only created through their designated constructor functions.
// It prevents direct struct initialization and enforces validation rules.
//
// The guard works by maintaining an internal flag that is only set to true when
// the object is created through the proper constructor function. Any attempt to
// use a zero-value struct will fail validation.
//
// Example usage:
//
//	var ErrLocationNotConstructed = errors.New("Location must be created via NewLocation")
//
//	type Location struct {
//	    zone  string
//	    guard ConstructorGuard
//	}
//
//	func NewLocation(zone string) (Location, error) {
//	    if zone == "" {
//	        return Location{}, errors.New("zone is required")
//	    }
//	    return Location{zone: zone, guard: NewConstructorGuard()}, nil
//	}
//
//	func (l Location) Validate() error {
//	    return l.guard.Validate(ErrLocationNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a properly constructed guard.
// Embed the returned value in objects created through their constructor.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the guard was created through NewConstructorGuard.
// For zero-value guards it returns the provided error, or
// ErrDefaultConstructorGuard when the provided error is nil.
func (g ConstructorGuard) Validate(err error) error {
	if g.isConstructed {
		return nil
	}
	if err == nil {
		return ErrDefaultConstructorGuard
	}
	return err
}
