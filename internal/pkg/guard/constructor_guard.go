// Package guard provides the ConstructorGuard pattern used by commands, queries
// and value objects to ensure they are only created through their designated
// constructor functions, never as zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is provided and the object was not properly constructed.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as created through its constructor.
// Embed it in a struct and set it with NewConstructorGuard inside the
// constructor; zero-value instances will then fail Validate.
//
// Example:
//
//	type ConfirmOrderCommand struct {
//	    orderID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewConfirmOrderCommand(orderID kernel.UUID) (ConfirmOrderCommand, error) {
//	    if err := orderID.Validate(); err != nil {
//	        return ConfirmOrderCommand{}, err
//	    }
//	    return ConfirmOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the enclosing object as
// properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the object was created through its constructor,
// otherwise the provided validationError (or ErrDefaultConstructorGuard if nil).
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
