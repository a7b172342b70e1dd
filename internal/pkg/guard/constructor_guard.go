// Package guard provides a marker that detects zero-value commands and queries
// which bypassed their constructor.
//
// Commands carry validated data into handlers. A command built as a struct
// literal skips that validation, so every handler calls Validate first and
// rejects zero values with the command's own error.
//
// Example:
//
//	var ErrDeleteOrderCommandIsNotConstructed = errors.New(
//	    "DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
//	)
//
//	type DeleteOrderCommand struct {
//	    tenant  kernel.TenantID
//	    orderID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewDeleteOrderCommand(tenant kernel.TenantID, id kernel.UUID) (DeleteOrderCommand, error) {
//	    if err := errors.Join(tenant.Validate(), id.Validate()); err != nil {
//	        return DeleteOrderCommand{}, err
//	    }
//	    return DeleteOrderCommand{tenant: tenant, orderID: id, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c DeleteOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
//	}
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in value types that must only be built by their
// New* function. The zero value fails validation.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
