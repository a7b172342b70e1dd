package errs

import "fmt"

// ConflictError is returned when a write would break an identity or workflow rule,
// e.g. a phone already owned by another person.
type ConflictError struct {
	ParamName string
	Value     any
	Cause     error
}

func NewConflictError(paramName string, value any) *ConflictError {
	return &ConflictError{
		ParamName: paramName,
		Value:     value,
	}
}

func NewConflictErrorWithCause(paramName string, value any, cause error) *ConflictError {
	return &ConflictError{
		ParamName: paramName,
		Value:     value,
		Cause:     cause,
	}
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s is already used by %s", ErrConflict, sanitize(e.Value), e.ParamName)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// ObjectIsReferencedError is returned when a delete is blocked by rows that still
// point at the object. Count is the number of blocking rows.
type ObjectIsReferencedError struct {
	ParamName string
	ID        any
	Count     int64
}

func NewObjectIsReferencedError(paramName string, id any, count int64) *ObjectIsReferencedError {
	return &ObjectIsReferencedError{
		ParamName: paramName,
		ID:        id,
		Count:     count,
	}
}

func (e *ObjectIsReferencedError) Error() string {
	return fmt.Sprintf("%s: %s %s is referenced by %d records",
		ErrObjectIsReferenced, e.ParamName, sanitize(e.ID), e.Count)
}

func (e *ObjectIsReferencedError) Unwrap() error {
	return ErrObjectIsReferenced
}
