// Package errs defines the failure categories surfaced by the shop core:
// validation failures the caller can prevent, unresolved cut references and
// storage failures coming from the persistence collaborator.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidWeight      = errors.New("weight must be greater than zero")
	ErrUnknownAnimalType  = errors.New("unknown animal type")
	ErrEmptyCustomer      = errors.New("customer name is required")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInsufficientStock  = errors.New("insufficient stock for cut")
	ErrCutNotFound        = errors.New("cut not found")
	ErrDuplicateID        = errors.New("duplicate identifier")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

var reasons = map[error]string{
	ErrInvalidWeight:     "invalid_weight",
	ErrUnknownAnimalType: "unknown_animal_type",
	ErrEmptyCustomer:     "empty_customer",
	ErrEmptyCart:         "empty_cart",
	ErrInsufficientStock: "insufficient_stock",
	ErrCutNotFound:       "cut_not_found",
	ErrDuplicateID:       "duplicate_id",
}

// ValidationError rejects a request as a whole. Err is one of the sentinels above.
type ValidationError struct {
	Field  string
	Detail string
	Err    error
}

// Invalid builds a ValidationError for the given field and sentinel.
func Invalid(field string, err error, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Err: err, Detail: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("validation failed on %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("validation failed on %s: %v: %s", e.Field, e.Err, e.Detail)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Reason returns a stable machine-readable code for the failed condition.
func (e *ValidationError) Reason() string {
	if r, ok := reasons[e.Err]; ok {
		return r
	}
	return "invalid_request"
}

// NotFoundError reports a cart line referencing a cut that no batch holds.
type NotFoundError struct {
	CutID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cut %q not found in any batch", e.CutID)
}

// Is lets errors.Is(err, ErrCutNotFound) match.
func (e *NotFoundError) Is(target error) bool { return target == ErrCutNotFound }

// Reason mirrors ValidationError.Reason.
func (e *NotFoundError) Reason() string { return reasons[ErrCutNotFound] }

// StorageError wraps a failure of the persistence collaborator.
type StorageError struct {
	Op  string
	Key string
	Err error
}

// Storage wraps err as a StorageError; nil stays nil.
func Storage(op, key string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Key: key, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsValidation reports whether err was caused by a rejected request, including
// unresolved cut references.
func IsValidation(err error) bool {
	var v *ValidationError
	var nf *NotFoundError
	return errors.As(err, &v) || errors.As(err, &nf)
}

// IsNotFound reports whether err names an unknown cut.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsStorage reports whether err came from the persistence layer.
func IsStorage(err error) bool {
	var s *StorageError
	return errors.As(err, &s)
}

// Reason extracts the reason code of a validation failure, or "" otherwise.
func Reason(err error) string {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf.Reason()
	}
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Reason()
	}
	return ""
}
