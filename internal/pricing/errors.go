package pricing

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned by stores when a row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrProductInUse is returned when deleting a product that prices still reference.
	ErrProductInUse = errors.New("product is referenced by prices")
)

// ValidationError is raised before any store call for a missing or invalid input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// ConflictError reports an exact duplicate found at submit time.
type ConflictError struct {
	Parks    []string
	Products []string
	Tax      TaxBehavior
}

func (e *ConflictError) Error() string {
	var b strings.Builder
	b.WriteString("price already exists")
	if len(e.Products) > 0 {
		fmt.Fprintf(&b, " for %s", strings.Join(e.Products, ", "))
	}
	if len(e.Parks) > 0 {
		fmt.Fprintf(&b, " (park: %s)", strings.Join(e.Parks, ", "))
	}
	if e.Tax != "" {
		fmt.Fprintf(&b, " with %s tax", e.Tax)
	}
	return b.String()
}

// ComboError identifies the batch combination that aborted a batch.
type ComboError struct {
	Combination Combination
	Err         error
}

func (e *ComboError) Error() string {
	return fmt.Sprintf("combination %s: %v", e.Combination, e.Err)
}

func (e *ComboError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}
