package validate

import "strings"

// Class separates hard validation failures from the soft "considering" tier:
// input that parses structurally but names a combination outside the
// canonical set (e.g. the weekday token "-1M").
type Class int

const (
	ClassInvalid Class = iota
	ClassConsidered
)

// FieldError is a single-field validation failure.
type FieldError struct {
	Field string
	Msg   string
	Class Class
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return e.Field + ": " + e.Msg
}

// Considered reports whether err is (or wraps) a soft "considering"
// validation failure rather than a hard one.
func Considered(err error) bool {
	fe, ok := err.(*FieldError)
	return ok && fe.Class == ClassConsidered
}

// AggregateError is an ordered collection of validation failures. List
// validators and the normalizers collect every problem before reporting, so
// a caller sees all of them at once.
type AggregateError struct {
	Errs []error
}

func (e *AggregateError) Error() string {
	parts := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, "; ")
}

func (e *AggregateError) Unwrap() []error { return e.Errs }

// Aggregate folds a slice of errors into a single error value: nil for an
// empty slice, the error itself for one, an AggregateError otherwise.
func Aggregate(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return &AggregateError{Errs: errs}
	}
}

// StructuralError reports malformed input shape: a scalar where a record was
// required, a record where a list was required, and so on.
type StructuralError struct {
	Msg string
}

func (e *StructuralError) Error() string { return e.Msg }
