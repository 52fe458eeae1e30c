package registry

import (
	"fmt"
	"strings"
)

// DuplicateTagError is returned when a tag is registered twice in one category.
type DuplicateTagError struct {
	Category string
	Tag      string
}

func (e *DuplicateTagError) Error() string {
	if e.Tag == "" {
		return fmt.Sprintf("untyped category '%s' is already registered", e.Category)
	}
	return fmt.Sprintf("type '%s' is already registered for category '%s'", e.Tag, e.Category)
}

// UnknownTypeError is returned when a tag does not resolve in a category.
type UnknownTypeError struct {
	Category string
	Tag      string
	Known    []string
}

func (e *UnknownTypeError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("unknown type '%s' for category '%s'", e.Tag, e.Category)
	}
	return fmt.Sprintf("unknown type '%s' for category '%s' (known types: %s)",
		e.Tag, e.Category, strings.Join(e.Known, ", "))
}

// CategoryConflictError is returned when a registration disagrees with the
// category's existing shape.
type CategoryConflictError struct {
	Category string
	Reason   string
}

func (e *CategoryConflictError) Error() string {
	return fmt.Sprintf("category '%s': %s", e.Category, e.Reason)
}
