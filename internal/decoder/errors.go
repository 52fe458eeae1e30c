package decoder

import (
	"fmt"
	"strings"
)

// MissingTypeError reports a typed item configuration without a
// discoverable type tag.
type MissingTypeError struct {
	Attribute string
	Label     string // set for keyed collections
	Index     int    // position in an ordered collection, -1 for keyed
}

func (e *MissingTypeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("missing type for attribute '%s' (item '%s')", e.Attribute, e.Label)
	}
	return fmt.Sprintf("missing type for attribute '%s' (item %d)", e.Attribute, e.Index)
}

// UnknownAttributeError reports configuration attributes the model type
// does not declare.
type UnknownAttributeError struct {
	ModelType string
	Names     []string
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("model type '%s' does not support attribute(s) '%s'",
		e.ModelType, strings.Join(e.Names, "', '"))
}
