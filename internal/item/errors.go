package item

import "fmt"

// MalformedItemError reports an item configuration whose shape does not
// match its Descriptor.
type MalformedItemError struct {
	Category string
	Label    string
	Reason   string
}

func (e *MalformedItemError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("malformed %s item '%s': %s", e.Category, e.Label, e.Reason)
	}
	return fmt.Sprintf("malformed %s item: %s", e.Category, e.Reason)
}
