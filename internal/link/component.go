// Package link models derived data columns: a ComponentLink computes one
// column from others through a named function. Links can be saved to a
// JSON state and restored, provided the functions they use are resolvable
// by name.
package link

// ComponentID is an opaque handle for one data column. Two IDs refer to the
// same column only if they are the same pointer; labels need not be unique.
type ComponentID struct {
	label string
}

// NewComponentID returns a new handle with the given display label.
func NewComponentID(label string) *ComponentID {
	return &ComponentID{label: label}
}

// Label returns the display label.
func (c *ComponentID) Label() string {
	if c == nil {
		return ""
	}
	return c.label
}

func (c *ComponentID) String() string { return c.Label() }

// NewComponentIDs is a convenience for building several handles at once.
func NewComponentIDs(labels ...string) []*ComponentID {
	ids := make([]*ComponentID, len(labels))
	for i, l := range labels {
		ids[i] = NewComponentID(l)
	}
	return ids
}
