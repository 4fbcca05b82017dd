package link

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrArity is returned when a link is evaluated with the wrong number of inputs.
	ErrArity = errors.New("link: wrong number of inputs")
	// ErrShapeMismatch is returned when input or output arrays differ in length.
	ErrShapeMismatch = errors.New("link: array lengths differ")
	// ErrMissingComponent is returned when a data source lacks an input column.
	ErrMissingComponent = errors.New("link: component not found in data")
)

// Data supplies column values by identifier.
type Data interface {
	Values(id *ComponentID) ([]float64, bool)
}

// DataMap is the simplest Data implementation.
type DataMap map[*ComponentID][]float64

// Values implements Data.
func (d DataMap) Values(id *ComponentID) ([]float64, bool) {
	v, ok := d[id]
	return v, ok
}

// ComponentLink derives the column To from the columns From using a named function.
type ComponentLink struct {
	to    *ComponentID
	from  []*ComponentID
	using string
	fn    Func
}

// NewComponentLink binds to = fn(from...). using is the qualified function
// name shown in String and stored in saved state.
func NewComponentLink(from []*ComponentID, to *ComponentID, using string, fn Func) (*ComponentLink, error) {
	if to == nil {
		return nil, errors.New("link: output component is nil")
	}
	if len(from) == 0 {
		return nil, errors.New("link: at least one input component is required")
	}
	for i, id := range from {
		if id == nil {
			return nil, fmt.Errorf("link: input component %d is nil", i)
		}
	}
	if using == "" || fn == nil {
		return nil, errors.New("link: function and function name are required")
	}
	return &ComponentLink{
		to:    to,
		from:  append([]*ComponentID(nil), from...),
		using: using,
		fn:    fn,
	}, nil
}

// To returns the derived component.
func (l *ComponentLink) To() *ComponentID { return l.to }

// From returns a copy of the input components in call order.
func (l *ComponentLink) From() []*ComponentID {
	return append([]*ComponentID(nil), l.from...)
}

// Using returns the qualified function name.
func (l *ComponentLink) Using() string { return l.using }

// String renders "to <- using(from1, from2, ...)".
func (l *ComponentLink) String() string {
	labels := make([]string, len(l.from))
	for i, id := range l.from {
		labels[i] = id.Label()
	}
	return fmt.Sprintf("%s <- %s(%s)", l.to.Label(), l.using, strings.Join(labels, ", "))
}

// Compute evaluates the link on explicit input arrays given in From order.
func (l *ComponentLink) Compute(args ...[]float64) ([]float64, error) {
	if len(args) != len(l.from) {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrArity, l.using, len(l.from), len(args))
	}
	n := len(args[0])
	for _, a := range args[1:] {
		if len(a) != n {
			return nil, fmt.Errorf("%w: %d != %d", ErrShapeMismatch, len(a), n)
		}
	}
	out, err := l.fn(args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.using, err)
	}
	if len(out) != n {
		return nil, fmt.Errorf("%w: %s returned %d values for %d inputs", ErrShapeMismatch, l.using, len(out), n)
	}
	return out, nil
}

// ComputeFrom evaluates the link pulling its inputs from data.
func (l *ComponentLink) ComputeFrom(data Data) ([]float64, error) {
	args := make([][]float64, len(l.from))
	for i, id := range l.from {
		v, ok := data.Values(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingComponent, id.Label())
		}
		args[i] = v
	}
	return l.Compute(args...)
}

// Equal reports whether two links derive the same component from the same
// inputs with the same function. Components compare by identity.
func (l *ComponentLink) Equal(other *ComponentLink) bool {
	if l == nil || other == nil {
		return l == other
	}
	if l.to != other.to || l.using != other.using || len(l.from) != len(other.from) {
		return false
	}
	for i := range l.from {
		if l.from[i] != other.from[i] {
			return false
		}
	}
	return true
}
