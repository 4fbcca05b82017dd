// Package coordhelpers exposes astronomical frame conversions as
// bidirectional link helpers. Each helper maps N input columns to N output
// columns and back, producing 2N links.
package coordhelpers

import (
	"errors"
	"fmt"

	"github.com/banshee-data/skylink/internal/link"
	"github.com/banshee-data/skylink/internal/plugin"
)

// ErrIdentifierCount is returned when a helper gets the wrong number of components.
var ErrIdentifierCount = errors.New("wrong number of components for link helper")

// Category is the helper category shown to users.
const Category = "Astronomy"

// conversion computes all N outputs at once; individual link functions pick
// one component of the result.
type conversion func(args ...[]float64) ([][]float64, error)

// MultiLink turns a pair of N-way conversions into 2N single-output links.
type MultiLink struct {
	name      string
	forwards  []link.Func
	backwards []link.Func
}

func newMultiLink(name string, arity int, forward, backward conversion) *MultiLink {
	m := &MultiLink{
		name:      name,
		forwards:  make([]link.Func, arity),
		backwards: make([]link.Func, arity),
	}
	for i := 0; i < arity; i++ {
		m.forwards[i] = pick(forward, arity, i)
		m.backwards[i] = pick(backward, arity, i)
	}
	return m
}

func pick(conv conversion, arity, i int) link.Func {
	return func(args ...[]float64) ([]float64, error) {
		if len(args) != arity {
			return nil, fmt.Errorf("%w: expected %d arrays, got %d", link.ErrArity, arity, len(args))
		}
		out, err := conv(args...)
		if err != nil {
			return nil, err
		}
		return out[i], nil
	}
}

// Name is the helper identifier used in link descriptions.
func (m *MultiLink) Name() string { return m.name }

// Arity is the number of inputs (and outputs).
func (m *MultiLink) Arity() int { return len(m.forwards) }

// Funcs returns every forward and backward function keyed by qualified name.
func (m *MultiLink) Funcs() map[string]link.Func {
	out := make(map[string]link.Func, 2*len(m.forwards))
	for i := range m.forwards {
		out[plugin.FuncName(m.name, plugin.Forwards, i)] = m.forwards[i]
		out[plugin.FuncName(m.name, plugin.Backwards, i)] = m.backwards[i]
	}
	return out
}

// Links returns one forward link per output followed by one backward link
// per input.
func (m *MultiLink) Links(inputs, outputs []*link.ComponentID) ([]*link.ComponentLink, error) {
	n := m.Arity()
	if len(inputs) != n || len(outputs) != n {
		return nil, fmt.Errorf("%w: %s needs %d inputs and %d outputs, got %d and %d",
			ErrIdentifierCount, m.name, n, n, len(inputs), len(outputs))
	}

	links := make([]*link.ComponentLink, 0, 2*n)
	for i, out := range outputs {
		l, err := link.NewComponentLink(inputs, out, plugin.FuncName(m.name, plugin.Forwards, i), m.forwards[i])
		if err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	for i, in := range inputs {
		l, err := link.NewComponentLink(outputs, in, plugin.FuncName(m.name, plugin.Backwards, i), m.backwards[i])
		if err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, nil
}
