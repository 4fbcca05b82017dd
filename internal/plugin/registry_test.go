package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/skylink/internal/link"
)

type stubHelper struct {
	name     string
	category string
	funcs    map[string]link.Func
}

func newStubHelper(name, category string) *stubHelper {
	double := func(args ...[]float64) ([]float64, error) {
		out := make([]float64, len(args[0]))
		for i, v := range args[0] {
			out[i] = 2 * v
		}
		return out, nil
	}
	half := func(args ...[]float64) ([]float64, error) {
		out := make([]float64, len(args[0]))
		for i, v := range args[0] {
			out[i] = v / 2
		}
		return out, nil
	}
	return &stubHelper{
		name:     name,
		category: category,
		funcs: map[string]link.Func{
			FuncName(name, Forwards, 0):  double,
			FuncName(name, Backwards, 0): half,
		},
	}
}

func (s *stubHelper) Name() string                       { return s.name }
func (s *stubHelper) Display() string                    { return "stub " + s.name }
func (s *stubHelper) Category() string                   { return s.category }
func (s *stubHelper) Labels() (inputs, outputs []string) { return []string{"a"}, []string{"b"} }
func (s *stubHelper) Arity() int                         { return 1 }
func (s *stubHelper) Funcs() map[string]link.Func        { return s.funcs }
func (s *stubHelper) Links(inputs, outputs []*link.ComponentID) ([]*link.ComponentLink, error) {
	return nil, nil
}

type stubPlugin struct {
	name    string
	helpers []LinkHelper
	err     error
}

func (p stubPlugin) Name() string    { return p.name }
func (p stubPlugin) Version() string { return "1.2.3" }
func (p stubPlugin) Register(r *Registry) error {
	for _, h := range p.helpers {
		if err := r.RegisterHelper(h); err != nil {
			return err
		}
	}
	return p.err
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"", Forwards, false},
		{"forwards", Forwards, false},
		{"backwards", Backwards, false},
		{"sideways", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestFuncName(t *testing.T) {
	assert.Equal(t, "Galactic_to_FK5.forwards_1", FuncName("Galactic_to_FK5", Forwards, 0))
	assert.Equal(t, "X.backwards_3", FuncName("X", Backwards, 2))
}

func TestRegistry_RegisterHelper(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterHelper(newStubHelper("b", "Cat2")))
	require.NoError(t, r.RegisterHelper(newStubHelper("a", "Cat1")))

	assert.Error(t, r.RegisterHelper(newStubHelper("a", "Cat1")))
	assert.Error(t, r.RegisterHelper(nil))
	assert.Error(t, r.RegisterHelper(newStubHelper("", "Cat1")))

	helpers := r.Helpers()
	require.Len(t, helpers, 2)
	assert.Equal(t, "a", helpers[0].Name())
	assert.Equal(t, "b", helpers[1].Name())
	assert.Equal(t, []string{"Cat1", "Cat2"}, r.Categories())

	h, err := r.Helper("a")
	require.NoError(t, err)
	assert.Equal(t, "stub a", h.Display())

	_, err = r.Helper("missing")
	assert.ErrorIs(t, err, ErrUnknownHelper)

	_, ok := r.ResolveFunc("a.backwards_1")
	assert.True(t, ok)
}

func TestRegistry_DuplicateFunction(t *testing.T) {
	r := NewRegistry()
	first := newStubHelper("a", "Cat")
	require.NoError(t, r.RegisterHelper(first))

	clash := newStubHelper("other", "Cat")
	clash.funcs = first.funcs
	err := r.RegisterHelper(clash)
	assert.ErrorIs(t, err, link.ErrDuplicateFunc)

	_, err = r.Helper("other")
	assert.ErrorIs(t, err, ErrUnknownHelper)
}

func TestRegistry_Install(t *testing.T) {
	r := NewRegistry()
	meta, err := r.Install(stubPlugin{name: "p", helpers: []LinkHelper{newStubHelper("y", "C"), newStubHelper("x", "C")}})
	require.NoError(t, err)
	assert.Equal(t, Metadata{Name: "p", Version: "1.2.3", Helpers: []string{"x", "y"}}, meta)

	_, err = r.Install(stubPlugin{name: "p"})
	assert.Error(t, err)

	_, err = r.Install(nil)
	assert.Error(t, err)

	boom := errors.New("boom")
	_, err = r.Install(stubPlugin{name: "broken", err: boom})
	assert.ErrorIs(t, err, boom)

	plugins := r.Plugins()
	require.Len(t, plugins, 1)
	assert.Equal(t, "p", plugins[0].Name)
}

func TestRegistry_Apply(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterHelper(newStubHelper("s", "C")))

	out, err := r.Apply("s", Forwards, [][]float64{{1, 2}})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2, 4}}, out)

	out, err = r.Apply("s", Backwards, [][]float64{{2, 4}})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2}}, out)

	_, err = r.Apply("s", Forwards, [][]float64{{1}, {2}})
	assert.ErrorIs(t, err, ErrValueCount)

	_, err = r.Apply("nope", Forwards, nil)
	assert.ErrorIs(t, err, ErrUnknownHelper)
}
