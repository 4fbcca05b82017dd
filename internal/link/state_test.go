package link

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResolver(t *testing.T) *FuncRegistry {
	t.Helper()
	r := NewFuncRegistry()
	require.NoError(t, r.Register("sum", sum))
	return r
}

func TestSaveState_SharesComponents(t *testing.T) {
	ids := NewComponentIDs("a", "b", "c", "d")
	a, b, c, d := ids[0], ids[1], ids[2], ids[3]
	l1, _ := NewComponentLink([]*ComponentID{a, b}, c, "sum", sum)
	l2, _ := NewComponentLink([]*ComponentID{a, b}, d, "sum", sum)

	got := SaveState([]*ComponentLink{l1, l2})
	want := State{
		Version: 1,
		Components: []ComponentState{
			{ID: "ComponentID_0", Label: "a"},
			{ID: "ComponentID_1", Label: "b"},
			{ID: "ComponentID_2", Label: "c"},
			{ID: "ComponentID_3", Label: "d"},
		},
		Links: []LinkState{
			{To: "ComponentID_2", From: []string{"ComponentID_0", "ComponentID_1"}, Using: "sum"},
			{To: "ComponentID_3", From: []string{"ComponentID_0", "ComponentID_1"}, Using: "sum"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SaveState mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalLinks_PreservesSharing(t *testing.T) {
	a, b, c, d := NewComponentID("a"), NewComponentID("b"), NewComponentID("c"), NewComponentID("d")
	l1, _ := NewComponentLink([]*ComponentID{a, b}, c, "sum", sum)
	l2, _ := NewComponentLink([]*ComponentID{a, b}, d, "sum", sum)

	data, err := MarshalLinks([]*ComponentLink{l1, l2})
	require.NoError(t, err)

	restored, err := UnmarshalLinks(data, testResolver(t))
	require.NoError(t, err)
	require.Len(t, restored, 2)

	assert.Equal(t, l1.String(), restored[0].String())
	assert.Equal(t, l2.String(), restored[1].String())
	assert.Same(t, restored[0].From()[0], restored[1].From()[0])
	assert.NotSame(t, a, restored[0].From()[0])
}

func TestClone_EvaluatesIdentically(t *testing.T) {
	a, b, c := NewComponentID("a"), NewComponentID("b"), NewComponentID("c")
	l, _ := NewComponentLink([]*ComponentID{a, b}, c, "sum", sum)

	cl, err := Clone(l, testResolver(t))
	require.NoError(t, err)

	want, err := l.Compute([]float64{45}, []float64{50})
	require.NoError(t, err)
	got, err := cl.Compute([]float64{45}, []float64{50})
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, l.String(), cl.String())
}

func TestRestore_Errors(t *testing.T) {
	r := testResolver(t)

	_, err := State{Version: 99}.Restore(r)
	assert.Error(t, err)

	_, err = State{Version: 1, Links: []LinkState{{To: "x", From: []string{"y"}, Using: "nope"}}}.Restore(r)
	assert.ErrorIs(t, err, ErrUnknownFunc)

	_, err = State{Version: 1, Links: []LinkState{{To: "x", From: []string{"y"}, Using: "sum"}}}.Restore(r)
	assert.Error(t, err)

	_, err = State{Version: 1, Components: []ComponentState{{ID: "x"}, {ID: "x"}}}.Restore(r)
	assert.Error(t, err)

	_, err = UnmarshalLinks([]byte("{"), r)
	assert.Error(t, err)
}

func TestState_JSONShape(t *testing.T) {
	a, b := NewComponentID("lon_in"), NewComponentID("lon_out")
	l, _ := NewComponentLink([]*ComponentID{a}, b, "sum", sum)

	data, err := MarshalLinks([]*ComponentLink{l})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "components")
	assert.Contains(t, raw, "links")
	assert.EqualValues(t, 1, raw["version"])
}
