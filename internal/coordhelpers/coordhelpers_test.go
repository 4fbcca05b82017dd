package coordhelpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/skylink/internal/astro"
	"github.com/banshee-data/skylink/internal/link"
	"github.com/banshee-data/skylink/internal/plugin"
)

const tolerance = 1e-6

func newRegistry(t *testing.T) (*astro.Transformer, *plugin.Registry) {
	t.Helper()
	tr := astro.MustNewTransformer(astro.DefaultGalactocentric())
	reg := plugin.NewRegistry()
	_, err := reg.Install(New(tr))
	require.NoError(t, err)
	return tr, reg
}

func checkLink(t *testing.T, l *link.ComponentLink, from []*link.ComponentID, to *link.ComponentID) {
	t.Helper()
	assert.Same(t, to, l.To())
	got := l.From()
	require.Len(t, got, len(from))
	for i := range from {
		assert.Same(t, from[i], got[i])
	}
}

func checkUsing(t *testing.T, l *link.ComponentLink, args []float64, want float64) {
	t.Helper()
	in := make([][]float64, len(args))
	for i, a := range args {
		in[i] = []float64{a}
	}
	out, err := l.Compute(in...)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.InDelta(t, want, out[0], tolerance, "%s", l)
}

func TestCelestialLinks(t *testing.T) {
	tr, reg := newRegistry(t)

	// Expected results of converting (45, 50) forwards then backwards.
	tests := []struct {
		helper    *Celestial
		forwards  [2]float64
		backwards [2]float64
	}{
		{NewGalacticToFK5(tr), [2]float64{238.23062386, 27.96352696}, [2]float64{143.12136866, -7.76422226}},
		{NewFK4ToFK5(tr), [2]float64{45.87780898, 50.19529421}, [2]float64{44.12740884, 49.80169907}},
		{NewICRSToFK5(tr), [2]float64{45.00001315, 49.99999788}, [2]float64{44.99998685, 50.00000212}},
		{NewGalacticToFK4(tr), [2]float64{237.71557513, 28.11113265}, [2]float64{143.52337155, -7.32105993}},
		{NewICRSToFK4(tr), [2]float64{44.12742195, 49.801697}, [2]float64{45.87779583, 50.19529642}},
		{NewICRSToGalactic(tr), [2]float64{143.12137717, -7.76422008}, [2]float64{238.23062019, 27.96352359}},
	}

	for _, tt := range tests {
		name := tt.helper.Name()
		t.Run(name, func(t *testing.T) {
			lonIn, latIn, lonOut, latOut := link.NewComponentID("lon_in"), link.NewComponentID("lat_in"),
				link.NewComponentID("lon_out"), link.NewComponentID("lat_out")
			in := []*link.ComponentID{lonIn, latIn}
			out := []*link.ComponentID{lonOut, latOut}

			links, err := tt.helper.Links(in, out)
			require.NoError(t, err)
			require.Len(t, links, 4)

			checkLink(t, links[0], in, lonOut)
			checkLink(t, links[1], in, latOut)
			checkLink(t, links[2], out, lonIn)
			checkLink(t, links[3], out, latIn)

			assert.Equal(t, "lon_out <- "+name+".forwards_1(lon_in, lat_in)", links[0].String())
			assert.Equal(t, "lat_out <- "+name+".forwards_2(lon_in, lat_in)", links[1].String())
			assert.Equal(t, "lon_in <- "+name+".backwards_1(lon_out, lat_out)", links[2].String())
			assert.Equal(t, "lat_in <- "+name+".backwards_2(lon_out, lat_out)", links[3].String())

			want := []float64{tt.forwards[0], tt.forwards[1], tt.backwards[0], tt.backwards[1]}
			ref := []float64{45, 50}
			for i, l := range links {
				checkUsing(t, l, ref, want[i])

				clone, err := link.Clone(l, reg)
				require.NoError(t, err)
				assert.Equal(t, l.String(), clone.String())
				checkUsing(t, clone, ref, want[i])
			}
		})
	}
}

func TestGalactocentricLinks(t *testing.T) {
	tr, reg := newRegistry(t)
	h := NewGalactocentricToGalactic(tr)

	ids := link.NewComponentIDs("x", "y", "z", "l", "b", "d")
	cart, sph := ids[:3], ids[3:]

	links, err := h.Links(cart, sph)
	require.NoError(t, err)
	require.Len(t, links, 6)

	for i := 0; i < 3; i++ {
		checkLink(t, links[i], cart, sph[i])
		checkLink(t, links[3+i], sph, cart[i])
	}

	assert.Equal(t, "l <- GalactocentricToGalactic.forwards_1(x, y, z)", links[0].String())
	assert.Equal(t, "b <- GalactocentricToGalactic.forwards_2(x, y, z)", links[1].String())
	assert.Equal(t, "d <- GalactocentricToGalactic.forwards_3(x, y, z)", links[2].String())
	assert.Equal(t, "x <- GalactocentricToGalactic.backwards_1(l, b, d)", links[3].String())
	assert.Equal(t, "y <- GalactocentricToGalactic.backwards_2(l, b, d)", links[4].String())
	assert.Equal(t, "z <- GalactocentricToGalactic.backwards_3(l, b, d)", links[5].String())

	ref := []float64{1, 1, 2}
	want := []float64{
		6.141592406648453,
		12.096336453181067,
		9.559388692193782,
		-6.30046229834067,
		0.03489758558640843,
		0.055403498825152414,
	}
	for i, l := range links {
		checkUsing(t, l, ref, want[i])

		clone, err := link.Clone(l, reg)
		require.NoError(t, err)
		checkUsing(t, clone, ref, want[i])
	}
}

func TestLinks_IdentifierCount(t *testing.T) {
	tr := astro.MustNewTransformer(astro.DefaultGalactocentric())
	ids := link.NewComponentIDs("a", "b", "c")

	_, err := NewICRSToGalactic(tr).Links(ids, ids[:2])
	assert.ErrorIs(t, err, ErrIdentifierCount)

	_, err = NewGalactocentricToGalactic(tr).Links(ids[:2], ids)
	assert.ErrorIs(t, err, ErrIdentifierCount)
}

func TestForwardFunc_WrongArity(t *testing.T) {
	tr := astro.MustNewTransformer(astro.DefaultGalactocentric())
	fn := NewICRSToFK5(tr).Funcs()["ICRS_to_FK5.forwards_1"]
	require.NotNil(t, fn)

	_, err := fn([]float64{1})
	assert.ErrorIs(t, err, link.ErrArity)
}

func TestForwardFunc_ShapeMismatch(t *testing.T) {
	tr := astro.MustNewTransformer(astro.DefaultGalactocentric())
	fn := NewICRSToFK5(tr).Funcs()["ICRS_to_FK5.forwards_2"]

	_, err := fn([]float64{1, 2}, []float64{3})
	assert.ErrorIs(t, err, astro.ErrShapeMismatch)
}

func TestHelpersMetadata(t *testing.T) {
	tr := astro.MustNewTransformer(astro.DefaultGalactocentric())
	helpers := Helpers(tr)
	require.Len(t, helpers, 7)

	names := make([]string, len(helpers))
	for i, h := range helpers {
		names[i] = h.Name()
		assert.Equal(t, Category, h.Category())
		in, out := h.Labels()
		assert.Len(t, in, h.Arity())
		assert.Len(t, out, h.Arity())
		assert.Len(t, h.Funcs(), 2*h.Arity())
	}
	assert.Equal(t, []string{
		"Galactic_to_FK5", "FK4_to_FK5", "ICRS_to_FK5",
		"Galactic_to_FK4", "ICRS_to_FK4", "ICRS_to_Galactic",
		"GalactocentricToGalactic",
	}, names)

	g := NewGalacticToFK5(tr)
	assert.Equal(t, "Celestial Coordinates: Galactic <-> FK5 (J2000)", g.Display())
	in, out := g.Labels()
	assert.Equal(t, []string{"l", "b"}, in)
	assert.Equal(t, []string{"ra", "dec"}, out)

	in[0] = "mutated"
	in, _ = g.Labels()
	assert.Equal(t, "l", in[0])

	from, to := NewICRSToFK4(tr).Frames()
	assert.Equal(t, astro.ICRS, from)
	assert.Equal(t, astro.FK4, to)
}

func TestPluginInstall(t *testing.T) {
	_, reg := newRegistry(t)

	plugins := reg.Plugins()
	require.Len(t, plugins, 1)
	assert.Equal(t, "coordinate_helpers", plugins[0].Name)
	assert.Equal(t, "0.1.0", plugins[0].Version)
	assert.Len(t, plugins[0].Helpers, 7)
	assert.Equal(t, []string{Category}, reg.Categories())

	_, ok := reg.ResolveFunc("GalactocentricToGalactic.backwards_3")
	assert.True(t, ok)

	out, err := reg.Apply("ICRS_to_Galactic", plugin.Forwards, [][]float64{{45}, {50}})
	require.NoError(t, err)
	assert.InDelta(t, 143.12137717, out[0][0], tolerance)
	assert.InDelta(t, -7.76422008, out[1][0], tolerance)
}
