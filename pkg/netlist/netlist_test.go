package netlist

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rfcircuit/pkg/analysis"
	"rfcircuit/pkg/circuit"
)

const deckYAML = `
title: matched line
frequency:
  start: 1.0e9
  stop: 2.0e9
  points: 3
elements:
  - name: l1
    type: line
    params:
      z0: 50
      delay: 100.0e-12
ports:
  - name: p1
    params:
      z0: 50
  - name: p2
    params:
      z0: 50
connections:
  - [p1.0, l1.0]
  - [l1.1, p2.0]
`

func TestParse(t *testing.T) {
	deck, err := Parse([]byte(deckYAML))
	require.NoError(t, err)

	assert.Equal(t, "matched line", deck.Title)
	assert.Equal(t, 3, deck.Frequency.Points)
	require.Len(t, deck.Elements, 1)
	assert.Equal(t, "line", deck.Elements[0].Type)
	assert.Equal(t, 100e-12, deck.Elements[0].Params["delay"])
	require.Len(t, deck.Ports, 2)
	require.Len(t, deck.Links, 2)
	assert.Equal(t, []string{"p1.0", "l1.0"}, deck.Links[0])
}

func TestParseBadYAML(t *testing.T) {
	_, err := Parse([]byte("frequency: [not a map"))
	var cfg *circuit.ConfigurationError
	assert.ErrorAs(t, err, &cfg)
}

func TestFrequencyPoints(t *testing.T) {
	d := &Deck{Frequency: SweepParam{Start: 1e9, Stop: 2e9, Points: 5}}
	freq, err := d.FrequencyPoints()
	require.NoError(t, err)
	assert.Equal(t, []float64{1e9, 1.25e9, 1.5e9, 1.75e9, 2e9}, freq)

	d.Frequency.Sweep = "DEC"
	d.Frequency.Stop = 1e11
	d.Frequency.Points = 3
	freq, err = d.FrequencyPoints()
	require.NoError(t, err)
	require.Len(t, freq, 3)
	assert.InDelta(t, 1e9, freq[0], 1)
	assert.InDelta(t, 1e10, freq[1], 1e3)
	assert.InDelta(t, 1e11, freq[2], 1e4)

	d.Frequency = SweepParam{Start: 5e9, Points: 1}
	freq, err = d.FrequencyPoints()
	require.NoError(t, err)
	assert.Equal(t, []float64{5e9}, freq)
}

func TestFrequencyPointsValidation(t *testing.T) {
	d := &Deck{Frequency: SweepParam{Start: 1e9, Stop: 2e9}}
	_, err := d.FrequencyPoints()
	assert.ErrorContains(t, err, "point count")

	d.Frequency = SweepParam{Start: 2e9, Stop: 1e9, Points: 3}
	_, err = d.FrequencyPoints()
	assert.ErrorContains(t, err, "stop must be above start")

	d.Frequency = SweepParam{Start: 1e9, Stop: 2e9, Points: 3, Sweep: "LOG"}
	_, err = d.FrequencyPoints()
	assert.ErrorContains(t, err, "unknown sweep type")
}

func TestBuildAndSolve(t *testing.T) {
	deck, err := Parse([]byte(deckYAML))
	require.NoError(t, err)

	ckt, err := deck.Build()
	require.NoError(t, err)
	assert.Equal(t, 3, ckt.NPoints())
	require.Len(t, ckt.PortRefs(), 2)
	assert.Equal(t, "p1", ckt.PortRefs()[0].Network.Name())

	v, err := analysis.New(ckt, nil).VoltagesExternal([]float64{1, 0}, []float64{0, 0})
	require.NoError(t, err)
	want := math.Sqrt(2 * 50 * 1)
	for k := range v {
		assert.InDelta(t, want, cmplx.Abs(v[k][0]), 1e-9, "point %d", k)
	}
}

func TestBuildElementTypes(t *testing.T) {
	freq := []float64{1e9}
	cases := []struct {
		el     Element
		nPorts int
	}{
		{Element{Name: "a", Type: "thru"}, 2},
		{Element{Name: "b", Type: "line", Params: map[string]float64{"delay": 1e-12}}, 2},
		{Element{Name: "c", Type: "linetheta", Params: map[string]float64{"theta": 1}}, 2},
		{Element{Name: "d", Type: "atten", Params: map[string]float64{"db": 3}}, 2},
		{Element{Name: "j", Type: "tee"}, 3},
		{Element{Name: "e", Type: "seriesz", Params: map[string]float64{"z": 10, "z_imag": 5}}, 2},
		{Element{Name: "f", Type: "shunty", Params: map[string]float64{"y": 0.01}}, 2},
		{Element{Name: "g", Type: "load", Params: map[string]float64{"gamma": 0.5}}, 1},
		{Element{Name: "h", Type: "short"}, 1},
		{Element{Name: "i", Type: "open"}, 1},
	}
	for _, c := range cases {
		n, err := buildElement(freq, c.el)
		require.NoError(t, err, c.el.Type)
		assert.Equal(t, c.el.Name, n.Name())
		assert.Equal(t, c.nPorts, n.NPorts(), c.el.Type)
		assert.Equal(t, complex128(50), n.Z0At(0, 0), "default reference for %s", c.el.Type)
	}

	_, err := buildElement(freq, Element{Name: "x", Type: "gyrator"})
	assert.ErrorContains(t, err, "unknown element type")
}

func TestBuildRejects(t *testing.T) {
	build := func(mutate func(*Deck)) error {
		deck, err := Parse([]byte(deckYAML))
		require.NoError(t, err)
		mutate(deck)
		_, err = deck.Build()
		return err
	}

	err := build(func(d *Deck) { d.Elements[0].Name = "" })
	assert.ErrorContains(t, err, "no name")

	err = build(func(d *Deck) { d.Ports[0].Name = "l1" })
	assert.ErrorContains(t, err, "duplicate element name")

	err = build(func(d *Deck) { d.Links[0] = []string{"p1.0", "nosuch.0"} })
	assert.ErrorContains(t, err, "unknown element")

	err = build(func(d *Deck) { d.Links[0] = []string{"p1.0", "l1"} })
	assert.ErrorContains(t, err, "name.port")

	err = build(func(d *Deck) { d.Links[0] = []string{"p1.0", "l1.x"} })
	assert.ErrorContains(t, err, "invalid port index")

	// Dangling port surfaces as a topology error from the circuit build.
	err = build(func(d *Deck) { d.Links = d.Links[:1] })
	var top *circuit.TopologyError
	assert.ErrorAs(t, err, &top)
}

func TestParamComplex(t *testing.T) {
	p := map[string]float64{"z": 30, "z_imag": -20}
	assert.Equal(t, complex(30, -20), paramComplex(p, "z", 50))
	assert.Equal(t, complex(50, 0), paramComplex(p, "q", 50))
}
