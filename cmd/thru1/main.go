// Matched transmission line between two external ports. Feeds 1W into
// port 1 and checks the closed-form input voltage and current.
package main

import (
	"log/slog"
	"math"
	"math/cmplx"
	"os"

	"github.com/lmittmann/tint"

	"rfcircuit/pkg/analysis"
	"rfcircuit/pkg/circuit"
	"rfcircuit/pkg/network"
	"rfcircuit/pkg/util"
)

func init() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: "15:04:05",
		}),
	))
}

func main() {
	freq := []float64{1e9, 1.5e9, 2e9}
	const z0 = 50.0
	const power = 1.0

	line, err := network.Line(freq, "line1", z0, 250e-12)
	if err != nil {
		slog.Error("line element", "err", err)
		os.Exit(1)
	}
	p1, _ := network.Port(freq, "p1", z0)
	p2, _ := network.Port(freq, "p2", z0)

	ckt, err := circuit.New([]circuit.Connection{
		{{Network: p1, Port: 0}, {Network: line, Port: 0}},
		{{Network: line, Port: 1}, {Network: p2, Port: 0}},
	})
	if err != nil {
		slog.Error("circuit build", "err", err)
		os.Exit(1)
	}

	solver := analysis.New(ckt, nil)
	v, err := solver.VoltagesExternal([]float64{power, 0}, []float64{0, 0})
	if err != nil {
		slog.Error("voltages", "err", err)
		os.Exit(1)
	}
	i, err := solver.CurrentsExternal([]float64{power, 0}, []float64{0, 0})
	if err != nil {
		slog.Error("currents", "err", err)
		os.Exit(1)
	}

	wantV := math.Sqrt(2 * z0 * power)
	wantI := math.Sqrt(2 * power / z0)
	for k, f := range ckt.Frequency() {
		slog.Info("input port",
			"freq", util.FormatValueFactor(f, "Hz"),
			"V", cmplx.Abs(v[k][0]), "wantV", wantV,
			"I", cmplx.Abs(i[k][0]), "wantI", wantI,
		)
		slog.Info("output port",
			"freq", util.FormatValueFactor(f, "Hz"),
			"V", cmplx.Abs(v[k][1]),
			"phase_deg", cmplx.Phase(v[k][1])*180/math.Pi,
		)
	}
}
