// Three external ports joined at a single parallel junction. Feeding 1W
// into port 1 shows the junction's power split and the active reflection
// seen by the source.
package main

import (
	"log/slog"
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
	freq := []float64{1e9}

	p1, _ := network.Port(freq, "p1", 50)
	p2, _ := network.Port(freq, "p2", 50)
	p3, _ := network.Port(freq, "p3", 50)

	ckt, err := circuit.New([]circuit.Connection{
		{{Network: p1, Port: 0}, {Network: p2, Port: 0}, {Network: p3, Port: 0}},
	})
	if err != nil {
		slog.Error("circuit build", "err", err)
		os.Exit(1)
	}

	s, err := ckt.SExternal(0)
	if err != nil {
		slog.Error("assembly", "err", err)
		os.Exit(1)
	}
	slog.Info("tee junction",
		"S11", s.At(0, 0), // (Zpar-Z0)/(Zpar+Z0) = (25-50)/75 = -1/3
		"S21", s.At(1, 0), // 2/3
		"S31", s.At(2, 0),
	)

	solver := analysis.New(ckt, &analysis.Options{Workers: 1})
	power := []float64{1, 0, 0}
	phase := []float64{0, 0, 0}

	v, err := solver.VoltagesExternal(power, phase)
	if err != nil {
		slog.Error("voltages", "err", err)
		os.Exit(1)
	}
	sa, err := solver.SActive(power, phase)
	if err != nil {
		slog.Error("active reflection", "err", err)
		os.Exit(1)
	}

	f := ckt.Frequency()[0]
	slog.Info("excite port 1",
		"freq", util.FormatValueFactor(f, "Hz"),
		"V1", cmplx.Abs(v[0][0]),
		"V2", cmplx.Abs(v[0][1]),
		"V3", cmplx.Abs(v[0][2]),
		"Sactive1", sa[0][0],
	)
}
