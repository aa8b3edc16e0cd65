// 75 ohm line between 50 ohm ports. Prints the composed reflection and
// transmission against the closed forms, then shows how the two complex-Z0
// renormalization conventions diverge on a lossy reference.
package main

import (
	"log/slog"
	"math/cmplx"
	"os"

	"github.com/lmittmann/tint"

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
	freq := []float64{1e9, 2e9}

	line, _ := network.Line(freq, "line75", 75, 100e-12)
	p1, _ := network.Port(freq, "p1", 50)
	p2, _ := network.Port(freq, "p2", 50)

	ckt, err := circuit.New([]circuit.Connection{
		{{Network: p1, Port: 0}, {Network: line, Port: 0}},
		{{Network: line, Port: 1}, {Network: p2, Port: 0}},
	})
	if err != nil {
		slog.Error("circuit build", "err", err)
		os.Exit(1)
	}

	for k, f := range ckt.Frequency() {
		s, err := ckt.SExternal(k)
		if err != nil {
			slog.Error("assembly", "err", err)
			os.Exit(1)
		}
		slog.Info("mismatch",
			"freq", util.FormatValueFactor(f, "Hz"),
			"S11", cmplx.Abs(s.At(0, 0)),
			"S21", cmplx.Abs(s.At(1, 0)),
		)
	}

	// Renormalization duality on a complex reference impedance.
	ext, err := ckt.ExternalNetwork("composed")
	if err != nil {
		slog.Error("external network", "err", err)
		os.Exit(1)
	}
	target := []complex128{complex(50, 10), complex(50, 10)}
	pw, err := ext.RenormalizePower(target)
	if err != nil {
		slog.Error("renormalize power", "err", err)
		os.Exit(1)
	}
	tw, err := ext.RenormalizeTraveling(target)
	if err != nil {
		slog.Error("renormalize traveling", "err", err)
		os.Exit(1)
	}
	for k, f := range ckt.Frequency() {
		slog.Info("complex-Z0 S11",
			"freq", util.FormatValueFactor(f, "Hz"),
			"power", pw.SAt(k, 0, 0),
			"traveling", tw.SAt(k, 0, 0),
		)
	}
}
