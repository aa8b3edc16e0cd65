// Package analysis computes traveling waves, voltages and currents for a
// composed circuit under a power/phase excitation of its external ports.
// Every frequency point is independent; the sweep is evaluated by a pool
// of workers.
package analysis

import (
	"errors"
	"math"
	"math/cmplx"
	"runtime"
	"sync"

	"rfcircuit/pkg/circuit"
	"rfcircuit/pkg/util"
)

type Options struct {
	Workers      int  // frequency-point workers, <= 0 uses GOMAXPROCS
	SkipSingular bool // fill failing points with NaN instead of aborting
}

// Solver evaluates excitations against an immutable circuit. A Solver
// holds no per-call state; concurrent calls are safe.
type Solver struct {
	ckt *circuit.Circuit
	opt Options
}

func New(ckt *circuit.Circuit, opt *Options) *Solver {
	defaultOpt := Options{}
	if opt == nil {
		opt = &defaultOpt
	}
	return &Solver{ckt: ckt, opt: *opt}
}

// aExternal converts per-port (power, phase) into incident power waves
// a_i = sqrt(2*P_i)*exp(j*phi_i). Powers are peak watts, phases radians.
func (s *Solver) aExternal(power, phase []float64) ([]complex128, error) {
	want := len(s.ckt.PortIndexes())
	if len(power) != want {
		return nil, &circuit.DimensionError{What: "power", Got: len(power), Want: want}
	}
	if len(phase) != want {
		return nil, &circuit.DimensionError{What: "phase", Got: len(phase), Want: want}
	}

	a := make([]complex128, want)
	for i, p := range power {
		if p < 0 {
			return nil, &circuit.ConfigurationError{
				Detail: "excitation power must be >= 0, got " +
					util.FormatValueFactor(p, "W") + " at external port " +
					s.ckt.PortRefs()[i].String(),
			}
		}
		a[i] = cmplx.Rect(math.Sqrt(2*p), phase[i])
	}
	return a, nil
}

// waves solves every frequency point for the full incident and outgoing
// wave vectors. a[k][i] is the wave arriving at port i, b[k][i] the wave
// leaving it, both in canonical global ordering.
func (s *Solver) waves(power, phase []float64) (a, b [][]complex128, err error) {
	aExt, err := s.aExternal(power, phase)
	if err != nil {
		return nil, nil, err
	}

	nf := s.ckt.NPoints()
	a = make([][]complex128, nf)
	b = make([][]complex128, nf)
	errs := make([]error, nf)

	workers := s.opt.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = util.Clamp(workers, 1, nf)

	points := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range points {
				a[k], b[k], errs[k] = s.solvePoint(k, aExt)
			}
		}()
	}
	for k := 0; k < nf; k++ {
		points <- k
	}
	close(points)
	wg.Wait()

	var failed []error
	for k, e := range errs {
		if e == nil {
			continue
		}
		if !s.opt.SkipSingular {
			return nil, nil, e
		}
		a[k] = nanVector(s.ckt.Dim())
		b[k] = nanVector(s.ckt.Dim())
		failed = append(failed, e)
	}
	if len(failed) > 0 {
		// Data for the healthy points is still returned.
		return a, b, errors.Join(failed...)
	}
	return a, b, nil
}

func (s *Solver) solvePoint(k int, aExt []complex128) (a, b []complex128, err error) {
	sg, err := s.ckt.GlobalS(k)
	if err != nil {
		return nil, nil, err
	}

	injected := make([]complex128, s.ckt.Dim())
	for i, idx := range s.ckt.PortIndexes() {
		injected[idx] = aExt[i]
	}

	a, err = sg.MulVec(injected)
	if err != nil {
		return nil, nil, err
	}
	b, err = s.ckt.ComponentS(k).MulVec(a)
	if err != nil {
		return nil, nil, err
	}
	for i := range b {
		b[i] += injected[i]
	}
	return a, b, nil
}

// Voltages returns the total complex voltage at every port for every
// frequency point (frequency major). Internal sign convention.
func (s *Solver) Voltages(power, phase []float64) ([][]complex128, error) {
	a, b, err := s.waves(power, phase)
	if a == nil {
		return nil, err
	}
	out := make([][]complex128, len(a))
	for k := range a {
		z0 := s.ckt.Z0Vector(k)
		row := make([]complex128, len(z0))
		for i := range z0 {
			row[i] = complex(math.Sqrt(real(z0[i])), 0) * (a[k][i] + b[k][i])
		}
		out[k] = row
	}
	return out, err
}

// Currents returns the total complex current at every port for every
// frequency point. Current is positive flowing into the network the port
// terminates.
func (s *Solver) Currents(power, phase []float64) ([][]complex128, error) {
	a, b, err := s.waves(power, phase)
	if a == nil {
		return nil, err
	}
	out := make([][]complex128, len(a))
	for k := range a {
		z0 := s.ckt.Z0Vector(k)
		row := make([]complex128, len(z0))
		for i := range z0 {
			row[i] = (a[k][i] - b[k][i]) / complex(math.Sqrt(real(z0[i])), 0)
		}
		out[k] = row
	}
	return out, err
}

// VoltagesExternal returns the voltages at the external ports only, in
// declaration order.
func (s *Solver) VoltagesExternal(power, phase []float64) ([][]complex128, error) {
	v, err := s.Voltages(power, phase)
	if v == nil {
		return nil, err
	}
	return s.pickExternal(v), err
}

// CurrentsExternal returns the currents at the external ports only.
// Current is positive flowing out of the circuit into the excitation
// source, the opposite of the internal convention.
func (s *Solver) CurrentsExternal(power, phase []float64) ([][]complex128, error) {
	cur, err := s.Currents(power, phase)
	if cur == nil {
		return nil, err
	}
	ext := s.pickExternal(cur)
	for k := range ext {
		for i := range ext[k] {
			ext[k][i] = -ext[k][i]
		}
	}
	return ext, err
}

// SActive returns the active reflection coefficient b_i/a_i seen at each
// external port under the given excitation. Ports excited with zero power
// get NaN.
func (s *Solver) SActive(power, phase []float64) ([][]complex128, error) {
	aExt, err := s.aExternal(power, phase)
	if err != nil {
		return nil, err
	}
	a, _, err := s.waves(power, phase)
	if a == nil {
		return nil, err
	}

	idx := s.ckt.PortIndexes()
	out := make([][]complex128, len(a))
	for k := range a {
		row := make([]complex128, len(idx))
		for i, gi := range idx {
			if aExt[i] == 0 {
				row[i] = complex(math.NaN(), math.NaN())
				continue
			}
			row[i] = a[k][gi] / aExt[i]
		}
		out[k] = row
	}
	return out, err
}

// ZActive returns the active input impedance z0*(1+s)/(1-s) at each
// external port under the given excitation.
func (s *Solver) ZActive(power, phase []float64) ([][]complex128, error) {
	sa, err := s.SActive(power, phase)
	if sa == nil {
		return nil, err
	}
	out := make([][]complex128, len(sa))
	for k := range sa {
		z0 := s.ckt.PortZ0(k)
		row := make([]complex128, len(z0))
		for i := range z0 {
			row[i] = z0[i] * (1 + sa[k][i]) / (1 - sa[k][i])
		}
		out[k] = row
	}
	return out, err
}

// VSWRActive returns the active voltage standing wave ratio at each
// external port under the given excitation.
func (s *Solver) VSWRActive(power, phase []float64) ([][]float64, error) {
	sa, err := s.SActive(power, phase)
	if sa == nil {
		return nil, err
	}
	out := make([][]float64, len(sa))
	for k := range sa {
		row := make([]float64, len(sa[k]))
		for i := range sa[k] {
			mag := cmplx.Abs(sa[k][i])
			row[i] = (1 + mag) / (1 - mag)
		}
		out[k] = row
	}
	return out, err
}

func (s *Solver) pickExternal(full [][]complex128) [][]complex128 {
	idx := s.ckt.PortIndexes()
	out := make([][]complex128, len(full))
	for k := range full {
		row := make([]complex128, len(idx))
		for i, gi := range idx {
			row[i] = full[k][gi]
		}
		out[k] = row
	}
	return out
}

func nanVector(n int) []complex128 {
	v := make([]complex128, n)
	nan := complex(math.NaN(), math.NaN())
	for i := range v {
		v[i] = nan
	}
	return v
}
