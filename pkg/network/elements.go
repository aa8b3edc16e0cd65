package network

import (
	"math"
	"math/cmplx"

	"rfcircuit/pkg/cmat"
)

// Ideal element constructors. These build S-matrices directly from closed
// forms; no physical media synthesis is involved.

// Thru builds an ideal zero-length 2-port connection.
func Thru(freq []float64, name string, z0 complex128) (*Network, error) {
	return twoPort(freq, name, z0, func(f float64) (s11, s21 complex128) {
		return 0, 1
	})
}

// Line builds a matched transmission line with the given group delay in
// seconds: S21 = exp(-j*2*pi*f*delay).
func Line(freq []float64, name string, z0 complex128, delay float64) (*Network, error) {
	return twoPort(freq, name, z0, func(f float64) (s11, s21 complex128) {
		return 0, cmplx.Exp(complex(0, -2*math.Pi*f*delay))
	})
}

// LineTheta builds a matched line with a fixed electrical length in
// radians, identical at every frequency point.
func LineTheta(freq []float64, name string, z0 complex128, theta float64) (*Network, error) {
	return twoPort(freq, name, z0, func(f float64) (s11, s21 complex128) {
		return 0, cmplx.Exp(complex(0, -theta))
	})
}

// Attenuator builds a matched attenuator with the given loss in dB.
func Attenuator(freq []float64, name string, z0 complex128, dB float64) (*Network, error) {
	mag := complex(math.Pow(10, -dB/20), 0)
	return twoPort(freq, name, z0, func(f float64) (s11, s21 complex128) {
		return 0, mag
	})
}

// SeriesImpedance builds a 2-port series element z between ports of
// impedance z0.
func SeriesImpedance(freq []float64, name string, z0, z complex128) (*Network, error) {
	return twoPort(freq, name, z0, func(f float64) (s11, s21 complex128) {
		d := z + 2*z0
		return z / d, 2 * z0 / d
	})
}

// ShuntAdmittance builds a 2-port shunt element y across a line of
// impedance z0.
func ShuntAdmittance(freq []float64, name string, z0, y complex128) (*Network, error) {
	return twoPort(freq, name, z0, func(f float64) (s11, s21 complex128) {
		d := y*z0 + 2
		return -y * z0 / d, 2 / d
	})
}

// Tee builds an ideal lossless 3-port parallel splitter: each arm sees the
// other two in parallel, giving S_ii = -1/3 and S_ij = 2/3.
func Tee(freq []float64, name string, z0 complex128) (*Network, error) {
	s := make([]*cmat.Matrix, len(freq))
	zs := make([][]complex128, len(freq))
	for k := range freq {
		m, _ := cmat.New(3, 3)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				if i == j {
					m.Set(i, j, complex(-1.0/3, 0))
				} else {
					m.Set(i, j, complex(2.0/3, 0))
				}
			}
		}
		s[k] = m
		zs[k] = []complex128{z0, z0, z0}
	}
	return New(name, freq, s, zs)
}

// Load builds a 1-port termination with reflection coefficient gamma.
func Load(freq []float64, name string, z0, gamma complex128) (*Network, error) {
	s := make([]*cmat.Matrix, len(freq))
	zs := make([][]complex128, len(freq))
	for k := range freq {
		s[k], _ = cmat.New(1, 1)
		s[k].Set(0, 0, gamma)
		zs[k] = []complex128{z0}
	}
	return New(name, freq, s, zs)
}

// Short builds a 1-port short circuit (gamma = -1).
func Short(freq []float64, name string, z0 complex128) (*Network, error) {
	return Load(freq, name, z0, -1)
}

// Open builds a 1-port open circuit (gamma = +1).
func Open(freq []float64, name string, z0 complex128) (*Network, error) {
	return Load(freq, name, z0, 1)
}

func twoPort(freq []float64, name string, z0 complex128, fn func(f float64) (s11, s21 complex128)) (*Network, error) {
	s := make([]*cmat.Matrix, len(freq))
	zs := make([][]complex128, len(freq))
	for k, f := range freq {
		s11, s21 := fn(f)
		m, _ := cmat.New(2, 2)
		m.Set(0, 0, s11)
		m.Set(1, 1, s11)
		m.Set(0, 1, s21)
		m.Set(1, 0, s21)
		s[k] = m
		zs[k] = []complex128{z0, z0}
	}
	return New(name, freq, s, zs)
}
