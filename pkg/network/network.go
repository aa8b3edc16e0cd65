// Package network holds the frequency-domain description of an N-port
// linear network: one scattering matrix and one reference-impedance vector
// per frequency point. Networks are immutable once constructed and may be
// shared read-only between circuits.
package network

import (
	"fmt"

	"github.com/google/uuid"

	"rfcircuit/pkg/cmat"
)

type Network struct {
	name   string
	port   bool // external terminal placeholder
	nPorts int

	freq []float64      // Hz, strictly increasing
	s    []*cmat.Matrix // nPorts x nPorts, one per frequency point
	z0   [][]complex128 // nPorts reference impedances per frequency point
}

// New builds a network from a frequency axis and per-point scattering
// matrices and reference impedances. All inputs are deep-copied. An empty
// name gets a generated unique one.
func New(name string, freq []float64, s []*cmat.Matrix, z0 [][]complex128) (*Network, error) {
	if len(freq) == 0 {
		return nil, fmt.Errorf("network %q: empty frequency axis", name)
	}
	for i := 1; i < len(freq); i++ {
		if freq[i] <= freq[i-1] {
			return nil, fmt.Errorf("network %q: frequency axis not strictly increasing at point %d", name, i)
		}
	}
	if len(s) != len(freq) {
		return nil, fmt.Errorf("network %q: %d scattering matrices for %d frequency points", name, len(s), len(freq))
	}
	if len(z0) != len(freq) {
		return nil, fmt.Errorf("network %q: %d impedance vectors for %d frequency points", name, len(z0), len(freq))
	}

	nPorts := s[0].Rows
	for k, mat := range s {
		if !mat.IsSquare() || mat.Rows != nPorts {
			return nil, fmt.Errorf("network %q: scattering matrix at point %d is %dx%d, want %dx%d",
				name, k, mat.Rows, mat.Cols, nPorts, nPorts)
		}
		if len(z0[k]) != nPorts {
			return nil, fmt.Errorf("network %q: impedance vector at point %d has %d entries, want %d",
				name, k, len(z0[k]), nPorts)
		}
		for p, z := range z0[k] {
			if real(z) <= 0 {
				return nil, fmt.Errorf("network %q port %d: reference impedance %v has non-positive real part", name, p, z)
			}
		}
	}

	if name == "" {
		name = "nw-" + uuid.NewString()[:8]
	}

	n := &Network{
		name:   name,
		nPorts: nPorts,
		freq:   make([]float64, len(freq)),
		s:      make([]*cmat.Matrix, len(s)),
		z0:     make([][]complex128, len(z0)),
	}
	copy(n.freq, freq)
	for k := range s {
		n.s[k] = s[k].Clone()
		n.z0[k] = make([]complex128, nPorts)
		copy(n.z0[k], z0[k])
	}
	return n, nil
}

// Port builds a 1-port matched placeholder (S = 0) marking an external
// terminal of a circuit.
func Port(freq []float64, name string, z0 complex128) (*Network, error) {
	s := make([]*cmat.Matrix, len(freq))
	zs := make([][]complex128, len(freq))
	for k := range freq {
		s[k], _ = cmat.New(1, 1)
		zs[k] = []complex128{z0}
	}
	if name == "" {
		name = "port-" + uuid.NewString()[:8]
	}
	n, err := New(name, freq, s, zs)
	if err != nil {
		return nil, err
	}
	n.port = true
	return n, nil
}

func (n *Network) Name() string { return n.name }

func (n *Network) NPorts() int { return n.nPorts }

func (n *Network) NPoints() int { return len(n.freq) }

// IsPort reports whether the network is an external terminal placeholder.
func (n *Network) IsPort() bool { return n.port }

// Frequency returns the frequency axis. Treat as read-only.
func (n *Network) Frequency() []float64 { return n.freq }

// SMatrix returns the scattering matrix at frequency point k.
// Treat as read-only.
func (n *Network) SMatrix(k int) *cmat.Matrix { return n.s[k] }

// SAt returns S[i][j] at frequency point k.
func (n *Network) SAt(k, i, j int) complex128 { return n.s[k].At(i, j) }

// Z0 returns the reference impedances at frequency point k.
// Treat as read-only.
func (n *Network) Z0(k int) []complex128 { return n.z0[k] }

// Z0At returns the reference impedance of one port at frequency point k.
func (n *Network) Z0At(k, port int) complex128 { return n.z0[k][port] }

// FrequencyEqual reports whether both networks share an identical
// frequency axis (same points, same ordering).
func (n *Network) FrequencyEqual(other *Network) bool {
	if len(n.freq) != len(other.freq) {
		return false
	}
	for i := range n.freq {
		if n.freq[i] != other.freq[i] {
			return false
		}
	}
	return true
}
