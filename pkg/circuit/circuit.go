// Package circuit composes interconnected N-port networks into one global
// scattering description per frequency point. The composition is built
// once as an immutable linear operator; no graph is walked at solve time.
package circuit

import (
	"math/cmplx"
	"sync"

	"rfcircuit/pkg/cmat"
	"rfcircuit/pkg/network"
)

type Circuit struct {
	freq        []float64
	reg         *registry
	connections []Connection
	connIdx     [][]int // per connection, member global indices

	portRefs []PortRef // external ports, declaration order
	portIdx  []int     // their global indices

	mu     sync.Mutex
	sCache []*cmat.Matrix
	eCache []error
	done   []bool
}

// New builds a circuit from a list of connections. Every network referenced
// by the connections becomes part of the circuit; external terminals are the
// placeholder networks built by network.Port. The whole connection graph is
// validated here, never at solve time.
func New(connections []Connection) (*Circuit, error) {
	if len(connections) == 0 {
		return nil, configErrorf("circuit needs at least one connection")
	}

	reg := newRegistry()
	for _, conn := range connections {
		for _, ref := range conn {
			if ref.Network == nil {
				return nil, configErrorf("connection %s references a nil network", conn)
			}
			reg.add(ref.Network)
		}
	}

	// One shared frequency axis across all member networks.
	first := reg.networks[0]
	for _, n := range reg.networks[1:] {
		if !first.FrequencyEqual(n) {
			return nil, configErrorf("network %q frequency axis differs from network %q",
				n.Name(), first.Name())
		}
	}

	if err := validateConnections(reg, connections); err != nil {
		return nil, err
	}

	c := &Circuit{
		freq:        append([]float64(nil), first.Frequency()...),
		reg:         reg,
		connections: append([]Connection(nil), connections...),
	}

	c.connIdx = make([][]int, len(connections))
	for i, conn := range connections {
		idx := make([]int, len(conn))
		for j, ref := range conn {
			idx[j], _ = reg.index(ref) // validated above
		}
		c.connIdx[i] = idx
	}

	for _, n := range reg.networks {
		if n.IsPort() {
			c.portRefs = append(c.portRefs, PortRef{Network: n, Port: 0})
			c.portIdx = append(c.portIdx, reg.base[n])
		}
	}

	nf := len(c.freq)
	c.sCache = make([]*cmat.Matrix, nf)
	c.eCache = make([]error, nf)
	c.done = make([]bool, nf)

	return c, nil
}

// Dim is the total number of ports across all member networks.
func (c *Circuit) Dim() int { return c.reg.dim() }

// NPoints is the number of frequency points on the shared axis.
func (c *Circuit) NPoints() int { return len(c.freq) }

// Frequency returns a copy of the shared frequency axis in Hz.
func (c *Circuit) Frequency() []float64 {
	return append([]float64(nil), c.freq...)
}

// PortIndexes returns the global indices of the external ports in
// declaration order.
func (c *Circuit) PortIndexes() []int {
	return append([]int(nil), c.portIdx...)
}

// PortRefs returns the external ports in declaration order.
func (c *Circuit) PortRefs() []PortRef {
	return append([]PortRef(nil), c.portRefs...)
}

// PortIndex maps a (network, local port) pair to its global index.
func (c *Circuit) PortIndex(ref PortRef) (int, error) {
	return c.reg.index(ref)
}

// Ports returns every (network, local port) pair in canonical global
// ordering: networks in first-appearance order, ports by local index.
func (c *Circuit) Ports() []PortRef {
	out := make([]PortRef, 0, c.Dim())
	for _, n := range c.reg.networks {
		for p := 0; p < n.NPorts(); p++ {
			out = append(out, PortRef{Network: n, Port: p})
		}
	}
	return out
}

// Connections returns the connection list.
func (c *Circuit) Connections() []Connection {
	return append([]Connection(nil), c.connections...)
}

// Z0Vector returns the reference impedance of every port at frequency
// point k, in canonical global ordering.
func (c *Circuit) Z0Vector(k int) []complex128 {
	out := make([]complex128, 0, c.Dim())
	for _, n := range c.reg.networks {
		out = append(out, n.Z0(k)...)
	}
	return out
}

// PortZ0 returns the reference impedances of the external ports at
// frequency point k, in declaration order.
func (c *Circuit) PortZ0(k int) []complex128 {
	out := make([]complex128, len(c.portIdx))
	z0 := c.Z0Vector(k)
	for i, idx := range c.portIdx {
		out[i] = z0[idx]
	}
	return out
}

// ComponentS returns the block-diagonal matrix of all member networks'
// scattering matrices at frequency point k. Treat as read-only.
func (c *Circuit) ComponentS(k int) *cmat.Matrix {
	m, _ := cmat.New(c.Dim(), c.Dim())
	for _, n := range c.reg.networks {
		m.SetBlock(c.reg.base[n], c.reg.base[n], n.SMatrix(k))
	}
	return m
}

// junctionS builds the global junction scattering matrix X at frequency
// point k. For a connection of ports with admittances y_i = 1/z0_i the
// entries are X_ij = 2*sqrt(y_i*y_j)/sum(y) - delta_ij, which carries the
// pairwise transmission coefficient T = 2*Zl/(Zl+Zs) and, for parallel
// junctions, the harmonic source-impedance rule 1/Zs_l = sum_{i!=l} 1/Z_i.
func (c *Circuit) junctionS(k int) (*cmat.Matrix, error) {
	dim := c.Dim()
	z0 := c.Z0Vector(k)

	x, _ := cmat.New(dim, dim)
	for ci, idx := range c.connIdx {
		var sumY complex128
		roots := make([]complex128, len(idx))
		for i, gi := range idx {
			y := 1 / z0[gi]
			sumY += y
			roots[i] = cmplx.Sqrt(y)
		}
		if sumY == 0 {
			return nil, &SingularityError{
				Freq:   c.freq[k],
				Detail: "connection " + c.connections[ci].String() + " has zero total admittance",
			}
		}
		for i, gi := range idx {
			for j, gj := range idx {
				v := 2 * roots[i] * roots[j] / sumY
				if gi == gj {
					v -= 1
				}
				x.Set(gi, gj, v)
			}
		}
	}
	return x, nil
}

// GlobalS returns the global scattering matrix at frequency point k,
// relating injected waves to the waves arriving at every port:
// S = X (I - C X)^-1. Results are cached per point; the returned matrix is
// shared and must be treated as read-only.
func (c *Circuit) GlobalS(k int) (*cmat.Matrix, error) {
	c.mu.Lock()
	if c.done[k] {
		s, err := c.sCache[k], c.eCache[k]
		c.mu.Unlock()
		return s, err
	}
	c.mu.Unlock()

	s, err := c.assemble(k)

	c.mu.Lock()
	if !c.done[k] {
		c.sCache[k], c.eCache[k] = s, err
		c.done[k] = true
	}
	s, err = c.sCache[k], c.eCache[k]
	c.mu.Unlock()
	return s, err
}

func (c *Circuit) assemble(k int) (*cmat.Matrix, error) {
	x, err := c.junctionS(k)
	if err != nil {
		return nil, err
	}

	cx, err := cmat.Mul(c.ComponentS(k), x)
	if err != nil {
		return nil, err
	}
	m, _ := cmat.Sub(cmat.Eye(c.Dim()), cx)
	mInv, err := m.Inverse()
	if err != nil {
		return nil, &SingularityError{
			Freq:   c.freq[k],
			Detail: "interconnection elimination failed: " + err.Error(),
		}
	}

	return cmat.Mul(x, mInv)
}

// SExternal returns the rows and columns of the global scattering matrix
// that correspond to the external ports, at frequency point k.
func (c *Circuit) SExternal(k int) (*cmat.Matrix, error) {
	s, err := c.GlobalS(k)
	if err != nil {
		return nil, err
	}
	ext, _ := cmat.New(len(c.portIdx), len(c.portIdx))
	for i, gi := range c.portIdx {
		for j, gj := range c.portIdx {
			ext.Set(i, j, s.At(gi, gj))
		}
	}
	return ext, nil
}

// ExternalNetwork reduces the circuit to an N-port network seen from its
// external ports, usable as a component of a larger circuit.
func (c *Circuit) ExternalNetwork(name string) (*network.Network, error) {
	nf := len(c.freq)
	s := make([]*cmat.Matrix, nf)
	z0 := make([][]complex128, nf)
	for k := 0; k < nf; k++ {
		ext, err := c.SExternal(k)
		if err != nil {
			return nil, err
		}
		s[k] = ext
		z0[k] = c.PortZ0(k)
	}
	return network.New(name, c.freq, s, z0)
}
