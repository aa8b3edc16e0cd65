package network

import (
	"fmt"
	"math"
	"math/cmplx"

	"rfcircuit/pkg/cmat"
	"rfcircuit/pkg/util"
)

// Convention selects the wave definition used when converting between
// scattering and impedance descriptions under complex reference impedance.
// The two conventions agree for real Z0 and yield different S11 for lossy
// (complex) Z0; both are legal and kept as separate operations.
type Convention int

const (
	// PowerWave is the Kurokawa power-wave definition: the conjugate of
	// Z0 appears in the numerator and waves are normalized by sqrt(Re Z0).
	PowerWave Convention = iota
	// TravelingWave is the pseudo-wave ("override") definition: no
	// conjugate, waves normalized by the complex sqrt(Z0).
	TravelingWave
)

func (c Convention) String() string {
	switch c {
	case PowerWave:
		return "power"
	case TravelingWave:
		return "traveling"
	}
	return fmt.Sprintf("convention(%d)", int(c))
}

// waveFactor is the diagonal normalization entry for one port.
func waveFactor(z0 complex128, conv Convention) complex128 {
	if conv == PowerWave {
		return complex(1/(2*math.Sqrt(real(z0))), 0)
	}
	return 1 / (2 * cmplx.Sqrt(z0))
}

// ZMatrix converts the scattering matrix at frequency point k into an
// impedance matrix under the given convention.
func (n *Network) ZMatrix(k int, conv Convention) (*cmat.Matrix, error) {
	z, err := zFromS(n.s[k], n.z0[k], conv)
	if err != nil {
		return nil, fmt.Errorf("network %q at %s: %v",
			n.name, util.FormatValueFactor(n.freq[k], "Hz"), err)
	}
	return z, nil
}

// RenormalizePower returns a copy of the network renormalized to the given
// per-port reference impedances using the power-wave convention.
func (n *Network) RenormalizePower(z0 []complex128) (*Network, error) {
	return n.renormalize(z0, PowerWave)
}

// RenormalizeTraveling returns a copy of the network renormalized to the
// given per-port reference impedances using the traveling-wave convention.
func (n *Network) RenormalizeTraveling(z0 []complex128) (*Network, error) {
	return n.renormalize(z0, TravelingWave)
}

func (n *Network) renormalize(z0 []complex128, conv Convention) (*Network, error) {
	if len(z0) != n.nPorts {
		return nil, fmt.Errorf("network %q: %d new impedances for %d ports", n.name, len(z0), n.nPorts)
	}
	for p, z := range z0 {
		if real(z) <= 0 {
			return nil, fmt.Errorf("network %q port %d: new reference impedance %v has non-positive real part", n.name, p, z)
		}
	}

	sNew := make([]*cmat.Matrix, len(n.freq))
	zNew := make([][]complex128, len(n.freq))
	for k := range n.freq {
		z, err := zFromS(n.s[k], n.z0[k], conv)
		if err != nil {
			return nil, fmt.Errorf("network %q at %s: %v",
				n.name, util.FormatValueFactor(n.freq[k], "Hz"), err)
		}
		s, err := sFromZ(z, z0, conv)
		if err != nil {
			return nil, fmt.Errorf("network %q at %s: %v",
				n.name, util.FormatValueFactor(n.freq[k], "Hz"), err)
		}
		sNew[k] = s
		zNew[k] = make([]complex128, n.nPorts)
		copy(zNew[k], z0)
	}

	out, err := New(n.name+"-renorm-"+conv.String(), n.freq, sNew, zNew)
	if err != nil {
		return nil, err
	}
	out.port = n.port
	return out, nil
}

// zFromS solves Z = (I - S~)^-1 (G* + S~ G) for the power-wave convention
// and Z = (I - S~)^-1 (I + S~) G for the traveling-wave convention, where
// S~ = F^-1 S F with the convention's diagonal normalization F.
func zFromS(s *cmat.Matrix, z0 []complex128, conv Convention) (*cmat.Matrix, error) {
	nn := s.Rows
	st, _ := cmat.New(nn, nn)
	for i := 0; i < nn; i++ {
		fi := waveFactor(z0[i], conv)
		for j := 0; j < nn; j++ {
			fj := waveFactor(z0[j], conv)
			st.Set(i, j, s.At(i, j)*fj/fi)
		}
	}

	left, _ := cmat.Sub(cmat.Eye(nn), st)
	leftInv, err := left.Inverse()
	if err != nil {
		return nil, fmt.Errorf("(I - S) is singular: %v", err)
	}

	right, _ := cmat.New(nn, nn)
	if conv == PowerWave {
		// G* + S~ G
		for i := 0; i < nn; i++ {
			for j := 0; j < nn; j++ {
				right.Set(i, j, st.At(i, j)*z0[j])
			}
			right.Add(i, i, cmplx.Conj(z0[i]))
		}
	} else {
		// (I + S~) G
		for i := 0; i < nn; i++ {
			for j := 0; j < nn; j++ {
				v := st.At(i, j)
				if i == j {
					v += 1
				}
				right.Set(i, j, v*z0[j])
			}
		}
	}

	return cmat.Mul(leftInv, right)
}

// sFromZ converts an impedance matrix back to scattering parameters
// referenced to z0: S = F (Z - G^x)(Z + G)^-1 F^-1, with G^x = conj(G) for
// the power-wave convention and G^x = G for the traveling-wave convention.
func sFromZ(z *cmat.Matrix, z0 []complex128, conv Convention) (*cmat.Matrix, error) {
	nn := z.Rows

	num := z.Clone()
	den := z.Clone()
	for i := 0; i < nn; i++ {
		if conv == PowerWave {
			num.Add(i, i, -cmplx.Conj(z0[i]))
		} else {
			num.Add(i, i, -z0[i])
		}
		den.Add(i, i, z0[i])
	}

	denInv, err := den.Inverse()
	if err != nil {
		return nil, fmt.Errorf("(Z + G) is singular: %v", err)
	}
	raw, err := cmat.Mul(num, denInv)
	if err != nil {
		return nil, err
	}

	out, _ := cmat.New(nn, nn)
	for i := 0; i < nn; i++ {
		fi := waveFactor(z0[i], conv)
		for j := 0; j < nn; j++ {
			fj := waveFactor(z0[j], conv)
			out.Set(i, j, raw.At(i, j)*fi/fj)
		}
	}
	return out, nil
}
