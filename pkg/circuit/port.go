package circuit

import (
	"fmt"

	"rfcircuit/pkg/network"
)

// PortRef names one (network, local port) pair.
type PortRef struct {
	Network *network.Network
	Port    int
}

func (r PortRef) String() string {
	return fmt.Sprintf("%s.%d", r.Network.Name(), r.Port)
}

// registry assigns a stable global index to every port. Networks are
// indexed in first-appearance order; a network's ports get contiguous
// indices ordered by local port number.
type registry struct {
	networks []*network.Network
	base     map[*network.Network]int
}

func newRegistry() *registry {
	return &registry{base: map[*network.Network]int{}}
}

func (reg *registry) add(n *network.Network) {
	if _, ok := reg.base[n]; ok {
		return
	}
	reg.base[n] = reg.dim()
	reg.networks = append(reg.networks, n)
}

func (reg *registry) dim() int {
	if len(reg.networks) == 0 {
		return 0
	}
	last := reg.networks[len(reg.networks)-1]
	return reg.base[last] + last.NPorts()
}

func (reg *registry) index(ref PortRef) (int, error) {
	base, ok := reg.base[ref.Network]
	if !ok {
		return 0, configErrorf("network %q is not part of this circuit", ref.Network.Name())
	}
	if ref.Port < 0 || ref.Port >= ref.Network.NPorts() {
		return 0, configErrorf("network %q has no port %d (%d ports)",
			ref.Network.Name(), ref.Port, ref.Network.NPorts())
	}
	return base + ref.Port, nil
}
