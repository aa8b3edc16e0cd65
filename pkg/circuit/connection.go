package circuit

import (
	"strings"
)

// Connection is an unordered set of two or more ports electrically joined
// at one node. Two ports form a series junction; more form a parallel one.
type Connection []PortRef

func (c Connection) String() string {
	parts := make([]string, len(c))
	for i, ref := range c {
		parts[i] = ref.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// validate checks the structural invariants of the connection list against
// the registry: every registered port is used exactly once.
func validateConnections(reg *registry, connections []Connection) error {
	used := map[int]Connection{}

	for _, conn := range connections {
		if len(conn) < 2 {
			ref := PortRef{}
			if len(conn) == 1 {
				ref = conn[0]
			}
			return &TopologyError{
				Network: refName(ref), Port: ref.Port,
				Detail: "connection needs at least 2 ports, got " + conn.String(),
			}
		}
		for _, ref := range conn {
			idx, err := reg.index(ref)
			if err != nil {
				return err
			}
			if prev, ok := used[idx]; ok {
				return &TopologyError{
					Network: ref.Network.Name(), Port: ref.Port,
					Detail: "port used in more than one connection, already in " + prev.String(),
				}
			}
			used[idx] = conn
		}
	}

	// No dangling ports: every port of every network must be connected.
	for _, n := range reg.networks {
		base := reg.base[n]
		for p := 0; p < n.NPorts(); p++ {
			if _, ok := used[base+p]; !ok {
				return &TopologyError{
					Network: n.Name(), Port: p,
					Detail: "port is not part of any connection",
				}
			}
		}
	}

	return nil
}

func refName(ref PortRef) string {
	if ref.Network == nil {
		return "<nil>"
	}
	return ref.Network.Name()
}
