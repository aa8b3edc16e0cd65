package circuit

import (
	"fmt"

	"rfcircuit/pkg/util"
)

// ConfigurationError reports malformed construction inputs: unregistered
// network references, frequency-axis mismatch, bad excitation values.
type ConfigurationError struct {
	Detail string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Detail
}

func configErrorf(format string, args ...any) error {
	return &ConfigurationError{Detail: fmt.Sprintf(format, args...)}
}

// TopologyError reports a structural violation of the connection graph.
// The offending port is identified by its network name and local index.
type TopologyError struct {
	Network string
	Port    int
	Detail  string
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("topology error: network %q port %d: %s", e.Network, e.Port, e.Detail)
}

// SingularityError reports a non-invertible junction or elimination step.
// Freq identifies the failing frequency point in Hz.
type SingularityError struct {
	Freq   float64
	Detail string
}

func (e *SingularityError) Error() string {
	return fmt.Sprintf("singular system at %s: %s",
		util.FormatValueFactor(e.Freq, "Hz"), e.Detail)
}

// DimensionError reports an excitation vector whose length does not match
// the number of external ports.
type DimensionError struct {
	What string
	Got  int
	Want int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("dimension mismatch: %s has %d entries, want %d", e.What, e.Got, e.Want)
}
