// Package netlist parses a declarative YAML circuit description into a
// solvable circuit: a frequency sweep, ideal elements, external ports and
// the connections joining them.
package netlist

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"rfcircuit/internal/consts"
	"rfcircuit/pkg/circuit"
	"rfcircuit/pkg/network"
)

type Deck struct {
	Title     string      `yaml:"title"`
	Frequency SweepParam  `yaml:"frequency"`
	Elements  []Element   `yaml:"elements"`
	Ports     []PortDecl  `yaml:"ports"`
	Links     [][]string  `yaml:"connections"`
}

type SweepParam struct {
	Start  float64 `yaml:"start"`  // Hz
	Stop   float64 `yaml:"stop"`   // Hz
	Points int     `yaml:"points"`
	Sweep  string  `yaml:"sweep"` // LIN, DEC, OCT
}

type Element struct {
	Name   string             `yaml:"name"`
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params"`
}

type PortDecl struct {
	Name   string             `yaml:"name"`
	Params map[string]float64 `yaml:"params"`
}

func Parse(data []byte) (*Deck, error) {
	var deck Deck
	if err := yaml.Unmarshal(data, &deck); err != nil {
		return nil, &circuit.ConfigurationError{Detail: "netlist parse: " + err.Error()}
	}
	return &deck, nil
}

func ParseFile(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("netlist read: %v", err)
	}
	return Parse(data)
}

// FrequencyPoints expands the sweep parameters into the frequency axis.
func (d *Deck) FrequencyPoints() ([]float64, error) {
	p := d.Frequency
	if p.Points <= 0 {
		return nil, &circuit.ConfigurationError{Detail: "sweep needs a positive point count"}
	}
	if p.Points == 1 {
		return []float64{p.Start}, nil
	}
	if p.Stop <= p.Start {
		return nil, &circuit.ConfigurationError{Detail: "sweep stop must be above start"}
	}

	freq := make([]float64, p.Points)
	switch strings.ToUpper(p.Sweep) {
	case "", "LIN":
		step := (p.Stop - p.Start) / float64(p.Points-1)
		for i := range freq {
			freq[i] = p.Start + float64(i)*step
		}
	case "DEC":
		logStart := math.Log10(p.Start)
		step := (math.Log10(p.Stop) - logStart) / float64(p.Points-1)
		for i := range freq {
			freq[i] = math.Pow(10, logStart+float64(i)*step)
		}
	case "OCT":
		logStart := math.Log2(p.Start)
		step := (math.Log2(p.Stop) - logStart) / float64(p.Points-1)
		for i := range freq {
			freq[i] = math.Pow(2, logStart+float64(i)*step)
		}
	default:
		return nil, &circuit.ConfigurationError{Detail: "unknown sweep type " + p.Sweep}
	}
	return freq, nil
}

// Build turns the deck into a circuit.
func (d *Deck) Build() (*circuit.Circuit, error) {
	freq, err := d.FrequencyPoints()
	if err != nil {
		return nil, err
	}

	byName := map[string]*network.Network{}
	register := func(n *network.Network) error {
		if _, dup := byName[n.Name()]; dup {
			return &circuit.ConfigurationError{Detail: "duplicate element name " + n.Name()}
		}
		byName[n.Name()] = n
		return nil
	}

	for _, el := range d.Elements {
		if el.Name == "" {
			return nil, &circuit.ConfigurationError{Detail: "element of type " + el.Type + " has no name"}
		}
		n, err := buildElement(freq, el)
		if err != nil {
			return nil, err
		}
		if err := register(n); err != nil {
			return nil, err
		}
	}

	for _, p := range d.Ports {
		if p.Name == "" {
			return nil, &circuit.ConfigurationError{Detail: "port declaration has no name"}
		}
		n, err := network.Port(freq, p.Name, paramComplex(p.Params, "z0", consts.DefaultZ0))
		if err != nil {
			return nil, err
		}
		if err := register(n); err != nil {
			return nil, err
		}
	}

	connections := make([]circuit.Connection, len(d.Links))
	for i, link := range d.Links {
		conn := make(circuit.Connection, len(link))
		for j, s := range link {
			ref, err := parseRef(byName, s)
			if err != nil {
				return nil, err
			}
			conn[j] = ref
		}
		connections[i] = conn
	}

	return circuit.New(connections)
}

func buildElement(freq []float64, el Element) (*network.Network, error) {
	z0 := paramComplex(el.Params, "z0", consts.DefaultZ0)
	switch strings.ToLower(el.Type) {
	case "thru":
		return network.Thru(freq, el.Name, z0)
	case "line":
		return network.Line(freq, el.Name, z0, el.Params["delay"])
	case "linetheta":
		return network.LineTheta(freq, el.Name, z0, el.Params["theta"])
	case "atten":
		return network.Attenuator(freq, el.Name, z0, el.Params["db"])
	case "tee":
		return network.Tee(freq, el.Name, z0)
	case "seriesz":
		return network.SeriesImpedance(freq, el.Name, z0, paramComplex(el.Params, "z", 0))
	case "shunty":
		return network.ShuntAdmittance(freq, el.Name, z0, paramComplex(el.Params, "y", 0))
	case "load":
		return network.Load(freq, el.Name, z0, paramComplex(el.Params, "gamma", 0))
	case "short":
		return network.Short(freq, el.Name, z0)
	case "open":
		return network.Open(freq, el.Name, z0)
	}
	return nil, &circuit.ConfigurationError{Detail: "unknown element type " + el.Type + " for " + el.Name}
}

// paramComplex reads "<key>" and the optional "<key>_imag" from a param map.
func paramComplex(params map[string]float64, key string, def float64) complex128 {
	re, ok := params[key]
	if !ok {
		re = def
	}
	return complex(re, params[key+"_imag"])
}

// parseRef resolves a "name.port" connection endpoint.
func parseRef(byName map[string]*network.Network, s string) (circuit.PortRef, error) {
	dot := strings.LastIndex(s, ".")
	if dot < 0 {
		return circuit.PortRef{}, &circuit.ConfigurationError{
			Detail: "connection endpoint " + strconv.Quote(s) + " is not of the form name.port",
		}
	}
	name, portStr := s[:dot], s[dot+1:]
	n, ok := byName[name]
	if !ok {
		return circuit.PortRef{}, &circuit.ConfigurationError{Detail: "connection references unknown element " + strconv.Quote(name)}
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 0 {
		return circuit.PortRef{}, &circuit.ConfigurationError{
			Detail: "connection endpoint " + strconv.Quote(s) + " has an invalid port index",
		}
	}
	return circuit.PortRef{Network: n, Port: port}, nil
}
