package consts

const (
	DefaultZ0 float64 = 50.0 // Default reference impedance (ohm)
)
