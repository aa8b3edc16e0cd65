package util

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FormatValueFactor formats a value with an engineering unit prefix.
// 1.5e9, "Hz" -> "1.5GHz". Used for frequency points in errors and logs.
func FormatValueFactor(value float64, unit string) string {
	if value == 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Sprintf("%g%s", value, unit)
	}

	prefixes := []struct {
		factor float64
		symbol string
	}{
		{1e12, "T"}, {1e9, "G"}, {1e6, "M"}, {1e3, "k"},
		{1, ""},
		{1e-3, "m"}, {1e-6, "u"}, {1e-9, "n"}, {1e-12, "p"},
	}

	abs := math.Abs(value)
	for _, p := range prefixes {
		if abs >= p.factor {
			return fmt.Sprintf("%g%s%s", value/p.factor, p.symbol, unit)
		}
	}
	last := prefixes[len(prefixes)-1]
	return fmt.Sprintf("%g%s%s", value/last.factor, last.symbol, unit)
}
