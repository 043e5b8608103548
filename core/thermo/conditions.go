// core/thermo/conditions.go
package thermo

import (
	"fmt"
	"strconv"
	"strings"
)

// Concentration units in mol/L.
const (
	Molar      = 1.0
	MilliMolar = 1e-3
	MicroMolar = 1e-6
	NanoMolar  = 1e-9
)

// ParseConc parses "50mM", "250nM", "3uM", "0.2µM" → mol/L. A bare number
// is read in defaultUnit.
func ParseConc(s string, defaultUnit float64) (float64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	i := 0
	for i < len(s) && (s[i] == '.' || s[i] == '-' || s[i] == '+' || s[i] == 'e' || (s[i] >= '0' && s[i] <= '9')) {
		// an 'e' is only an exponent when a digit follows
		if s[i] == 'e' && (i+1 >= len(s) || (s[i+1] != '-' && s[i+1] != '+' && (s[i+1] < '0' || s[i+1] > '9'))) {
			break
		}
		i++
	}
	val, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid conc %q: %w", s, err)
	}
	if val < 0 {
		return 0, fmt.Errorf("invalid conc %q: negative", s)
	}
	switch unit := strings.TrimSpace(s[i:]); unit {
	case "":
		return val * defaultUnit, nil
	case "m":
		return val, nil
	case "mm":
		return val * MilliMolar, nil
	case "um", "μm", "µm":
		return val * MicroMolar, nil
	case "nm":
		return val * NanoMolar, nil
	default:
		return 0, fmt.Errorf("unknown unit %q in %q", unit, s)
	}
}

// DeltaGAt evaluates ΔG (kcal/mol) at an arbitrary temperature.
func DeltaGAt(dHkcal, dScal float64, tempC float64) float64 {
	tK := tempC + kelvin
	return dHkcal - (tK * dScal / 1000.0)
}
