package config

import "sort"

// fallingRoot is the height at which the falling-object model reaches the
// target velocity, accurate to a few ulps.
const fallingRoot = 1.0579620273517196

func ptr(v float64) *float64 { return &v }

var Presets = map[string]*Problem{
	"falling": {
		Name:          "falling",
		Expr:          "sqrt(2*9.81*x) * tanh(3 * sqrt(2*9.81*x) / (2*5)) - 4",
		Bracket:       []float64{0, 10},
		X0:            2,
		TrueRoot:      ptr(fallingRoot),
		Tolerance:     1e-3,
		MaxIterations: 100,
		Methods:       []string{"bisection", "newton", "reference"},
	},
	"sqrt2": {
		Name:          "sqrt2",
		Expr:          "x*x - 2",
		Bracket:       []float64{0, 2},
		X0:            1,
		TrueRoot:      ptr(1.4142135623730951),
		Tolerance:     1e-10,
		MaxIterations: 100,
		Methods:       []string{"bisection", "newton", "reference"},
	},
	"cubic": {
		Name:          "cubic",
		Expr:          "x*x*x - x - 2",
		Bracket:       []float64{1, 2},
		X0:            1.5,
		TrueRoot:      ptr(1.5213797068045676),
		Tolerance:     1e-9,
		MaxIterations: 100,
		Methods:       []string{"bisection", "newton", "reference"},
	},
	"cosine": {
		Name:          "cosine",
		Expr:          "cos(x) - x",
		Bracket:       []float64{0, 1},
		X0:            0.5,
		Tolerance:     1e-9,
		MaxIterations: 100,
		Methods:       []string{"bisection", "newton", "reference"},
	},
	"flat": {
		Name:          "flat",
		Expr:          "x*x",
		Bracket:       []float64{-1, 2},
		X0:            0,
		TrueRoot:      ptr(0),
		Tolerance:     1e-9,
		MaxIterations: 100,
		Methods:       []string{"bisection", "newton", "reference"},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Problem {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
