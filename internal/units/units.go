// Package units holds the small unit table shared by the tokenizer and the
// simplifier. It knows which units exist, which dimension each belongs to and
// the factor that converts it to the base unit of that dimension.
package units

import (
	"math"

	"github.com/gnoswap-labs/formula/internal/trie"
)

// Dimension groups units that convert into each other.
type Dimension int

const (
	None Dimension = iota
	Angle
	Time
	Mass
	Length
)

func (d Dimension) String() string {
	switch d {
	case Angle:
		return "angle"
	case Time:
		return "time"
	case Mass:
		return "mass"
	case Length:
		return "length"
	default:
		return "none"
	}
}

// Unit describes one entry of the table.
type Unit struct {
	Name      string
	Dimension Dimension
	Factor    float64 // multiply by Factor to reach the base unit
}

// Degree is the unit attached by the ° glyph.
const Degree = "deg"

var table = []Unit{
	{Name: "deg", Dimension: Angle, Factor: math.Pi / 180},
	{Name: "rad", Dimension: Angle, Factor: 1},
	{Name: "gon", Dimension: Angle, Factor: math.Pi / 200},

	{Name: "ms", Dimension: Time, Factor: 0.001},
	{Name: "s", Dimension: Time, Factor: 1},
	{Name: "min", Dimension: Time, Factor: 60},
	{Name: "h", Dimension: Time, Factor: 3600},

	{Name: "mg", Dimension: Mass, Factor: 1e-6},
	{Name: "g", Dimension: Mass, Factor: 1e-3},
	{Name: "kg", Dimension: Mass, Factor: 1},
	{Name: "t", Dimension: Mass, Factor: 1000},

	{Name: "mm", Dimension: Length, Factor: 1e-3},
	{Name: "cm", Dimension: Length, Factor: 1e-2},
	{Name: "m", Dimension: Length, Factor: 1},
	{Name: "km", Dimension: Length, Factor: 1000},
}

var index = func() *trie.Trie[Unit] {
	t := trie.New[Unit]()
	for _, u := range table {
		t.Insert(u.Name, u)
	}
	return t
}()

// Lookup returns the unit called name.
func Lookup(name string) (Unit, bool) {
	return index.Lookup(name)
}

// Match returns the longest unit name starting at input[start].
func Match(input []rune, start int) (Unit, int, bool) {
	return index.LongestPrefix(input, start)
}

// Names lists every unit name.
func Names() []string {
	return index.Keys()
}

// Convertible reports whether values in a and b can be combined. Two unitless
// values are convertible; a unitless and a unit-tagged value are not.
func Convertible(a, b string) bool {
	if a == b {
		return true
	}
	ua, okA := Lookup(a)
	ub, okB := Lookup(b)
	return okA && okB && ua.Dimension == ub.Dimension
}

// Convert expresses v, given in unit from, in unit to. ok is false when the
// units are not convertible.
func Convert(v float64, from, to string) (float64, bool) {
	if from == to {
		return v, true
	}
	uf, okF := Lookup(from)
	ut, okT := Lookup(to)
	if !okF || !okT || uf.Dimension != ut.Dimension {
		return 0, false
	}
	return v * uf.Factor / ut.Factor, true
}
