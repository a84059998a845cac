package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		v        float64
		from, to string
		want     float64
		ok       bool
	}{
		{"same unit", 3, "kg", "kg", 3, true},
		{"unitless", 3, "", "", 3, true},
		{"grams to kilograms", 500, "g", "kg", 0.5, true},
		{"hours to minutes", 2, "h", "min", 120, true},
		{"degrees to radians", 180, "deg", "rad", math.Pi, true},
		{"different dimension", 1, "kg", "m", 0, false},
		{"unknown unit", 1, "kg", "lb", 0, false},
		{"unitless to unit", 1, "", "kg", 0, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Convert(tt.v, tt.from, tt.to)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestConvertible(t *testing.T) {
	t.Parallel()

	assert.True(t, Convertible("", ""))
	assert.True(t, Convertible("cm", "km"))
	assert.False(t, Convertible("", "m"))
	assert.False(t, Convertible("s", "m"))
}

func TestMatchIsGreedy(t *testing.T) {
	t.Parallel()

	u, n, ok := Match([]rune("2_min"), 2)
	require.True(t, ok)
	assert.Equal(t, "min", u.Name)
	assert.Equal(t, 3, n)

	u, n, ok = Match([]rune("mg"), 0)
	require.True(t, ok)
	assert.Equal(t, Mass, u.Dimension)
	assert.Equal(t, 2, n)

	_, _, ok = Match([]rune("xyz"), 0)
	assert.False(t, ok)
}

func TestNames(t *testing.T) {
	t.Parallel()

	names := Names()
	assert.Len(t, names, len(table))
	assert.Contains(t, names, Degree)
	assert.Equal(t, "angle", Angle.String())
	assert.Equal(t, "none", None.String())
}
