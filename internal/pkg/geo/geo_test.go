package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_Identity(t *testing.T) {
	t.Parallel()

	points := [][2]float64{
		{0, 0},
		{51.5074, -0.1278},
		{-33.8688, 151.2093},
		{89.9, 179.9},
	}

	for _, p := range points {
		assert.Equal(t, 0.0, Distance(p[0], p[1], p[0], p[1]))
	}
}

func TestDistance_Symmetry(t *testing.T) {
	t.Parallel()

	pairs := [][4]float64{
		{51.5074, -0.1278, 48.8566, 2.3522},
		{1.3521, 103.8198, 1.3525, 103.8200},
		{-33.8688, 151.2093, 35.6762, 139.6503},
	}

	for _, p := range pairs {
		ab := Distance(p[0], p[1], p[2], p[3])
		ba := Distance(p[2], p[3], p[0], p[1])
		assert.InDelta(t, ab, ba, 1e-9)
	}
}

func TestDistance_KnownValues(t *testing.T) {
	t.Parallel()

	// One degree of latitude is roughly 111.2km.
	d := Distance(0, 0, 1, 0)
	assert.InDelta(t, 111195, d, 100)

	// ~50m north of a point near London.
	d = Distance(51.5074, -0.1278, 51.50785, -0.1278)
	assert.InDelta(t, 50, d, 1)
}

func TestEvaluate_Boundary(t *testing.T) {
	t.Parallel()

	center := [2]float64{51.5074, -0.1278}
	probe := [2]float64{51.50785, -0.1278}
	d := Distance(probe[0], probe[1], center[0], center[1])

	// Exactly at the boundary counts as inside.
	v := Evaluate(probe[0], probe[1], center[0], center[1], d)
	assert.True(t, v.Within)
	assert.Equal(t, d, v.Distance)

	v = Evaluate(probe[0], probe[1], center[0], center[1], d-0.001)
	assert.False(t, v.Within)

	v = Evaluate(probe[0], probe[1], center[0], center[1], d+0.001)
	assert.True(t, v.Within)
}

func TestEvaluate_WithinRadius(t *testing.T) {
	t.Parallel()

	// ~50m away with a 100m radius.
	v := Evaluate(51.50785, -0.1278, 51.5074, -0.1278, 100)
	assert.True(t, v.Within)
	assert.InDelta(t, 50, v.Distance, 1)

	// ~150m away with a 100m radius.
	v = Evaluate(51.50875, -0.1278, 51.5074, -0.1278, 100)
	assert.False(t, v.Within)
	assert.InDelta(t, 150, v.Distance, 2)
}
