package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm(t *testing.T) {
	// Federation Square to Flinders Street Station is a couple hundred
	// meters.
	d := HaversineKm(-37.8183, 144.9671, -37.8183, 144.9648)
	assert.InDelta(t, 0.2, d, 0.05)

	// Melbourne to Sydney, roughly 714 km great-circle.
	d = HaversineKm(-37.8136, 144.9631, -33.8688, 151.2093)
	assert.InDelta(t, 714, d, 10)
}

func TestHaversineZeroDistance(t *testing.T) {
	assert.Zero(t, HaversineKm(-37.8, 144.9, -37.8, 144.9))
}

func TestHaversineSymmetric(t *testing.T) {
	a := HaversineKm(-37.8, 144.9, -33.9, 151.2)
	b := HaversineKm(-33.9, 151.2, -37.8, 144.9)
	assert.InDelta(t, a, b, 1e-9)
}
