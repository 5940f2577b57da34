package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOccupancyPercent(t *testing.T) {
	assert.InDelta(t, 75.0, OccupancyPercent(30, 40), 0.001)
	assert.InDelta(t, 50.0, OccupancyPercent(15, 30), 0.001)

	// Over-capacity dipotong di 100.
	assert.Equal(t, 100.0, OccupancyPercent(40, 30))

	// Kapasitas/enrollment tidak valid = 0.
	assert.Equal(t, 0.0, OccupancyPercent(10, 0))
	assert.Equal(t, 0.0, OccupancyPercent(10, -5))
	assert.Equal(t, 0.0, OccupancyPercent(0, 30))
	assert.Equal(t, 0.0, OccupancyPercent(-1, 30))
}
