package curve_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pmfaria/brfi/curve"
)

func TestForward(t *testing.T) {
	assert.InDelta(t, 0.0700952380952371, curve.Forward(10, 20, 0.05, 0.06), 1e-15)
}

func TestForwardInvalidInputs(t *testing.T) {
	// Reversed or equal terms have no forward period.
	assert.True(t, math.IsNaN(curve.Forward(20, 10, 0.06, 0.05)))
	assert.True(t, math.IsNaN(curve.Forward(10, 10, 0.05, 0.05)))

	assert.True(t, math.IsNaN(curve.Forward(10, 20, 0.05, math.NaN())))
	assert.True(t, math.IsNaN(curve.Forward(-1, 20, 0.05, 0.06)))
}

func TestForwardsSingleGroup(t *testing.T) {
	got := curve.Forwards([]curve.ForwardPoint{
		{BDays: 10, Rate: 0.05},
		{BDays: 20, Rate: 0.06},
		{BDays: 30, Rate: 0.07},
	})

	// The first vertex has no prior point: its forward is its spot rate.
	assert.Equal(t, 0.05, got[0])
	assert.InDelta(t, 0.0700952380952371, got[1], 1e-15)
	assert.InDelta(t, curve.Forward(20, 30, 0.06, 0.07), got[2], 1e-15)
}

func TestForwardsGrouped(t *testing.T) {
	got := curve.Forwards([]curve.ForwardPoint{
		{BDays: 10, Rate: 0.05, Group: "LTN"},
		{BDays: 20, Rate: 0.06, Group: "LTN"},
		{BDays: 30, Rate: 0.07, Group: "NTN-F"},
	})

	assert.Equal(t, 0.05, got[0])
	assert.InDelta(t, 0.0700952380952371, got[1], 1e-15)
	// Isolated in its own group: spot rate again.
	assert.Equal(t, 0.07, got[2])
}

func TestForwardsMissingInputs(t *testing.T) {
	got := curve.Forwards([]curve.ForwardPoint{
		{BDays: 230, Rate: 0.0943},
		{BDays: 415, Rate: 0.084099},
		{BDays: -1, Rate: 0.1},
		{BDays: 914, Rate: math.NaN()},
		{BDays: 730, Rate: 0.079052},
	})

	assert.Equal(t, 0.0943, got[0])
	assert.False(t, math.IsNaN(got[1]))
	assert.True(t, math.IsNaN(got[2]))
	assert.True(t, math.IsNaN(got[3]))
	// The valid vertex after the missing ones chains to 415, not 914.
	assert.InDelta(t, curve.Forward(415, 730, 0.084099, 0.079052), got[4], 1e-15)
}

func TestForwardsDuplicateKeepsLast(t *testing.T) {
	got := curve.Forwards([]curve.ForwardPoint{
		{BDays: 10, Rate: 0.04},
		{BDays: 10, Rate: 0.05},
		{BDays: 20, Rate: 0.06},
	})

	// Both rows of the duplicated vertex carry the surviving value.
	assert.Equal(t, 0.05, got[0])
	assert.Equal(t, 0.05, got[1])
	assert.InDelta(t, curve.Forward(10, 20, 0.05, 0.06), got[2], 1e-15)
}
