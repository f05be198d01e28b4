package interp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmfaria/brfi/interp"
	"github.com/pmfaria/brfi/utils"
)

func TestFlatForwardRate(t *testing.T) {
	ip, err := interp.New(interp.FlatForward, []int{30, 60, 90}, []float64{0.045, 0.05, 0.055})
	require.NoError(t, err)

	assert.InDelta(t, 0.04833068080970859, ip.Rate(45), 1e-15)

	// Known vertices return their rates exactly.
	assert.Equal(t, 0.045, ip.Rate(30))
	assert.Equal(t, 0.05, ip.Rate(60))
	assert.Equal(t, 0.055, ip.Rate(90))
}

func TestLinearRate(t *testing.T) {
	ip, err := interp.New(interp.Linear, []int{30, 60, 90}, []float64{0.045, 0.05, 0.055})
	require.NoError(t, err)

	assert.InDelta(t, 0.0475, ip.Rate(45), 1e-15)
}

func TestRateBoundaries(t *testing.T) {
	ip, err := interp.New(interp.FlatForward, []int{30, 60}, []float64{0.045, 0.05})
	require.NoError(t, err)

	// Below the first vertex the curve is flat, always.
	assert.Equal(t, 0.045, ip.Rate(10))
	assert.Equal(t, 0.045, ip.Rate(0))

	// Beyond the last vertex only with extrapolation enabled.
	assert.True(t, math.IsNaN(ip.Rate(100)))

	ipx, err := interp.New(interp.FlatForward, []int{30, 60}, []float64{0.045, 0.05}, interp.WithExtrapolation())
	require.NoError(t, err)
	assert.Equal(t, 0.05, ipx.Rate(100))

	// Negative day counts are missing inputs.
	assert.True(t, math.IsNaN(ip.Rate(-1)))
}

func TestNewDropsInvalidVertices(t *testing.T) {
	ip, err := interp.New(interp.FlatForward,
		[]int{30, -5, 60, 90},
		[]float64{0.045, 0.05, math.NaN(), 0.055})
	require.NoError(t, err)

	assert.Equal(t, 2, ip.Len())
	assert.Equal(t, 0.045, ip.Rate(30))
	assert.Equal(t, 0.055, ip.Rate(90))
}

func TestNewDuplicateKeepsLast(t *testing.T) {
	ip, err := interp.New(interp.FlatForward, []int{30, 30}, []float64{0.04, 0.05})
	require.NoError(t, err)

	assert.Equal(t, 1, ip.Len())
	assert.Equal(t, 0.05, ip.Rate(30))
}

func TestNewShapeMismatch(t *testing.T) {
	_, err := interp.New(interp.FlatForward, []int{30}, []float64{0.045, 0.05})
	assert.ErrorIs(t, err, utils.ErrShapeMismatch)
}

func TestRatesKeepsOrder(t *testing.T) {
	ip, err := interp.New(interp.FlatForward, []int{30, 60, 90}, []float64{0.045, 0.05, 0.055})
	require.NoError(t, err)

	got := ip.Rates([]int{90, -1, 30})
	assert.Equal(t, 0.055, got[0])
	assert.True(t, math.IsNaN(got[1]))
	assert.Equal(t, 0.045, got[2])
}

func TestFlatForwardMonotoneBracket(t *testing.T) {
	ip, err := interp.New(interp.FlatForward, []int{10, 500}, []float64{0.10, 0.12})
	require.NoError(t, err)

	for bd := 11; bd < 500; bd += 7 {
		r := ip.Rate(bd)
		assert.GreaterOrEqual(t, r, 0.10, "bday %d", bd)
		assert.LessOrEqual(t, r, 0.12, "bday %d", bd)
	}
}
