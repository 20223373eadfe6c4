package fastmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog2(t *testing.T) {
	for _, x := range []float32{0.01, 0.5, 1, 2, 8, 1000, 1e6} {
		want := math.Log2(float64(x))
		assert.InDelta(t, want, float64(Log2(x)), 0.01, "Log2(%v)", x)
	}
}

func TestExp2(t *testing.T) {
	for _, x := range []float32{-10, -1.5, -1, 0, 0.5, 1, 4.25, 10} {
		want := math.Exp2(float64(x))
		rel := math.Abs(float64(Exp2(x))-want) / want
		assert.Less(t, rel, 0.01, "Exp2(%v)", x)
	}
	assert.Equal(t, float32(0), Exp2(-200))
}

func TestLogExpRoundTrip(t *testing.T) {
	for _, x := range []float32{0.1, 1, 3, 42} {
		assert.InDelta(t, float64(x), float64(Exp(Log(x))), float64(x)*0.02, "round trip %v", x)
	}
}

func TestLogistic(t *testing.T) {
	assert.Equal(t, float32(1), Logistic(25))
	assert.Equal(t, float32(0), Logistic(-25))
	assert.InDelta(t, 0.5, float64(Logistic(0)), 0.01)
	assert.InDelta(t, 1/(1+math.Exp(2)), float64(Logistic(-2)), 0.01)
}

func TestSign(t *testing.T) {
	assert.Equal(t, float32(1), Sign(3.5))
	assert.Equal(t, float32(-1), Sign(-0.25))
}

func TestInvSqrt(t *testing.T) {
	for _, x := range []float32{0.25, 1, 2, 100, 12345} {
		want := 1 / math.Sqrt(float64(x))
		rel := math.Abs(float64(InvSqrt(x))-want) / want
		assert.Less(t, rel, 0.005, "InvSqrt(%v)", x)
	}
}

func TestPow(t *testing.T) {
	// Accuracy typically within 5%, worst observed cases near 12%.
	for _, tc := range [][2]float32{{2, 0.5}, {10, 0.3}, {3, 0.9}} {
		want := math.Pow(float64(tc[0]), float64(tc[1]))
		rel := math.Abs(float64(Pow(tc[0], tc[1]))-want) / want
		assert.Less(t, rel, 0.12, "Pow(%v, %v)", tc[0], tc[1])
	}
}

func TestPrecisePow(t *testing.T) {
	for _, tc := range [][2]float32{{2, 3}, {2, 3.5}, {1.5, 10}, {4, -2}, {9, 0.5}} {
		want := math.Pow(float64(tc[0]), float64(tc[1]))
		rel := math.Abs(float64(PrecisePow(tc[0], tc[1]))-want) / math.Abs(want)
		assert.Less(t, rel, 0.05, "PrecisePow(%v, %v)", tc[0], tc[1])
	}
}

func TestPolicyDecay(t *testing.T) {
	// Degenerate inputs pass through unchanged.
	assert.Equal(t, float32(0), PolicyDecay(0, 100, 1, 20))
	assert.Equal(t, float32(0.3), PolicyDecay(0.3, 100, 0, 20))
	assert.Equal(t, float32(0.3), PolicyDecay(0.3, 100, 1, 0))

	// With no visits the prior is unchanged; visits pull it toward
	// uniform.
	assert.InDelta(t, 0.3, float64(PolicyDecay(0.3, 0, 1, 20)), 0.01)
	decayed := PolicyDecay(0.3, 10000, 1, 20)
	assert.Greater(t, decayed, float32(0.3))
	assert.Less(t, decayed, float32(1))
}
