// Package fastmath provides approximate float32 math routines built on
// bit-level manipulation. They trade accuracy for speed on hot search
// paths; none of them range-check their inputs.
package fastmath

import "math"

// Log2 is an approximate log2(x). The approximation is
// log2(2^N*(1+f)) ~ N+f*(1+k-k*f) where N is the exponent and f the
// mantissa fraction, with k tuned to minimize max absolute error in
// 32-bit float math.
func Log2(a float32) float32 {
	tmp := math.Float32bits(a)
	expb := tmp >> 23
	tmp = (tmp & 0x7fffff) | (0x7f << 23)
	out := math.Float32frombits(tmp) - 1.0
	return out*(1.3465552-0.34655523*out) - 127 + float32(expb)
}

// Exp2 is an approximate 2^x with limited range checking. The
// approximation is 2^(N+f) ~ 2^N*(1+f*(1-k+k*f)) where N is the
// integer and f the fractional part, with k minimizing max relative
// error.
func Exp2(a float32) float32 {
	var exp int32
	if a < 0 {
		if a < -126 {
			return 0
		}
		// Round toward negative infinity; the error term is exact at
		// integer inputs so the off-by-one cancels there.
		exp = int32(a - 1)
	} else {
		exp = int32(a)
	}
	out := a - float32(exp)
	out = 1.0 + out*(0.6602339+0.33976606*out)
	tmp := int32(math.Float32bits(out))
	tmp += exp << 23
	return math.Float32frombits(uint32(tmp))
}

// Log is an approximate natural logarithm.
func Log(a float32) float32 {
	return 0.6931471805599453 * Log2(a)
}

// Exp is an approximate e^x with limited range checking.
func Exp(a float32) float32 {
	return Exp2(1.442695040 * a)
}

// Logistic is a safeguarded approximate logistic function.
func Logistic(a float32) float32 {
	if a > 20 {
		return 1
	}
	if a < -20 {
		return 0
	}
	return 1.0 / (1.0 + Exp(-a))
}

// Sign returns ±1 with the sign of a.
func Sign(a float32) float32 {
	return float32(math.Copysign(1, float64(a)))
}

// InvSqrt is an approximate 1/sqrt(x) using the classic Quake III bit
// trick with one Newton iteration. Expects positive input.
func InvSqrt(a float32) float32 {
	halfx := 0.5 * a
	i := math.Float32bits(a)
	i = 0x5f3759df - (i >> 1)
	y := math.Float32frombits(i)
	return y * (1.5 - halfx*y*y)
}

// Pow is an approximate pow(a, b) for positive bases. Accuracy is
// typically within 5%; use PrecisePow when the exponent exceeds one.
func Pow(a, b float32) float32 {
	i := int32(math.Float32bits(a))
	i = int32(b*float32(i-1064866805)) + 1064866805
	return math.Float32frombits(uint32(i))
}

// PrecisePow handles the integer part of the exponent by squaring and
// only approximates the fractional part, which keeps it usable for
// exponents above one. Expects a positive base.
func PrecisePow(a, b float32) float32 {
	e := int(b)
	i := int32(math.Float32bits(a))
	i = int32((b-float32(e))*float32(i-1064866805)) + 1064866805
	frac := math.Float32frombits(uint32(i))

	r := float32(1.0)
	base := a
	exp := e
	if exp < 0 {
		base = 1.0 / base
		exp = -exp
	}
	for exp != 0 {
		if exp&1 == 1 {
			r *= base
		}
		base *= base
		exp >>= 1
	}
	return r * frac
}

// PolicyDecay applies the sqrt policy decay transformation, returning
// the raw (unnormalized) effective prior
//
//	P_eff = 1 / (1 + odds / sqrt(1 + N/(scale*legalMoves)))
//
// where odds = 1/P - 1. The caller must normalize the results so they
// sum to one. P is returned unchanged when it is zero, the scale is
// zero, or there are no legal moves.
func PolicyDecay(p, nChild, scalePerMove float32, numLegalMoves int) float32 {
	if p == 0 || scalePerMove == 0 || numLegalMoves <= 0 {
		return p
	}
	effectiveScale := scalePerMove * float32(numLegalMoves)
	powerTerm := InvSqrt(1.0 + nChild/effectiveScale)
	odds := 1.0/p - 1.0
	return 1.0 / (1.0 + odds*powerTerm)
}
