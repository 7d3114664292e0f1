package service

import (
	"math"

	"github.com/shopspring/decimal"
)

// SafeNumber maps NaN and ±Inf to 0.
func SafeNumber(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// NonNegative returns v sanitized and floored at 0.
func NonNegative(v float64) float64 {
	return math.Max(0, SafeNumber(v))
}

// Clamp sanitizes v and bounds it to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	v = SafeNumber(v)
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CapOverflow reports whether v is non-finite or above OverflowCeiling and
// returns the ceiling in that case.
func CapOverflow(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v > OverflowCeiling {
		return OverflowCeiling, true
	}
	return v, false
}

// BoundMagnitude keeps a running sum inside [-OverflowCeiling, OverflowCeiling].
// NaN becomes 0 and infinities take the ceiling of their sign.
func BoundMagnitude(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v > OverflowCeiling:
		return OverflowCeiling
	case v < -OverflowCeiling:
		return -OverflowCeiling
	}
	return v
}

// RoundUnits rounds to the nearest whole currency unit, half away from zero.
func RoundUnits(v float64) float64 {
	return decimal.NewFromFloat(SafeNumber(v)).Round(0).InexactFloat64()
}

// RoundCents rounds to 2 decimals.
func RoundCents(v float64) float64 {
	return decimal.NewFromFloat(SafeNumber(v)).Round(2).InexactFloat64()
}
