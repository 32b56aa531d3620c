package calculator

import (
	"time"

	"github.com/shopspring/decimal"
)

// calcScale is the working scale for every intermediate division. Presented
// values are rounded to two digits only at the very end.
const calcScale int32 = 200

var (
	one    = decimal.NewFromInt(1)
	two    = decimal.NewFromInt(2)
	twelve = decimal.NewFromInt(12)
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// divHalfEven divides a by b at the given scale rounding half to even,
// the fixed-scale division the credit math is defined in.
func divHalfEven(a, b decimal.Decimal, scale int32) decimal.Decimal {
	q, r := a.QuoRem(b, scale)
	if r.IsZero() {
		return q
	}
	// r is the leftover below one quotient step (b * 10^-scale), so the
	// halfway test compares 2r scaled back up against b itself.
	cmp := r.Abs().Mul(two).Shift(scale).Cmp(b.Abs())
	if cmp < 0 {
		return q
	}
	step := decimal.New(1, -scale)
	if (a.Sign() < 0) != (b.Sign() < 0) {
		step = step.Neg()
	}
	if cmp > 0 {
		return q.Add(step)
	}
	// exact tie: keep the quotient when its last kept digit is even
	if q.Shift(scale).Mod(two).IsZero() {
		return q
	}
	return q.Add(step)
}

func yearsBetween(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if birth.AddDate(years, 0, 0).After(now) {
		years--
	}
	return years
}
