package rational

import (
	"math/big"
)

// Rational is an immutable fraction in lowest terms. The zero value is 0.
type Rational struct {
	r *big.Rat
}

// New returns num/den reduced to lowest terms. It panics if den is zero.
func New(num, den int64) Rational {
	if den == 0 {
		panic("rational: denominator is zero")
	}
	return Rational{r: big.NewRat(num, den)}
}

// Int returns the integer n as a Rational.
func Int(n int64) Rational {
	return Rational{r: new(big.Rat).SetInt64(n)}
}

// FromBig copies r into a Rational.
func FromBig(r *big.Rat) Rational {
	return Rational{r: new(big.Rat).Set(r)}
}

func (q Rational) rat() *big.Rat {
	if q.r == nil {
		return new(big.Rat)
	}
	return q.r
}

// Big returns a copy of the underlying big.Rat.
func (q Rational) Big() *big.Rat { return new(big.Rat).Set(q.rat()) }

// Num returns a copy of the numerator. It carries the sign.
func (q Rational) Num() *big.Int { return new(big.Int).Set(q.rat().Num()) }

// Denom returns a copy of the denominator, always positive.
func (q Rational) Denom() *big.Int { return new(big.Int).Set(q.rat().Denom()) }

// Sign returns -1, 0 or +1.
func (q Rational) Sign() int {
	return q.rat().Sign()
}

func (q Rational) IsZero() bool {
	return q.rat().Sign() == 0
}

func (q Rational) IsInt() bool {
	return q.rat().IsInt()
}

func (q Rational) IsPositive() bool {
	return q.rat().Sign() > 0
}

func (q Rational) IsNegative() bool {
	return q.rat().Sign() < 0
}

// IsOne reports whether q == 1.
func (q Rational) IsOne() bool {
	return q.rat().Cmp(big.NewRat(1, 1)) == 0
}

// Abs returns |q|.
func (q Rational) Abs() Rational {
	return Rational{r: new(big.Rat).Abs(q.rat())}
}

// Neg returns -q.
func (q Rational) Neg() Rational {
	return Rational{r: new(big.Rat).Neg(q.rat())}
}

// Float64 returns the nearest float64 value.
func (q Rational) Float64() float64 {
	f, _ := q.rat().Float64()
	return f
}

// Cmp compares q and o and returns -1, 0 or +1.
func (q Rational) Cmp(o Rational) int { return q.rat().Cmp(o.rat()) }

// Equal reports whether q and o are the same number.
func (q Rational) Equal(o Rational) bool { return q.Cmp(o) == 0 }

// String formats integers as "n" and everything else as "p/q".
func (q Rational) String() string {
	r := q.rat()
	if r.IsInt() {
		return r.Num().String()
	}
	return r.String()
}

// MarshalText implements encoding.TextMarshaler.
func (q Rational) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts the forms
// produced by String as well as decimals.
func (q *Rational) UnmarshalText(text []byte) error {
	r, ok := new(big.Rat).SetString(string(text))
	if !ok {
		return errInvalidText(string(text))
	}
	q.r = r
	return nil
}
