package constellation

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/goodnatureofminers/rieminer7000/internal/primetable"
)

// Constellation bundles everything derived once per mining session from the
// pattern and primorial choice. It is immutable and shared by every job.
type Constellation struct {
	Pattern         Pattern
	PrimorialNumber int
	// Primorial is the product of the first PrimorialNumber primes. Read only.
	Primorial *big.Int
	Offsets   []uint64
	// Primes are the primorial factors, in ascending order.
	Primes []uint64
}

// New validates the inputs and computes the primorial. Every offset must be
// admissible for the pattern, and offset plus the pattern width must fit in
// 64 bits.
func New(pattern Pattern, primes primetable.Table, primorialNumber int, offsets []uint64) (*Constellation, error) {
	if pattern.Len() == 0 {
		return nil, ErrEmptyPattern
	}
	if len(offsets) == 0 {
		return nil, errors.New("no primorial offsets")
	}
	primorial, err := Primorial(primes, primorialNumber)
	if err != nil {
		return nil, err
	}
	factors := make([]uint64, primorialNumber)
	copy(factors, primes[:primorialNumber])

	width := pattern.Width()
	for i, o := range offsets {
		if o > math.MaxUint64-width {
			return nil, fmt.Errorf("primorial offset #%d (%d) plus pattern width %d overflows 64 bits", i, o, width)
		}
		if pos, p, ok := Admissible(pattern, o, factors); !ok {
			return nil, fmt.Errorf("primorial offset #%d (%d) is divisible by %d at position %d", i, o, p, pos)
		}
	}

	owned := make([]uint64, len(offsets))
	copy(owned, offsets)
	return &Constellation{
		Pattern:         pattern,
		PrimorialNumber: primorialNumber,
		Primorial:       primorial,
		Offsets:         owned,
		Primes:          factors,
	}, nil
}

// Primorial returns the product of the first n primes of the table.
func Primorial(primes primetable.Table, n int) (*big.Int, error) {
	if n < 1 {
		return nil, fmt.Errorf("primorial number %d must be at least 1", n)
	}
	if n >= len(primes) {
		return nil, fmt.Errorf("primorial number %d needs more than %d table primes", n, len(primes))
	}
	result := big.NewInt(1)
	var factor big.Int
	for _, p := range primes[:n] {
		result.Mul(result, factor.SetUint64(p))
	}
	return result, nil
}

// Admissible reports whether offset+pattern[i] avoids every factor for all
// positions. A value equal to the factor itself is allowed. On failure it
// returns the offending position and factor.
func Admissible(pattern Pattern, offset uint64, factors []uint64) (int, uint64, bool) {
	for _, p := range factors {
		r := offset % p
		for i := 0; i < pattern.Len(); i++ {
			c := pattern.Offset(i)
			if (r+c%p)%p != 0 {
				continue
			}
			if offset <= p && offset+c == p {
				continue
			}
			return i, p, false
		}
	}
	return 0, 0, true
}

// Base returns FM + P*k + Offsets[offsetIndex] in dst, where fm is a multiple
// of the primorial.
func (c *Constellation) Base(dst, fm *big.Int, k uint64, offsetIndex int) *big.Int {
	var tmp big.Int
	tmp.SetUint64(k)
	tmp.Mul(&tmp, c.Primorial)
	dst.Add(fm, &tmp)
	tmp.SetUint64(c.Offsets[offsetIndex])
	return dst.Add(dst, &tmp)
}

// FirstMultiple returns the smallest multiple of the primorial that is >= target.
func (c *Constellation) FirstMultiple(target *big.Int) *big.Int {
	if target.Sign() <= 0 {
		return new(big.Int)
	}
	q, r := new(big.Int).QuoRem(target, c.Primorial, new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return q.Mul(q, c.Primorial)
}
