// Package verifier confirms sieve survivors with probabilistic primality tests.
package verifier

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/goodnatureofminers/rieminer7000/internal/constellation"
)

// Test selects the primality test.
type Test int

const (
	// Fermat is the base 2 Fermat test, the acceptance rule of the network.
	Fermat Test = iota
	// Probable is big.Int.ProbablyPrime: Miller-Rabin plus Baillie-PSW.
	Probable
)

// DefaultRounds is the Miller-Rabin round count of the Probable test.
const DefaultRounds = 20

// ErrInvalidInput is returned for values the tests are not defined for.
var ErrInvalidInput = errors.New("invalid primality test input")

// ParseTest parses the configuration name of a test.
func ParseTest(s string) (Test, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fermat":
		return Fermat, nil
	case "probable":
		return Probable, nil
	default:
		return 0, fmt.Errorf("unknown primality test %q", s)
	}
}

func (t Test) String() string {
	switch t {
	case Fermat:
		return "fermat"
	case Probable:
		return "probable"
	default:
		return fmt.Sprintf("test(%d)", int(t))
	}
}

var two = big.NewInt(2)

// Verifier tests constellation positions. It is stateless and safe for
// concurrent use.
type Verifier struct {
	test   Test
	rounds int
}

// New returns a verifier using test. rounds only applies to Probable.
func New(test Test, rounds int) *Verifier {
	if rounds < 1 {
		rounds = DefaultRounds
	}
	return &Verifier{test: test, rounds: rounds}
}

// IsPrime tests a single value.
func (v *Verifier) IsPrime(n *big.Int) (bool, error) {
	if n == nil || n.Cmp(two) < 0 {
		return false, fmt.Errorf("%w: %v", ErrInvalidInput, n)
	}
	switch v.test {
	case Probable:
		return n.ProbablyPrime(v.rounds), nil
	case Fermat:
		return fermat(n), nil
	default:
		return false, fmt.Errorf("unsupported primality test %v", v.test)
	}
}

func fermat(n *big.Int) bool {
	if n.Cmp(two) == 0 {
		return true
	}
	if n.Bit(0) == 0 {
		return false
	}
	var e, r big.Int
	e.Sub(n, big.NewInt(1))
	r.Exp(two, &e, n)
	return r.IsInt64() && r.Int64() == 1
}

// Verify tests base+pattern[i] for i = 0, 1, ... and returns the number of
// leading positions that are prime. Positions flagged in eliminated count as
// composite without a test. A later position is only tested once every
// earlier one passed.
func (v *Verifier) Verify(base *big.Int, pattern constellation.Pattern, eliminated uint64) (length int, err error) {
	defer func() {
		if r := recover(); r != nil {
			length, err = 0, fmt.Errorf("primality test panicked: %v", r)
		}
	}()

	if base == nil {
		return 0, fmt.Errorf("%w: nil base", ErrInvalidInput)
	}
	var n, offset big.Int
	for i := 0; i < pattern.Len(); i++ {
		if eliminated&(1<<uint(i)) != 0 {
			return i, nil
		}
		n.Add(base, offset.SetUint64(pattern.Offset(i)))
		prime, err := v.IsPrime(&n)
		if err != nil {
			return i, fmt.Errorf("position %d: %w", i, err)
		}
		if !prime {
			return i, nil
		}
	}
	return pattern.Len(), nil
}
