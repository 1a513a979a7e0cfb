package sieve

import (
	"math/big"
	"math/bits"
)

// words returns the magnitude of x as little-endian 64-bit words.
func words(x *big.Int) []uint64 {
	n := (x.BitLen() + 63) / 64
	buf := make([]byte, n*8)
	x.FillBytes(buf)
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		var w uint64
		for _, b := range buf[len(buf)-8*(i+1) : len(buf)-8*i] {
			w = w<<8 | uint64(b)
		}
		out[i] = w
	}
	return out
}

// modWords reduces the little-endian number w modulo p.
func modWords(w []uint64, p uint64) uint64 {
	var r uint64
	for i := len(w) - 1; i >= 0; i-- {
		_, r = bits.Div64(r, w[i], p)
	}
	return r
}

// modInverse returns a^-1 mod p for a coprime to p, or 0 when no inverse exists.
func modInverse(a, p uint64) uint64 {
	if p < 2 {
		return 0
	}
	t, newT := int64(0), int64(1)
	r, newR := int64(p), int64(a%p)
	for newR != 0 {
		q := r / newR
		t, newT = newT, t-q*newT
		r, newR = newR, r-q*newR
	}
	if r != 1 {
		return 0
	}
	if t < 0 {
		t += int64(p)
	}
	return uint64(t)
}

// firstRoot returns the smallest k >= 0 with residue + m*k == 0 (mod p), given
// inv = m^-1 mod p and residue < p.
func firstRoot(residue, inv, p uint64) uint64 {
	if residue == 0 {
		return 0
	}
	return (p - residue) * inv % p
}
