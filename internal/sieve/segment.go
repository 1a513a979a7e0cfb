package sieve

import "math/bits"

// Segment holds one bit field per pattern position over the multipliers of a
// work unit. A set bit marks the value as composite. A segment is owned by a
// single sieve worker and reused across units.
type Segment struct {
	unit      Unit
	positions int
	words     int
	span      uint64
	bits      []uint64
}

// Candidate is a multiplier whose value at position 0 survived the sieve.
type Candidate struct {
	Generation  uint64
	K           uint64
	OffsetIndex int
	// Eliminated has bit i set when position i was eliminated by the sieve.
	Eliminated uint64
}

// Unit returns the work unit the segment was last filled for.
func (s *Segment) Unit() Unit { return s.unit }

func (s *Segment) reset(u Unit) {
	s.unit = u
	clear(s.bits)
}

func (s *Segment) field(i int) []uint64 {
	return s.bits[i*s.words : (i+1)*s.words]
}

// Eliminated reports whether position i of multiplier KLo+k is marked.
func (s *Segment) Eliminated(k uint64, i int) bool {
	return s.field(i)[k/64]&(1<<(k%64)) != 0
}

// Candidates appends the survivors of position 0 to dst.
func (s *Segment) Candidates(generation uint64, dst []Candidate) []Candidate {
	first := s.field(0)
	for w, word := range first {
		free := ^word
		for free != 0 {
			b := bits.TrailingZeros64(free)
			free &= free - 1
			k := uint64(w)*64 + uint64(b)

			var mask uint64
			for i := 1; i < s.positions; i++ {
				if s.bits[i*s.words+w]&(1<<uint(b)) != 0 {
					mask |= 1 << uint(i)
				}
			}
			dst = append(dst, Candidate{
				Generation:  generation,
				K:           s.unit.KLo + k,
				OffsetIndex: s.unit.OffsetIndex,
				Eliminated:  mask,
			})
		}
	}
	return dst
}

// Survivors counts the multipliers not eliminated at any position.
func (s *Segment) Survivors() int {
	n := 0
	for w := 0; w < s.words; w++ {
		var marked uint64
		for i := 0; i < s.positions; i++ {
			marked |= s.bits[i*s.words+w]
		}
		n += bits.OnesCount64(^marked)
	}
	return n
}
