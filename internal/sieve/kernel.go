package sieve

// markSmall handles primes smaller than the span, which hit a segment many
// times.
func (e *Engine) markSmall(p *Prepared, kLo uint64, pos position, field []uint64) {
	span := e.span
	for j := 0; j < e.largeFrom; j++ {
		prime := e.primes[j]
		for k := e.start(p, j, kLo, pos); k < span; k += prime {
			field[k>>6] |= 1 << (k & 63)
		}
	}
}

// markLarge handles primes in [from, to) that are at least the span and so
// mark at most once per segment.
func (e *Engine) markLarge(p *Prepared, kLo uint64, pos position, field []uint64, from, to int) {
	span := e.span
	for j := from; j < to; j++ {
		if k := e.start(p, j, kLo, pos); k < span {
			field[k>>6] |= 1 << (k & 63)
		}
	}
}

// markLargeBatched is markLarge working on four primes per iteration with
// independent lanes. The marks are identical to the scalar kernel.
func (e *Engine) markLargeBatched(p *Prepared, kLo uint64, pos position, field []uint64) {
	span := e.span
	j := e.largeFrom
	end := len(e.primes)
	for ; j+4 <= end; j += 4 {
		var first [4]uint64
		for lane := 0; lane < 4; lane++ {
			prime := e.primes[j+lane]
			root := firstRoot(e.residue(p, j+lane, pos), e.inverses[j+lane], prime)
			first[lane] = (root + prime - kLo%prime) % prime
		}
		for lane := 0; lane < 4; lane++ {
			k := first[lane]
			if p.small && p.equalsPrime(kLo+k, pos.offset, pos.c, e.primes[j+lane]) {
				continue
			}
			if k < span {
				field[k>>6] |= 1 << (k & 63)
			}
		}
	}
	e.markLarge(p, kLo, pos, field, j, end)
}
