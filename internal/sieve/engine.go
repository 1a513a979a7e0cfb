// Package sieve eliminates constellation candidates divisible by small primes.
//
// The search space of a job is FM + P*k + o, where FM is the first multiple of
// the primorial P not below the job target and o one of the primorial
// offsets. It is cut into work units of 2^SieveBits consecutive multipliers k
// for one offset. Each unit is sieved into a Segment holding one bit field per
// pattern position.
package sieve

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"math/bits"
	"sort"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/rieminer7000/internal/constellation"
	"github.com/goodnatureofminers/rieminer7000/internal/model"
	"github.com/goodnatureofminers/rieminer7000/internal/primetable"
	"github.com/goodnatureofminers/rieminer7000/pkg/workerpool"
)

const (
	// MinSieveBits keeps a segment at least one 64-bit word wide.
	MinSieveBits = 6
	// MaxSieveBits bounds the segment bit fields to 2 GiB per position.
	MaxSieveBits = 34

	prepareChunk = 1 << 16
)

// ErrForeignJob is returned by Prepare for a job built for another constellation.
var ErrForeignJob = errors.New("job constellation does not match the engine")

// Config sizes the sieve.
type Config struct {
	// SieveBits is log2 of the multipliers covered by one segment.
	SieveBits int
	// SieveSize is the number of multipliers in one window. It must be a
	// multiple of the segment span.
	SieveSize uint64
	// Iterations is the number of windows swept per offset before a job is
	// exhausted.
	Iterations uint64
	// Workers bounds the parallelism of per-job preparation.
	Workers int
	// UseAvx2 selects the batched large-prime kernel.
	UseAvx2 bool
}

// Engine holds the configuration constants of the sieve. It is read-only after
// construction and shared by every sieve worker.
type Engine struct {
	logger        *zap.Logger
	cfg           Config
	constellation *constellation.Constellation

	primes   []uint64
	inverses []uint64
	// largeFrom is the index of the first prime not smaller than the span.
	largeFrom int

	span     uint64
	words    int
	segments uint64
	batched  bool
}

// NewEngine validates cfg and computes the inverse of the primorial modulo
// every sieving prime. Primes dividing the primorial are skipped.
func NewEngine(
	ctx context.Context,
	logger *zap.Logger,
	cfg Config,
	c *constellation.Constellation,
	table primetable.Table,
) (*Engine, error) {
	if cfg.SieveBits < MinSieveBits || cfg.SieveBits > MaxSieveBits {
		return nil, fmt.Errorf("sieve bits %d out of range [%d, %d]", cfg.SieveBits, MinSieveBits, MaxSieveBits)
	}
	span := uint64(1) << cfg.SieveBits
	if cfg.SieveSize == 0 || cfg.SieveSize%span != 0 {
		return nil, fmt.Errorf("sieve size %d is not a positive multiple of %d", cfg.SieveSize, span)
	}
	if cfg.Iterations == 0 {
		return nil, errors.New("sieve iterations must be positive")
	}
	if c == nil {
		return nil, errors.New("constellation is nil")
	}
	if len(table) <= c.PrimorialNumber {
		return nil, fmt.Errorf("prime table holds %d primes, primorial needs more than %d", len(table), c.PrimorialNumber)
	}
	if table.Limit() > primetable.MaxLimit {
		return nil, fmt.Errorf("prime table limit %d exceeds %d", table.Limit(), uint64(primetable.MaxLimit))
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	batched := cfg.UseAvx2 && batchedSupported()
	if cfg.UseAvx2 && !batched {
		logger.Warn("AVX2 requested but not supported by this CPU, using scalar kernel")
	}

	primes := table[c.PrimorialNumber:]
	e := &Engine{
		logger:        logger,
		cfg:           cfg,
		constellation: c,
		primes:        primes,
		inverses:      make([]uint64, len(primes)),
		span:          span,
		words:         int(span / 64),
		segments:      cfg.SieveSize / span,
		batched:       batched,
	}
	e.largeFrom = sort.Search(len(primes), func(i int) bool { return primes[i] >= span })

	primorial := words(c.Primorial)
	err := workerpool.Chunks(ctx, cfg.Workers, len(primes), prepareChunk, func(ctx context.Context, lo, hi int) error {
		for j := lo; j < hi; j++ {
			p := primes[j]
			inv := modInverse(modWords(primorial, p), p)
			if inv == 0 {
				return fmt.Errorf("primorial has no inverse modulo %d", p)
			}
			e.inverses[j] = inv
		}
		return ctx.Err()
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("compute primorial inverses: %w", err)
	}

	logger.Info("sieve engine ready",
		zap.Int("sievingPrimes", len(primes)),
		zap.Int("smallPrimes", e.largeFrom),
		zap.Uint64("span", span),
		zap.Uint64("segmentsPerWindow", e.segments),
		zap.Bool("batched", batched),
	)
	return e, nil
}

// Constellation returns the constellation the engine sieves for.
func (e *Engine) Constellation() *constellation.Constellation { return e.constellation }

// Span is the number of multipliers in one segment.
func (e *Engine) Span() uint64 { return e.span }

// SegmentsPerWindow is the number of segments in one window.
func (e *Engine) SegmentsPerWindow() uint64 { return e.segments }

// Batched reports whether the batched large-prime kernel is active.
func (e *Engine) Batched() bool { return e.batched }

// Units is the number of work units of a job.
func (e *Engine) Units() uint64 {
	return e.cfg.Iterations * uint64(len(e.constellation.Offsets)) * e.segments
}

// Unit identifies one segment of the search space.
type Unit struct {
	Index       uint64
	Window      uint64
	OffsetIndex int
	Segment     uint64
	// KLo is the first multiplier covered by the unit.
	KLo uint64
}

// Unit maps a work unit index to its position in the search space. Consecutive
// indexes walk the segments of one window, then the offsets, then the windows.
func (e *Engine) Unit(index uint64) (Unit, bool) {
	if index >= e.Units() {
		return Unit{}, false
	}
	seg := index % e.segments
	rest := index / e.segments
	offsets := uint64(len(e.constellation.Offsets))
	oi := rest % offsets
	window := rest / offsets
	return Unit{
		Index:       index,
		Window:      window,
		OffsetIndex: int(oi),
		Segment:     seg,
		KLo:         window*e.cfg.SieveSize + seg*e.span,
	}, true
}

// Prepared is the per-job state shared by all sieve workers. It is read-only.
type Prepared struct {
	Job *model.Job
	// FM is the first multiple of the primorial not below the job target.
	FM *big.Int

	fmMod []uint64

	// small is set when FM and the primorial fit in 64 bits, so sieved values
	// may equal a sieving prime.
	small     bool
	fm        uint64
	primorial uint64
}

// Base returns the value at position 0 for multiplier k and offset index oi.
func (p *Prepared) Base(k uint64, oi int) *big.Int {
	return p.Job.Constellation.Base(new(big.Int), p.FM, k, oi)
}

// Prepare computes FM and its residue modulo every sieving prime.
func (e *Engine) Prepare(ctx context.Context, job *model.Job) (*Prepared, error) {
	if job == nil {
		return nil, errors.New("job is nil")
	}
	if job.Constellation != e.constellation {
		return nil, ErrForeignJob
	}
	if job.Target == nil || job.Target.Sign() < 0 {
		return nil, errors.New("job target must be non-negative")
	}

	fm := e.constellation.FirstMultiple(job.Target)
	prepared := &Prepared{
		Job:   job,
		FM:    fm,
		fmMod: make([]uint64, len(e.primes)),
	}
	if fm.IsUint64() && e.constellation.Primorial.IsUint64() {
		prepared.small = true
		prepared.fm = fm.Uint64()
		prepared.primorial = e.constellation.Primorial.Uint64()
	}

	fmWords := words(fm)
	err := workerpool.Chunks(ctx, e.cfg.Workers, len(e.primes), prepareChunk, func(ctx context.Context, lo, hi int) error {
		for j := lo; j < hi; j++ {
			prepared.fmMod[j] = modWords(fmWords, e.primes[j])
		}
		return ctx.Err()
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("prepare job %s: %w", job.ID, err)
	}
	return prepared, nil
}

// equalsPrime reports whether FM + P*k + offset + c == prime. Any carry out of
// 64 bits means the value exceeds every sieving prime.
func (p *Prepared) equalsPrime(k, offset, c, prime uint64) bool {
	if !p.small {
		return false
	}
	hi, lo := bits.Mul64(p.primorial, k)
	if hi != 0 {
		return false
	}
	v, c1 := bits.Add64(lo, p.fm, 0)
	v, c2 := bits.Add64(v, offset, 0)
	v, c3 := bits.Add64(v, c, 0)
	return c1|c2|c3 == 0 && v == prime
}

// NewSegment allocates a segment sized for this engine.
func (e *Engine) NewSegment() *Segment {
	n := e.constellation.Pattern.Len()
	return &Segment{
		positions: n,
		words:     e.words,
		span:      e.span,
		bits:      make([]uint64, n*e.words),
	}
}

// Sieve fills seg for unit u of the prepared job. Bit (k, i) is set when the
// value at position i for multiplier KLo+k is divisible by a sieving prime and
// differs from it.
func (e *Engine) Sieve(p *Prepared, u Unit, seg *Segment) {
	seg.reset(u)

	offset := e.constellation.Offsets[u.OffsetIndex]
	pattern := e.constellation.Pattern
	for i := 0; i < pattern.Len(); i++ {
		pos := position{offset: offset, c: pattern.Offset(i)}
		field := seg.field(i)
		e.markSmall(p, u.KLo, pos, field)
		if e.batched {
			e.markLargeBatched(p, u.KLo, pos, field)
		} else {
			e.markLarge(p, u.KLo, pos, field, e.largeFrom, len(e.primes))
		}
	}
}

// position is a primorial offset and a pattern offset. They are kept apart so
// their sum never has to fit in 64 bits.
type position struct {
	offset uint64
	c      uint64
}

// residue returns FM + offset + c modulo the j-th sieving prime.
func (e *Engine) residue(p *Prepared, j int, pos position) uint64 {
	prime := e.primes[j]
	return (p.fmMod[j] + pos.offset%prime + pos.c%prime) % prime
}

// start returns the first index in the segment marked by prime j, or a value
// >= span if there is none.
func (e *Engine) start(p *Prepared, j int, kLo uint64, pos position) uint64 {
	prime := e.primes[j]
	root := firstRoot(e.residue(p, j, pos), e.inverses[j], prime)
	first := (root + prime - kLo%prime) % prime
	if p.small && p.equalsPrime(kLo+first, pos.offset, pos.c, prime) {
		first += prime
	}
	return first
}
