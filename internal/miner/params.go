package miner

import (
	"fmt"
	"runtime"

	"github.com/goodnatureofminers/rieminer7000/internal/constellation"
	"github.com/goodnatureofminers/rieminer7000/internal/coordinator"
	"github.com/goodnatureofminers/rieminer7000/internal/primetable"
	"github.com/goodnatureofminers/rieminer7000/internal/sieve"
	"github.com/goodnatureofminers/rieminer7000/internal/verifier"
	"github.com/goodnatureofminers/rieminer7000/pkg/safe"
)

const (
	DefaultPrimorialNumber = 40
	DefaultPrimeTableLimit = 1 << 26
	DefaultSieveBits       = 25
	DefaultIterations      = 16
	DefaultQueueSize       = 1 << 16
	DefaultPattern         = "0,2,4,2,4,6,2"
)

// ConfigError reports an invalid configuration field. It is fatal at startup.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration field %s: %s", e.Field, e.Reason)
}

func configErr(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Params are the core settings, read once at startup. Zero values are
// replaced by defaults in Normalize.
type Params struct {
	Threads                 int
	SieveWorkers            int
	TupleLengthMin          int
	PrimorialNumber         int
	PrimeTableLimit         uint64
	UseAvx2                 bool
	SieveBits               int
	SieveSize               uint64
	SieveWords              uint64
	SieveIterations         uint64
	Pattern                 constellation.Pattern
	PrimorialOffsets        []uint64
	RestartDifficultyFactor float64
	PrimalityTest           verifier.Test
	QueueSize               int
}

// Normalize fills defaults and validates the combination of fields. The
// returned error is a *ConfigError naming the first invalid field.
func (p *Params) Normalize() error {
	if p.Threads == 0 {
		p.Threads = max(2, runtime.NumCPU())
	}
	if p.Threads < 2 {
		return configErr("threads", "need at least 2 threads, got %d", p.Threads)
	}
	if p.SieveWorkers == 0 {
		p.SieveWorkers = max(1, p.Threads/4)
	}
	if p.SieveWorkers < 1 || p.SieveWorkers >= p.Threads {
		return configErr("sieveWorkers", "must be in [1, %d), got %d", p.Threads, p.SieveWorkers)
	}

	if p.Pattern.Len() == 0 {
		pattern, err := constellation.ParsePattern(DefaultPattern)
		if err != nil {
			return configErr("pattern", "%v", err)
		}
		p.Pattern = pattern
	}
	if p.TupleLengthMin == 0 {
		p.TupleLengthMin = p.Pattern.Len()
	}
	if p.TupleLengthMin < 1 || p.TupleLengthMin > p.Pattern.Len() {
		return configErr("tupleLengthMin", "must be in [1, %d], got %d", p.Pattern.Len(), p.TupleLengthMin)
	}

	if p.PrimorialNumber == 0 {
		p.PrimorialNumber = DefaultPrimorialNumber
	}
	if p.PrimorialNumber < 1 {
		return configErr("primorialNumber", "must be positive, got %d", p.PrimorialNumber)
	}
	if p.PrimeTableLimit == 0 {
		p.PrimeTableLimit = DefaultPrimeTableLimit
	}
	if p.PrimeTableLimit > primetable.MaxLimit {
		return configErr("primeTableLimit", "must not exceed %d, got %d", uint64(primetable.MaxLimit), p.PrimeTableLimit)
	}

	if p.SieveBits == 0 {
		p.SieveBits = DefaultSieveBits
	}
	if p.SieveBits < sieve.MinSieveBits || p.SieveBits > sieve.MaxSieveBits {
		return configErr("sieveBits", "must be in [%d, %d], got %d", sieve.MinSieveBits, sieve.MaxSieveBits, p.SieveBits)
	}
	span := uint64(1) << p.SieveBits
	if p.SieveWords == 0 {
		p.SieveWords = span / 64
	}
	if p.SieveWords != span/64 {
		return configErr("sieveWords", "must be %d for %d sieve bits, got %d", span/64, p.SieveBits, p.SieveWords)
	}
	if p.SieveSize == 0 {
		size, err := safe.MulUint64(span, uint64(p.SieveWorkers))
		if err != nil {
			return configErr("sieveSize", "%v", err)
		}
		p.SieveSize = size
	}
	if p.SieveSize%span != 0 {
		return configErr("sieveSize", "must be a multiple of %d, got %d", span, p.SieveSize)
	}
	if segments := p.SieveSize / span; segments%uint64(p.SieveWorkers) != 0 {
		return configErr("sieveSize", "%d segments do not divide evenly across %d sieve workers", segments, p.SieveWorkers)
	}
	if p.SieveIterations == 0 {
		p.SieveIterations = DefaultIterations
	}

	if len(p.PrimorialOffsets) == 0 {
		offsets, ok := constellation.DefaultOffsets(p.Pattern)
		if !ok {
			return configErr("primorialOffsets", "no default offsets for pattern %s", p.Pattern)
		}
		p.PrimorialOffsets = offsets
	}

	if p.RestartDifficultyFactor == 0 {
		p.RestartDifficultyFactor = coordinator.DefaultRestartDifficultyFactor
	}
	if p.RestartDifficultyFactor < 1 {
		return configErr("restartDifficultyFactor", "must be at least 1, got %g", p.RestartDifficultyFactor)
	}
	if p.QueueSize == 0 {
		p.QueueSize = DefaultQueueSize
	}
	if p.QueueSize < 1 {
		return configErr("queueSize", "must be positive, got %d", p.QueueSize)
	}
	return nil
}

// NewConstellation checks the primorial settings against the prime table and
// builds the session constellation.
func NewConstellation(p Params, table primetable.Table) (*constellation.Constellation, error) {
	if p.PrimorialNumber >= len(table) {
		return nil, configErr("primorialNumber", "%d exceeds the %d primes below the table limit", p.PrimorialNumber, len(table))
	}
	c, err := constellation.New(p.Pattern, table, p.PrimorialNumber, p.PrimorialOffsets)
	if err != nil {
		return nil, configErr("primorialOffsets", "%v", err)
	}
	return c, nil
}

// SieveConfig returns the sieve sizing derived from the params.
func (p Params) SieveConfig() sieve.Config {
	return sieve.Config{
		SieveBits:  p.SieveBits,
		SieveSize:  p.SieveSize,
		Iterations: p.SieveIterations,
		Workers:    p.Threads,
		UseAvx2:    p.UseAvx2,
	}
}
