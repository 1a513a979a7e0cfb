// Package constellation describes constellation shapes (patterns), primorials
// and the admissible primorial offsets used to seed the sieve.
package constellation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxLength is the longest supported pattern. Candidate elimination masks are
// stored in a uint64 with one bit per position.
const MaxLength = 64

var (
	// ErrEmptyPattern is returned when a pattern has no positions.
	ErrEmptyPattern = errors.New("pattern is empty")
	// ErrPatternStart is returned when the first difference is not zero.
	ErrPatternStart = errors.New("pattern must start with 0")
)

// Pattern holds the absolute offsets of every constellation position.
// Offsets[0] is always 0 and the slice is strictly increasing.
type Pattern struct {
	offsets []uint64
}

// NewPattern builds a pattern from differences between consecutive positions,
// e.g. 0,4,2,4,2,4 describes the offsets 0,4,6,10,12,16.
func NewPattern(differences []uint64) (Pattern, error) {
	if len(differences) == 0 {
		return Pattern{}, ErrEmptyPattern
	}
	if len(differences) > MaxLength {
		return Pattern{}, fmt.Errorf("pattern has %d positions, at most %d supported", len(differences), MaxLength)
	}
	if differences[0] != 0 {
		return Pattern{}, ErrPatternStart
	}

	offsets := make([]uint64, len(differences))
	for i := 1; i < len(differences); i++ {
		d := differences[i]
		if d == 0 {
			return Pattern{}, fmt.Errorf("pattern difference %d is zero", i)
		}
		if d > 1<<20 || offsets[i-1] > 1<<32 {
			return Pattern{}, fmt.Errorf("pattern difference %d is too large", i)
		}
		offsets[i] = offsets[i-1] + d
	}
	return Pattern{offsets: offsets}, nil
}

// ParsePattern parses a comma separated list of differences.
func ParsePattern(s string) (Pattern, error) {
	diffs, err := parseList(s)
	if err != nil {
		return Pattern{}, fmt.Errorf("parse pattern: %w", err)
	}
	return NewPattern(diffs)
}

// Len returns the number of positions.
func (p Pattern) Len() int { return len(p.offsets) }

// Offset returns the absolute offset of position i.
func (p Pattern) Offset(i int) uint64 { return p.offsets[i] }

// Offsets returns a copy of the absolute offsets.
func (p Pattern) Offsets() []uint64 {
	out := make([]uint64, len(p.offsets))
	copy(out, p.offsets)
	return out
}

// Width is the distance between the first and the last position.
func (p Pattern) Width() uint64 {
	if len(p.offsets) == 0 {
		return 0
	}
	return p.offsets[len(p.offsets)-1]
}

// Differences returns the pattern in its difference form.
func (p Pattern) Differences() []uint64 {
	out := make([]uint64, len(p.offsets))
	for i := 1; i < len(p.offsets); i++ {
		out[i] = p.offsets[i] - p.offsets[i-1]
	}
	return out
}

// String formats the pattern as comma separated differences.
func (p Pattern) String() string {
	return formatList(p.Differences())
}

// Equal reports whether both patterns describe the same shape.
func (p Pattern) Equal(other Pattern) bool {
	if len(p.offsets) != len(other.offsets) {
		return false
	}
	for i := range p.offsets {
		if p.offsets[i] != other.offsets[i] {
			return false
		}
	}
	return true
}

// ParseOffsets parses a comma separated list of primorial offsets.
func ParseOffsets(s string) ([]uint64, error) {
	offsets, err := parseList(s)
	if err != nil {
		return nil, fmt.Errorf("parse primorial offsets: %w", err)
	}
	if len(offsets) == 0 {
		return nil, errors.New("no primorial offsets")
	}
	return offsets, nil
}

func parseList(s string) ([]uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	out := make([]uint64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func formatList(values []uint64) string {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(v, 10))
	}
	return b.String()
}
