package constellation

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"
)

//go:embed data/constellations.txt
var defaultData string

// Default is one pattern of the embedded constellation data with its
// precomputed primorial offsets.
type Default struct {
	Pattern Pattern
	Offsets []uint64
}

var loadDefaults = sync.OnceValues(func() ([]Default, error) {
	return parseDefaults(defaultData)
})

// Defaults returns the embedded constellation data.
func Defaults() ([]Default, error) {
	return loadDefaults()
}

// DefaultOffsets returns the embedded primorial offsets for pattern.
func DefaultOffsets(pattern Pattern) ([]uint64, bool) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, false
	}
	for _, d := range defaults {
		if d.Pattern.Equal(pattern) {
			out := make([]uint64, len(d.Offsets))
			copy(out, d.Offsets)
			return out, true
		}
	}
	return nil, false
}

// DefaultPattern returns the first embedded pattern with the given length.
func DefaultPattern(length int) (Pattern, bool) {
	defaults, err := loadDefaults()
	if err != nil {
		return Pattern{}, false
	}
	for _, d := range defaults {
		if d.Pattern.Len() == length {
			return d.Pattern, true
		}
	}
	return Pattern{}, false
}

func parseDefaults(data string) ([]Default, error) {
	var out []Default
	for n, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patternField, offsetsField, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("constellation data line %d: missing offsets", n+1)
		}
		pattern, err := ParsePattern(patternField)
		if err != nil {
			return nil, fmt.Errorf("constellation data line %d: %w", n+1, err)
		}
		offsets, err := ParseOffsets(offsetsField)
		if err != nil {
			return nil, fmt.Errorf("constellation data line %d: %w", n+1, err)
		}
		out = append(out, Default{Pattern: pattern, Offsets: offsets})
	}
	return out, nil
}
