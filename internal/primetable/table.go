// Package primetable builds, loads and stores the ordered table of small primes
// used by the sieve.
package primetable

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// MaxLimit is the largest supported table limit. Sieve arithmetic multiplies
// two residues below the limit and must stay within 64 bits.
const MaxLimit = math.MaxUint32

const segmentSize = 1 << 18

// Table is an ascending list of primes. It is read-only once built.
type Table []uint64

// Limit returns the largest prime in the table, or 0 if it is empty.
func (t Table) Limit() uint64 {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1]
}

// Generate returns every prime p <= limit using a segmented sieve of Eratosthenes.
func Generate(limit uint64) (Table, error) {
	if limit > MaxLimit {
		return nil, fmt.Errorf("prime table limit %d exceeds %d", limit, uint64(MaxLimit))
	}
	if limit < 2 {
		return Table{}, nil
	}

	root := uint64(math.Sqrt(float64(limit)))
	for root*root > limit {
		root--
	}
	for (root+1)*(root+1) <= limit {
		root++
	}

	base := simpleSieve(root)
	table := make(Table, 0, estimateCount(limit))
	table = append(table, base...)

	composite := make([]bool, segmentSize)
	for lo := root + 1; lo <= limit; lo += segmentSize {
		hi := min(lo+segmentSize-1, limit)
		clear(composite)
		for _, p := range base {
			start := max(p*p, (lo+p-1)/p*p)
			for m := start; m <= hi; m += p {
				composite[m-lo] = true
			}
		}
		for n := lo; n <= hi; n++ {
			if !composite[n-lo] {
				table = append(table, n)
			}
		}
		if hi == limit {
			break
		}
	}
	return table, nil
}

func simpleSieve(limit uint64) Table {
	if limit < 2 {
		return nil
	}
	composite := make([]bool, limit+1)
	primes := make(Table, 0, estimateCount(limit))
	for n := uint64(2); n <= limit; n++ {
		if composite[n] {
			continue
		}
		primes = append(primes, n)
		for m := n * n; m <= limit; m += n {
			composite[m] = true
		}
	}
	return primes
}

func estimateCount(limit uint64) int {
	if limit < 17 {
		return 8
	}
	x := float64(limit)
	return int(1.26 * x / math.Log(x))
}

// Load reads primes <= limit from a little-endian uint64 table file.
// It fails if the file does not reach the requested limit.
func Load(path string, limit uint64) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open prime table: %w", err)
	}
	defer f.Close()

	r := bufio.NewReaderSize(f, 1<<20)
	table := make(Table, 0, estimateCount(limit))
	var buf [8]byte
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read prime table %s: %w", path, err)
		}
		p := binary.LittleEndian.Uint64(buf[:])
		if p > limit {
			return table, nil
		}
		if n := len(table); n > 0 && table[n-1] >= p {
			return nil, fmt.Errorf("prime table %s is not ascending at entry %d", path, n)
		}
		table = append(table, p)
	}
	return nil, fmt.Errorf("prime table %s ends at %d, below limit %d", path, table.Limit(), limit)
}

// Save writes table to path as little-endian uint64 values.
func Save(path string, table Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create prime table: %w", err)
	}
	w := bufio.NewWriterSize(f, 1<<20)
	var buf [8]byte
	for _, p := range table {
		binary.LittleEndian.PutUint64(buf[:], p)
		if _, err := w.Write(buf[:]); err != nil {
			_ = f.Close()
			return fmt.Errorf("write prime table: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush prime table: %w", err)
	}
	return f.Close()
}

// LoadOrGenerate loads the table from path when it covers limit and generates
// it otherwise. The returned bool reports whether the file was used.
func LoadOrGenerate(path string, limit uint64) (Table, bool, error) {
	if path != "" {
		table, err := Load(path, limit)
		if err == nil {
			return table, true, nil
		}
	}
	table, err := Generate(limit)
	return table, false, err
}
