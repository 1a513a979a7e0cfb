package riecoin

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	// targetShift is the bit position of the leading one of the target
	// before scaling by difficulty.
	targetShift = 264
	// offsetShift is the difficulty at which the target is used unscaled.
	offsetShift = targetShift + 1
	// MinDifficulty is the lowest difficulty a header can encode offsets for.
	MinDifficulty = offsetShift
)

var (
	ErrOffsetNegative = errors.New("base is below the target")
	ErrOffsetTooLarge = errors.New("offset exceeds the range allowed by the difficulty")
)

// Difficulty decodes the compact bits of a header. The compact value is the
// difficulty times 256.
func Difficulty(bits uint32) float64 {
	d := new(big.Float).SetInt(blockchain.CompactToBig(bits))
	d.Quo(d, big.NewFloat(256))
	f, _ := d.Float64()
	return f
}

// hashInt reads the hash as a little-endian integer.
func hashInt(h chainhash.Hash) *big.Int {
	var be [chainhash.HashSize]byte
	for i := range h {
		be[chainhash.HashSize-1-i] = h[i]
	}
	return new(big.Int).SetBytes(be[:])
}

// Target derives the smallest acceptable base from the proof of work hash:
// (2^264 + H) * 2^(D-265), shifted right when D < 265.
func Target(hash chainhash.Hash, difficulty uint64) *big.Int {
	t := new(big.Int).Lsh(big.NewInt(1), targetShift)
	t.Add(t, hashInt(hash))
	if difficulty >= offsetShift {
		return t.Lsh(t, uint(difficulty-offsetShift))
	}
	return t.Rsh(t, uint(offsetShift-difficulty))
}

// OffsetLimit is the exclusive upper bound of offsets at difficulty.
func OffsetLimit(difficulty uint64) *big.Int {
	if difficulty <= offsetShift {
		return big.NewInt(1)
	}
	return new(big.Int).Lsh(big.NewInt(1), uint(difficulty-offsetShift))
}

// EncodeOffset returns base - target as the little-endian header offset.
func EncodeOffset(base, target *big.Int, difficulty uint64) ([32]byte, error) {
	var out [32]byte
	offset := new(big.Int).Sub(base, target)
	if offset.Sign() < 0 {
		return out, ErrOffsetNegative
	}
	if offset.Cmp(OffsetLimit(difficulty)) >= 0 || offset.BitLen() > 256 {
		return out, fmt.Errorf("%w: %d bits at difficulty %d", ErrOffsetTooLarge, offset.BitLen(), difficulty)
	}
	be := offset.FillBytes(make([]byte, 32))
	for i := range be {
		out[31-i] = be[i]
	}
	return out, nil
}

// DecodeOffset reads a little-endian header offset.
func DecodeOffset(offset [32]byte) *big.Int {
	return hashInt(chainhash.Hash(offset))
}
