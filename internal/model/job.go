package model

import (
	"math/big"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/rieminer7000/internal/constellation"
)

// Job is one unit of mining work. It is immutable once installed; a new
// block or template always produces a new Job.
type Job struct {
	ID       string
	Network  Network
	Height   uint32
	BaseHash chainhash.Hash
	// Target is the smallest acceptable base value.
	Target     *big.Int
	Difficulty float64
	// MinLength is the shortest tuple worth submitting.
	MinLength     int
	Constellation *constellation.Constellation
	CreatedAt     time.Time
	// Payload carries source specific data needed to submit a result.
	Payload any
}

// Result is a verified run reported by a verifier worker.
type Result struct {
	Generation  uint64
	Base        *big.Int
	Length      int
	OffsetIndex int
}

// Submission is a qualifying result forwarded to the submission collaborator.
type Submission struct {
	Job        *Job
	Generation uint64
	Base       *big.Int
	Length     int
	FoundAt    time.Time
}
