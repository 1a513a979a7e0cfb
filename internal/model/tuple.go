package model

import "time"

// TupleRecord describes a found constellation stored in ClickHouse and the
// tuples file.
type TupleRecord struct {
	ID         string
	Network    Network
	JobID      string
	Height     uint32
	Length     uint8
	Pattern    string
	Base       string
	Difficulty float64
	FoundAt    time.Time
}
