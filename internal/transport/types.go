// Package transport exposes the miner state over HTTP.
package transport

import "github.com/goodnatureofminers/rieminer7000/internal/miner"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	StatsSource interface {
		Stats() miner.Snapshot
	}
)
