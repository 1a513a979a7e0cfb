package miner

import (
	"context"
	"time"

	"github.com/goodnatureofminers/rieminer7000/internal/coordinator"
	"github.com/goodnatureofminers/rieminer7000/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Coordinator interface {
		Current() (*coordinator.Work, bool)
		Generation() uint64
		Wait(ctx context.Context, generation uint64) error
		ReportResult(ctx context.Context, r model.Result) bool
		Counters() coordinator.Counters
	}
	Metrics interface {
		ObserveSegment(candidates int, started time.Time)
		ObserveVerify(length int, err error, started time.Time)
	}
)
