package recorder

import (
	"context"
	"time"

	"github.com/goodnatureofminers/rieminer7000/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Repository interface {
		InsertTuples(ctx context.Context, tuples []model.TupleRecord) error
	}
	Metrics interface {
		ObserveFlush(sink string, records int, err error, started time.Time)
	}
)
