package coordinator

import (
	"context"
	"time"

	"github.com/goodnatureofminers/rieminer7000/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Submitter delivers qualifying results to the network. Retries are its
	// own concern.
	Submitter interface {
		Submit(ctx context.Context, s model.Submission) error
	}
	Metrics interface {
		ObserveInstall(generation uint64)
		ObserveSubmit(err error, length int, started time.Time)
	}
)
