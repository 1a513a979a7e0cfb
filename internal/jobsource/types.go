package jobsource

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/btcjson"

	"github.com/goodnatureofminers/rieminer7000/internal/miner"
	"github.com/goodnatureofminers/rieminer7000/internal/model"
	"github.com/goodnatureofminers/rieminer7000/internal/pkg/btcd/rpcclient"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Coordinator interface {
		InstallJob(job *model.Job) uint64
		ObserveDifficulty(difficulty float64) bool
	}
	NodeClient interface {
		GetBlockTemplate(rules []string) (*rpcclient.BlockTemplate, error)
		GetMiningInfo() (*btcjson.GetMiningInfoResult, error)
		SubmitBlock(blockHex string) error
	}
	Recorder interface {
		Record(ctx context.Context, s model.Submission) error
	}
	Progress interface {
		Stats() miner.Snapshot
	}
	Metrics interface {
		ObserveRefresh(err error, started time.Time)
		ObserveJob(job *model.Job)
		ObserveSignal()
	}
)
