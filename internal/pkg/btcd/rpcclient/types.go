package rpcclient

import (
	"encoding/json"
	"time"

	"github.com/btcsuite/btcd/btcjson"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
	// Client is the subset of the btcd rpcclient used by the miner.
	Client interface {
		RawRequest(method string, params []json.RawMessage) (json.RawMessage, error)
		GetMiningInfo() (*btcjson.GetMiningInfoResult, error)
	}
)
