// Package rpcclient wraps the btcd RPC client with metrics and the Riecoin
// mining calls.
package rpcclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/rpcclient"
)

// ErrBlockRejected is returned when submitblock answers with a reason.
var ErrBlockRejected = errors.New("block rejected")

// TemplateTransaction is a transaction of a block template.
type TemplateTransaction struct {
	Data string `json:"data"`
	TxID string `json:"txid"`
	Hash string `json:"hash"`
}

// BlockTemplate is the getblocktemplate answer of a Riecoin node.
type BlockTemplate struct {
	Version                  int32                 `json:"version"`
	PreviousBlockHash        string                `json:"previousblockhash"`
	Transactions             []TemplateTransaction `json:"transactions"`
	CoinbaseValue            int64                 `json:"coinbasevalue"`
	Bits                     string                `json:"bits"`
	CurTime                  int64                 `json:"curtime"`
	Height                   int64                 `json:"height"`
	DefaultWitnessCommitment string                `json:"default_witness_commitment"`
}

// Config holds the node connection settings.
type Config struct {
	Host     string
	User     string
	Password string
}

// New connects to a node in HTTP POST mode.
func New(cfg Config) (*rpcclient.Client, error) {
	client, err := rpcclient.New(&rpcclient.ConnConfig{
		Host:         cfg.Host,
		User:         cfg.User,
		Pass:         cfg.Password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("create rpc client: %w", err)
	}
	return client, nil
}

type ObservedClient struct {
	client     Client
	rpcMetrics RPCMetrics
}

func NewObservedClient(client Client, rpcMetrics RPCMetrics) *ObservedClient {
	return &ObservedClient{
		client:     client,
		rpcMetrics: rpcMetrics,
	}
}

func (r *ObservedClient) GetMiningInfo() (res *btcjson.GetMiningInfoResult, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_mining_info", err, started)
	}()
	return r.client.GetMiningInfo()
}

func (r *ObservedClient) GetBlockTemplate(rules []string) (res *BlockTemplate, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_template", err, started)
	}()

	param, err := json.Marshal(map[string]any{"rules": rules})
	if err != nil {
		return nil, err
	}
	raw, err := r.client.RawRequest("getblocktemplate", []json.RawMessage{param})
	if err != nil {
		return nil, err
	}
	res = &BlockTemplate{}
	if err = json.Unmarshal(raw, res); err != nil {
		return nil, fmt.Errorf("decode block template: %w", err)
	}
	return res, nil
}

// SubmitBlock sends a hex encoded block. A non-null answer is a rejection
// reason.
func (r *ObservedClient) SubmitBlock(blockHex string) (err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("submit_block", err, started)
	}()

	param, err := json.Marshal(blockHex)
	if err != nil {
		return err
	}
	raw, err := r.client.RawRequest("submitblock", []json.RawMessage{param})
	if err != nil {
		return err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var reason string
	if jsonErr := json.Unmarshal(raw, &reason); jsonErr != nil {
		reason = string(raw)
	}
	return fmt.Errorf("%w: %s", ErrBlockRejected, reason)
}
