package jobsource

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/rieminer7000/internal/clock"
	"github.com/goodnatureofminers/rieminer7000/internal/constellation"
	"github.com/goodnatureofminers/rieminer7000/internal/model"
	"github.com/goodnatureofminers/rieminer7000/internal/pkg/btcd/rpcclient"
	"github.com/goodnatureofminers/rieminer7000/internal/riecoin"
	"github.com/goodnatureofminers/rieminer7000/pkg/safe"
)

var templateRules = []string{"segwit"}

// BlockWork is the job payload of node jobs.
type BlockWork struct {
	Header       riecoin.Header
	Transactions []*wire.MsgTx
}

// NodeConfig configures solo mining against a node.
type NodeConfig struct {
	Network         model.Network
	Payout          btcutil.Address
	Secret          string
	RefreshInterval time.Duration
}

// Node polls a Riecoin node for block templates and turns them into jobs.
type Node struct {
	logger        *zap.Logger
	cfg           NodeConfig
	constellation *constellation.Constellation
	client        NodeClient
	coord         Coordinator
	metrics       Metrics
	signal        <-chan struct{}
	wait          func(context.Context, time.Duration, <-chan struct{}) (bool, error)
	current       string
}

// NewNode creates a node source. signal may be nil; a value on it triggers
// an immediate refresh.
func NewNode(
	logger *zap.Logger,
	cfg NodeConfig,
	c *constellation.Constellation,
	client NodeClient,
	coord Coordinator,
	metrics Metrics,
	signal <-chan struct{},
) (*Node, error) {
	if client == nil {
		return nil, errors.New("node client is required")
	}
	if coord == nil {
		return nil, errors.New("coordinator is required")
	}
	if metrics == nil {
		return nil, errors.New("job source metrics is required")
	}
	if cfg.Payout == nil {
		return nil, errors.New("payout address is required")
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = 30 * time.Second
	}
	return &Node{
		logger:        logger.With(zap.String("network", string(cfg.Network))),
		cfg:           cfg,
		constellation: c,
		client:        client,
		coord:         coord,
		metrics:       metrics,
		signal:        signal,
		wait:          clock.WaitOrSignal,
	}, nil
}

// Run refreshes the job until ctx is canceled.
func (n *Node) Run(ctx context.Context) error {
	for {
		if err := n.refresh(); err != nil {
			n.logger.Warn("refresh failed", zap.Error(err), zap.Duration("retry", n.cfg.RefreshInterval))
		}
		signaled, err := n.wait(ctx, n.cfg.RefreshInterval, n.signal)
		if err != nil {
			return nil
		}
		if signaled {
			n.metrics.ObserveSignal()
			n.logger.Debug("block notification")
		}
	}
}

func (n *Node) refresh() (err error) {
	started := time.Now()
	defer func() {
		n.metrics.ObserveRefresh(err, started)
	}()

	info, err := n.client.GetMiningInfo()
	if err != nil {
		return fmt.Errorf("get mining info: %w", err)
	}
	if n.coord.ObserveDifficulty(info.Difficulty) {
		n.logger.Info("difficulty increased, job superseded", zap.Float64("difficulty", info.Difficulty))
		n.current = ""
	}

	tmpl, err := n.client.GetBlockTemplate(templateRules)
	if err != nil {
		return fmt.Errorf("get block template: %w", err)
	}
	key := templateKey(tmpl)
	if key == n.current {
		return nil
	}

	job, err := n.jobFromTemplate(tmpl)
	if err != nil {
		return err
	}
	generation := n.coord.InstallJob(job)
	n.current = key
	n.metrics.ObserveJob(job)
	n.logger.Info("new job",
		zap.String("job", job.ID),
		zap.Uint32("height", job.Height),
		zap.Float64("difficulty", job.Difficulty),
		zap.Int("transactions", len(tmpl.Transactions)),
		zap.Uint64("generation", generation),
	)
	return nil
}

func (n *Node) jobFromTemplate(tmpl *rpcclient.BlockTemplate) (*model.Job, error) {
	prev, err := chainhash.NewHashFromStr(tmpl.PreviousBlockHash)
	if err != nil {
		return nil, fmt.Errorf("parse previous block hash: %w", err)
	}
	bits, err := strconv.ParseUint(tmpl.Bits, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("parse bits: %w", err)
	}
	height, err := safe.Uint32(tmpl.Height)
	if err != nil || height == 0 || height > math.MaxInt32 {
		return nil, fmt.Errorf("invalid template height %d", tmpl.Height)
	}
	curTime, err := safe.Uint64(tmpl.CurTime)
	if err != nil {
		return nil, fmt.Errorf("invalid template time: %w", err)
	}

	raw := make([]string, len(tmpl.Transactions))
	for i, tx := range tmpl.Transactions {
		raw[i] = tx.Data
	}
	txs, err := riecoin.DecodeTransactions(raw)
	if err != nil {
		return nil, err
	}
	commitment, err := hex.DecodeString(tmpl.DefaultWitnessCommitment)
	if err != nil {
		return nil, fmt.Errorf("decode witness commitment: %w", err)
	}
	coinbase, err := riecoin.Coinbase{
		Height:            int32(height),
		Value:             tmpl.CoinbaseValue,
		Payout:            n.cfg.Payout,
		Secret:            n.cfg.Secret,
		WitnessCommitment: commitment,
	}.Build()
	if err != nil {
		return nil, err
	}

	all := append([]*wire.MsgTx{coinbase}, txs...)
	header := riecoin.Header{
		Version:    tmpl.Version,
		PrevBlock:  *prev,
		MerkleRoot: riecoin.MerkleRoot(all),
		Bits:       uint32(bits),
		Timestamp:  curTime,
	}
	hash := header.PowHash()
	difficulty := riecoin.Difficulty(header.Bits)
	if difficulty < 1 {
		return nil, fmt.Errorf("template difficulty %g is below 1", difficulty)
	}

	return &model.Job{
		ID:            templateKey(tmpl),
		Network:       n.cfg.Network,
		Height:        height,
		BaseHash:      hash,
		Target:        riecoin.Target(hash, uint64(difficulty)),
		Difficulty:    difficulty,
		MinLength:     n.constellation.Pattern.Len(),
		Constellation: n.constellation,
		CreatedAt:     time.Now(),
		Payload:       &BlockWork{Header: header, Transactions: all},
	}, nil
}

// templateKey identifies the block a template builds on. Templates for the
// same block share a job.
func templateKey(tmpl *rpcclient.BlockTemplate) string {
	return fmt.Sprintf("%d-%s", tmpl.Height, tmpl.PreviousBlockHash)
}
