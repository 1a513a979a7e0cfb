// Command rieminer mines Riecoin prime constellations, benchmarks the search
// or looks for record tuples.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/google/uuid"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/goodnatureofminers/rieminer7000/internal/constellation"
	"github.com/goodnatureofminers/rieminer7000/internal/coordinator"
	"github.com/goodnatureofminers/rieminer7000/internal/jobsource"
	"github.com/goodnatureofminers/rieminer7000/internal/metrics"
	"github.com/goodnatureofminers/rieminer7000/internal/miner"
	"github.com/goodnatureofminers/rieminer7000/internal/model"
	"github.com/goodnatureofminers/rieminer7000/internal/pkg/btcd/rpcclient"
	"github.com/goodnatureofminers/rieminer7000/internal/primetable"
	"github.com/goodnatureofminers/rieminer7000/internal/recorder"
	"github.com/goodnatureofminers/rieminer7000/internal/repository/clickhouse"
	"github.com/goodnatureofminers/rieminer7000/internal/riecoin"
	"github.com/goodnatureofminers/rieminer7000/internal/transport"
	"github.com/goodnatureofminers/rieminer7000/pkg/batcher"
)

var recordBatch = batcher.Config{
	FlushSize:     64,
	FlushInterval: time.Second,
	RPS:           10,
}

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := newLogger(cfg)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("rieminer failed", zap.Error(err))
	}
}

func newLogger(cfg config) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	if cfg.LogJSON {
		zc = zap.NewProductionConfig()
	}
	level := zapcore.InfoLevel
	if cfg.Debug {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	params, err := cfg.params()
	if err != nil {
		return err
	}
	if err := params.Normalize(); err != nil {
		return err
	}

	started := time.Now()
	table, loaded, err := primetable.LoadOrGenerate(cfg.PrimeTableFile, params.PrimeTableLimit)
	if err != nil {
		return fmt.Errorf("prime table: %w", err)
	}
	logger.Info("prime table ready",
		zap.Int("primes", len(table)),
		zap.Uint64("limit", params.PrimeTableLimit),
		zap.Bool("fromFile", loaded),
		zap.Duration("took", time.Since(started)),
	)
	c, err := miner.NewConstellation(params, table)
	if err != nil {
		return err
	}

	network := cfg.network()
	logger = logger.With(zap.String("mode", string(cfg.Mode)), zap.String("network", string(network)))
	logger.Info("starting",
		zap.Stringer("pattern", params.Pattern),
		zap.Int("threads", params.Threads),
		zap.Int("sieveWorkers", params.SieveWorkers),
		zap.Int("tupleLengthMin", params.TupleLengthMin),
		zap.Int("primorialNumber", params.PrimorialNumber),
		zap.Int("primorialOffsets", len(params.PrimorialOffsets)),
		zap.Int("sieveBits", params.SieveBits),
		zap.Uint64("sieveSize", params.SieveSize),
		zap.Stringer("primalityTest", params.PrimalityTest),
	)

	rec, closeRepo, err := newRecorder(cfg, network, logger)
	if err != nil {
		return err
	}
	defer closeRepo()
	rec.Start(context.WithoutCancel(ctx))
	defer rec.Stop()

	var (
		submitter coordinator.Submitter
		node      *rpcclient.ObservedClient
	)
	if cfg.Mode == modeSolo {
		client, err := rpcclient.New(rpcclient.Config{Host: cfg.rpcHost(), User: cfg.Username, Password: cfg.Password})
		if err != nil {
			return err
		}
		defer func() {
			client.Shutdown()
			client.WaitForShutdown()
		}()
		node = rpcclient.NewObservedClient(client, metrics.NewRPCClient(network))
		submitter = jobsource.NewBlockSubmitter(logger.Named("submitter"), node, rec)
	} else {
		submitter = jobsource.NewTally(logger.Named("tally"), rec, params.Pattern.Len())
	}

	minerMetrics := metrics.NewMiner(network)
	coord := coordinator.New(logger.Named("coordinator"), minerMetrics, submitter, params.RestartDifficultyFactor)
	pool, err := miner.NewPool(ctx, logger.Named("miner"), params, c, table, coord, minerMetrics)
	if err != nil {
		return err
	}
	prometheus.MustRegister(metrics.NewStatsCollector(pool))

	var source interface{ Run(context.Context) error }
	sourceMetrics := metrics.NewJobSource(network)
	if cfg.Mode == modeSolo {
		source, err = newNodeSource(ctx, cfg, params, c, node, coord, sourceMetrics, logger)
	} else {
		source, err = jobsource.NewSynthetic(logger.Named("jobs"), syntheticConfig(cfg, params), c, coord, pool, sourceMetrics)
	}
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return coord.Run(gctx) })
	g.Go(func() error { return pool.Run(gctx) })
	g.Go(func() error { return source.Run(gctx) })
	g.Go(func() error {
		return miner.NewReporter(logger.Named("stats"), pool, cfg.StatsInterval, params.Pattern.Len()).Run(gctx)
	})
	if cfg.MetricsAddr != "" {
		mux := transport.NewMux(transport.NewStatsHandler(logger.Named("http"), pool, params.Pattern.Len()))
		g.Go(func() error { return transport.Serve(gctx, cfg.MetricsAddr, mux, logger.Named("http")) })
	}

	err = g.Wait()
	if errors.Is(err, jobsource.ErrFinished) {
		logFinalStats(logger, pool.Stats(), params.Pattern.Len())
		return nil
	}
	return err
}

func newRecorder(cfg config, network model.Network, logger *zap.Logger) (*recorder.Recorder, func(), error) {
	var repo recorder.Repository
	closeRepo := func() {}
	if cfg.ClickhouseDSN != "" {
		r, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
		if err != nil {
			return nil, nil, fmt.Errorf("init repository: %w", err)
		}
		repo = r
		closeRepo = func() {
			if err := r.Close(); err != nil {
				logger.Warn("close repository", zap.Error(err))
			}
		}
	}
	rec := recorder.New(logger.Named("recorder"), recorder.Config{
		TuplesFile: cfg.TuplesFile,
		Batch:      recordBatch,
	}, repo, metrics.NewRecorder(network))
	return rec, closeRepo, nil
}

func newNodeSource(
	ctx context.Context,
	cfg config,
	params miner.Params,
	c *constellation.Constellation,
	client *rpcclient.ObservedClient,
	coord *coordinator.Coordinator,
	sourceMetrics *metrics.JobSource,
	logger *zap.Logger,
) (*jobsource.Node, error) {
	chainParams, err := riecoin.Params(cfg.Network)
	if err != nil {
		return nil, err
	}
	if cfg.PayoutAddress == "" {
		return nil, errors.New("payout address is required in Solo mode")
	}
	payout, err := btcutil.DecodeAddress(cfg.PayoutAddress, chainParams)
	if err != nil {
		return nil, fmt.Errorf("decode payout address: %w", err)
	}
	if !payout.IsForNet(chainParams) {
		return nil, fmt.Errorf("payout address %s is not a %s address", cfg.PayoutAddress, cfg.Network)
	}
	if params.TupleLengthMin < params.Pattern.Len() {
		logger.Warn("shorter tuples are reported but only full tuples make blocks",
			zap.Int("tupleLengthMin", params.TupleLengthMin))
	}

	blocks, err := jobsource.StartBlockSignal(ctx, cfg.ZMQAddr, logger.Named("zmq"))
	if err != nil {
		return nil, err
	}
	return jobsource.NewNode(logger.Named("node"), jobsource.NodeConfig{
		Network:         cfg.Network,
		Payout:          payout,
		Secret:          cfg.Secret,
		RefreshInterval: cfg.RefreshInterval,
	}, c, client, coord, sourceMetrics, blocks)
}

func syntheticConfig(cfg config, params miner.Params) jobsource.SyntheticConfig {
	sc := jobsource.SyntheticConfig{
		Network:    model.Benchmark,
		Difficulty: cfg.Difficulty,
		MinLength:  params.TupleLengthMin,
	}
	if cfg.Mode == modeBenchmark {
		sc.BlockInterval = cfg.BenchmarkBlockInterval
		sc.TimeLimit = cfg.BenchmarkTimeLimit
		sc.PrimeCountLimit = cfg.BenchmarkPrimeCountLimit
		return sc
	}
	// Each search starts from its own region.
	id := uuid.Must(uuid.NewV7())
	sc.Seed = chainhash.DoubleHashH(id[:])
	return sc
}

func logFinalStats(logger *zap.Logger, s miner.Snapshot, length int) {
	logger.Info("benchmark finished",
		zap.Duration("elapsed", s.Elapsed.Truncate(time.Second)),
		zap.Float64("candidatesPerSecond", s.CandidatesPerSecond()),
		zap.Float64("ratio", s.Ratio()),
		zap.String("tuples", miner.FormatRuns(s)),
		zap.Duration("estimatedBlockTime", s.EstimatedTupleTime(length).Truncate(time.Second)),
	)
}
