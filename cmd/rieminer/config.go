package main

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strconv"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/goodnatureofminers/rieminer7000/internal/constellation"
	"github.com/goodnatureofminers/rieminer7000/internal/miner"
	"github.com/goodnatureofminers/rieminer7000/internal/model"
	"github.com/goodnatureofminers/rieminer7000/internal/verifier"
)

const defaultConfigFile = "rieMiner.conf"

type mode string

const (
	modeBenchmark mode = "Benchmark"
	modeSearch    mode = "Search"
	modeSolo      mode = "Solo"
)

type config struct {
	Config string `long:"config" env:"RIEMINER_CONFIG" default:"rieMiner.conf" no-ini:"true" description:"configuration file with key = value lines, command line flags take precedence"`
	Mode   mode   `long:"mode" env:"RIEMINER_MODE" default:"Benchmark" choice:"Benchmark" choice:"Search" choice:"Solo" description:"mining mode"`

	Threads                 int     `long:"threads" env:"RIEMINER_THREADS" description:"worker threads, defaults to the number of CPUs"`
	SieveWorkers            int     `long:"sieve-workers" env:"RIEMINER_SIEVE_WORKERS" description:"threads sieving, defaults to a quarter of the threads"`
	TupleLengthMin          int     `long:"tuple-length-min" env:"RIEMINER_TUPLE_LENGTH_MIN" description:"shortest tuple to report, defaults to the pattern length and one less in Search mode"`
	PrimorialNumber         int     `long:"primorial-number" env:"RIEMINER_PRIMORIAL_NUMBER" default:"40" description:"number of primes in the primorial"`
	PrimeTableLimit         uint64  `long:"prime-table-limit" env:"RIEMINER_PRIME_TABLE_LIMIT" default:"67108864" description:"upper bound of the sieving primes"`
	PrimeTableFile          string  `long:"prime-table-file" env:"RIEMINER_PRIME_TABLE_FILE" default:"PrimeTable64.bin" description:"prime table file, generated when missing or too small"`
	UseAvx2                 bool    `long:"use-avx2" env:"RIEMINER_USE_AVX2" description:"use the batched sieve kernel when the CPU supports AVX2"`
	SieveBits               int     `long:"sieve-bits" env:"RIEMINER_SIEVE_BITS" default:"25" description:"log2 of the segment span"`
	SieveSize               uint64  `long:"sieve-size" env:"RIEMINER_SIEVE_SIZE" description:"positions per offset and job, defaults to span times sieve workers"`
	SieveWords              uint64  `long:"sieve-words" env:"RIEMINER_SIEVE_WORDS" description:"64 bit words per segment, must match sieve bits"`
	SieveIterations         uint64  `long:"sieve-iterations" env:"RIEMINER_SIEVE_ITERATIONS" default:"16" description:"sieve passes per job"`
	Pattern                 string  `long:"pattern" env:"RIEMINER_PATTERN" default:"0,2,4,2,4,6,2" description:"constellation pattern as offset differences"`
	PrimorialOffsets        string  `long:"primorial-offsets" env:"RIEMINER_PRIMORIAL_OFFSETS" description:"comma separated primorial offsets, defaults to the known offsets of the pattern"`
	RestartDifficultyFactor float64 `long:"restart-difficulty-factor" env:"RIEMINER_RESTART_DIFFICULTY_FACTOR" default:"1.05" description:"difficulty growth that supersedes the current job"`
	PrimalityTest           string  `long:"primality-test" env:"RIEMINER_PRIMALITY_TEST" default:"fermat" choice:"fermat" choice:"probable" description:"primality test of the verifiers"`
	QueueSize               int     `long:"queue-size" env:"RIEMINER_QUEUE_SIZE" default:"65536" description:"candidate queue capacity"`

	Network         model.Network `long:"network" env:"RIEMINER_NETWORK" default:"mainnet" choice:"mainnet" choice:"testnet" description:"node network in Solo mode"`
	Host            string        `long:"host" env:"RIEMINER_HOST" default:"127.0.0.1" description:"node RPC host"`
	Port            int           `long:"port" env:"RIEMINER_PORT" default:"28332" description:"node RPC port"`
	Username        string        `long:"username" env:"RIEMINER_USERNAME" description:"node RPC username"`
	Password        string        `long:"password" env:"RIEMINER_PASSWORD" description:"node RPC password"`
	PayoutAddress   string        `long:"payout-address" env:"RIEMINER_PAYOUT_ADDRESS" description:"address receiving the block reward"`
	Secret          string        `long:"secret" env:"RIEMINER_SECRET" default:"/rM0.92/" description:"tag written in the coinbase"`
	RefreshInterval time.Duration `long:"refresh-interval" env:"RIEMINER_REFRESH_INTERVAL" default:"30s" description:"block template polling interval"`
	ZMQAddr         string        `long:"zmq-addr" env:"RIEMINER_ZMQ_ADDR" description:"node hashblock notification endpoint"`

	Difficulty               float64       `long:"difficulty" env:"RIEMINER_DIFFICULTY" default:"1024" description:"difficulty of synthetic jobs"`
	BenchmarkBlockInterval   time.Duration `long:"benchmark-block-interval" env:"RIEMINER_BENCHMARK_BLOCK_INTERVAL" default:"150s" description:"time between synthetic blocks"`
	BenchmarkTimeLimit       time.Duration `long:"benchmark-time-limit" env:"RIEMINER_BENCHMARK_TIME_LIMIT" default:"86400s" description:"benchmark duration, 0 for none"`
	BenchmarkPrimeCountLimit uint64        `long:"benchmark-prime-count-limit" env:"RIEMINER_BENCHMARK_PRIME_COUNT_LIMIT" default:"1000000" description:"stop the benchmark after this many primes, 0 for none"`

	TuplesFile    string        `long:"tuples-file" env:"RIEMINER_TUPLES_FILE" default:"Tuples.txt" description:"file receiving found tuples, empty to disable"`
	ClickhouseDSN string        `long:"clickhouse-dsn" env:"RIEMINER_CLICKHOUSE_DSN" description:"ClickHouse DSN receiving found tuples"`
	MetricsAddr   string        `long:"metrics-addr" env:"RIEMINER_METRICS_ADDR" default:":2112" description:"address for metrics and stats, empty to disable"`
	StatsInterval time.Duration `long:"stats-interval" env:"RIEMINER_STATS_INTERVAL" default:"10s" description:"statistics log interval"`
	Debug         bool          `long:"debug" env:"RIEMINER_DEBUG" description:"debug logging"`
	LogJSON       bool          `long:"log-json" env:"RIEMINER_LOG_JSON" description:"JSON logs"`
}

// parseConfig reads the configuration file named by --config, then the
// command line.
func parseConfig(args []string) (config, error) {
	var pre struct {
		Config string `long:"config" env:"RIEMINER_CONFIG" default:"rieMiner.conf"`
	}
	if _, err := flags.NewParser(&pre, flags.IgnoreUnknown).ParseArgs(args); err != nil {
		return config{}, err
	}

	var cfg config
	parser := flags.NewParser(&cfg, flags.Default)
	if err := flags.NewIniParser(parser).ParseFile(pre.Config); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || pre.Config != defaultConfigFile {
			return config{}, fmt.Errorf("read %s: %w", pre.Config, err)
		}
	}
	if _, err := parser.ParseArgs(args); err != nil {
		return config{}, err
	}
	return cfg, nil
}

// params converts the options into miner params. The result is not
// normalized yet.
func (c config) params() (miner.Params, error) {
	pattern, err := constellation.ParsePattern(c.Pattern)
	if err != nil {
		return miner.Params{}, &miner.ConfigError{Field: "pattern", Reason: err.Error()}
	}
	var offsets []uint64
	if c.PrimorialOffsets != "" {
		offsets, err = constellation.ParseOffsets(c.PrimorialOffsets)
		if err != nil {
			return miner.Params{}, &miner.ConfigError{Field: "primorialOffsets", Reason: err.Error()}
		}
	}
	test, err := verifier.ParseTest(c.PrimalityTest)
	if err != nil {
		return miner.Params{}, &miner.ConfigError{Field: "primalityTest", Reason: err.Error()}
	}

	tupleLengthMin := c.TupleLengthMin
	if tupleLengthMin == 0 && c.Mode == modeSearch {
		tupleLengthMin = max(1, pattern.Len()-1)
	}
	return miner.Params{
		Threads:                 c.Threads,
		SieveWorkers:            c.SieveWorkers,
		TupleLengthMin:          tupleLengthMin,
		PrimorialNumber:         c.PrimorialNumber,
		PrimeTableLimit:         c.PrimeTableLimit,
		UseAvx2:                 c.UseAvx2,
		SieveBits:               c.SieveBits,
		SieveSize:               c.SieveSize,
		SieveWords:              c.SieveWords,
		SieveIterations:         c.SieveIterations,
		Pattern:                 pattern,
		PrimorialOffsets:        offsets,
		RestartDifficultyFactor: c.RestartDifficultyFactor,
		PrimalityTest:           test,
		QueueSize:               c.QueueSize,
	}, nil
}

// network is the label of the jobs mined in this mode.
func (c config) network() model.Network {
	if c.Mode == modeSolo {
		return c.Network
	}
	return model.Benchmark
}

func (c config) rpcHost() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
