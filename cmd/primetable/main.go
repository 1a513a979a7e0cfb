// Command primetable writes the table of sieving primes used by rieminer.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/rieminer7000/internal/primetable"
)

type config struct {
	Limit  uint64 `long:"limit" env:"RIEMINER_PRIMETABLE_LIMIT" default:"67108864" description:"primes up to this bound are written"`
	Output string `long:"output" env:"RIEMINER_PRIMETABLE_OUTPUT" default:"PrimeTable64.bin" description:"table file, little-endian uint64 values"`
}

func main() {
	cfg := config{}

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal("prime table generation failed", zap.Error(err))
	}
}

func run(cfg config, logger *zap.Logger) error {
	started := time.Now()
	table, err := primetable.Generate(cfg.Limit)
	if err != nil {
		return err
	}
	logger.Info("primes generated",
		zap.Int("primes", len(table)),
		zap.Uint64("limit", cfg.Limit),
		zap.Duration("took", time.Since(started)),
	)

	if err := primetable.Save(cfg.Output, table); err != nil {
		return fmt.Errorf("save %s: %w", cfg.Output, err)
	}
	logger.Info("prime table written", zap.String("file", cfg.Output))
	return nil
}
