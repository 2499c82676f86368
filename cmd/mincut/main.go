package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/lintang-b-s/prmincut/pkg/graphio"
	"github.com/lintang-b-s/prmincut/pkg/logger"
	"github.com/lintang-b-s/prmincut/pkg/solver"
	"github.com/lintang-b-s/prmincut/pkg/util"
	"go.uber.org/zap"
)

var (
	configFile = flag.String("config", "", "config file, default ./data/config.yaml or ./config.yaml")
	maxLevel   = flag.Int("max_level", 4, "highest padberg-rinaldi test level, 0..4")
	epsilon    = flag.Float64("epsilon", 1e-9, "absolute tolerance of weight comparisons")
	seed       = flag.Uint64("seed", 1, "seed of the source node choice")
	oracle     = flag.String("oracle", util.ORACLE_PUSH_RELABEL, "min s-t cut oracle: push_relabel or dinic")
	workers    = flag.Int("workers", 4, "graphs solved concurrently")
	logLevel   = flag.String("log_level", "info", "debug, info, warn or error")
	cutoff     = flag.Float64("cutoff", 0, "print every cut found lighter than cutoff, 0 disables")
	verifyCut  = flag.Bool("verify", false, "recompute the weight of every reported cut")
)

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] graph-file...\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := logger.NewWithLevel(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	graphs, err := graphio.ReadAll(ctx, flag.Args())
	if err != nil {
		logger.Fatal("reading graphs", zap.Error(err))
	}

	opts := solver.OptionsFromConfig(cfg, logger)
	if cfg.Cutoff > 0 {
		opts.OnCut = func(name string, value float64, members []uint32) {
			logger.Info("cut below cutoff", zap.String("graph", name), zap.Float64("value", value),
				zap.Int("size", len(members)))
		}
	}

	failed := false
	for _, res := range solver.SolveAll(ctx, graphs, opts, cfg.Workers) {
		if res.Err != nil {
			logger.Error("min cut failed", zap.String("graph", res.Name), zap.Error(res.Err))
			failed = true
			continue
		}
		fmt.Println(formatResult(res))
	}
	if failed {
		os.Exit(1)
	}
}

// loadConfig reads the config file, then applies the flags given on the command line.
func loadConfig() (*util.Config, error) {
	var (
		cfg *util.Config
		err error
	)
	if *configFile != "" {
		cfg, err = util.ReadConfigFile(*configFile)
	} else {
		cfg, err = util.ReadConfig()
	}
	if err != nil {
		return nil, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "max_level":
			cfg.MaxLevel = *maxLevel
		case "epsilon":
			cfg.Epsilon = *epsilon
		case "seed":
			cfg.Seed = *seed
		case "oracle":
			cfg.Oracle = *oracle
		case "workers":
			cfg.Workers = *workers
		case "log_level":
			cfg.LogLevel = *logLevel
		case "cutoff":
			cfg.Cutoff = *cutoff
		case "verify":
			cfg.Verify = *verifyCut
		}
	})
	return cfg, cfg.Validate()
}

// formatResult prints "file value size members...".
func formatResult(res *solver.Result) string {
	var sb strings.Builder
	sb.WriteString(res.Name)
	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatFloat(res.Value, 'g', -1, 64))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(len(res.Members)))
	for _, m := range res.Members {
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatUint(uint64(m), 10))
	}
	return sb.String()
}
