// Package matchenv parses the matchenv command flags and runs one
// clustering or motif-matching pass over a frame file.
package matchenv

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/katalvlaran/envmatch/internal/config"
	"github.com/katalvlaran/envmatch/matchenv"
	"github.com/katalvlaran/envmatch/snapshot"
)

// ErrUsage indicates a command line that cannot be run.
var ErrUsage = errors.New("usage error")

// Config holds the matchenv command configuration.
type Config struct {
	Input      string  `env:"ENVMATCH_INPUT"`
	Output     string  `env:"ENVMATCH_OUTPUT"`
	Mode       string  `env:"ENVMATCH_MODE" envDefault:"cluster"`
	RMax       float64 `env:"ENVMATCH_RMAX" envDefault:"1.5"`
	Neighbors  int     `env:"ENVMATCH_NEIGHBORS" envDefault:"12"`
	Threshold  float64 `env:"ENVMATCH_THRESHOLD" envDefault:"0.1"`
	HardRadius bool    `env:"ENVMATCH_HARD_RADIUS"`
	Workers    int     `env:"ENVMATCH_WORKERS"`
	LogFormat  string  `env:"ENVMATCH_LOG_FORMAT" envDefault:"text"`
	LogLevel   string  `env:"ENVMATCH_LOG_LEVEL" envDefault:"info"`
}

// ParseConfig parses environment and flags into a Config. Flags win over the
// environment. A single positional argument is taken as the input path when
// -input is not given.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Input, "input", cfg.Input, "frame file (.json, .json.zst, .json.lz4)")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "report file; stdout when empty")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "cluster or motif")
	fs.Float64Var(&cfg.RMax, "rmax", cfg.RMax, "neighbor cutoff radius")
	fs.IntVar(&cfg.Neighbors, "k", cfg.Neighbors, "neighbors per environment (1-12)")
	fs.Float64Var(&cfg.Threshold, "threshold", cfg.Threshold, "unitless match threshold in [0,2)")
	fs.BoolVar(&cfg.HardRadius, "hard-radius", cfg.HardRadius, "drop neighbors beyond rmax")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "worker goroutines; 0 uses GOMAXPROCS")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "text or json")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.Input == "" && fs.NArg() == 1 {
		cfg.Input = fs.Arg(0)
	} else if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments %v: %w", fs.Args(), ErrUsage)
	}

	return cfg, nil
}

// Run loads the input frame, runs the configured pass and writes the report
// to cfg.Output, or to out when no output path is set. Logs go to errOut.
func Run(cfg Config, out, errOut io.Writer) error {
	if cfg.Input == "" {
		return fmt.Errorf("input path is required: %w", ErrUsage)
	}
	if cfg.Mode != snapshot.ModeCluster && cfg.Mode != snapshot.ModeMotif {
		return fmt.Errorf("mode %q must be %s or %s: %w", cfg.Mode, snapshot.ModeCluster, snapshot.ModeMotif, ErrUsage)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("workers=%d must be >= 0: %w", cfg.Workers, ErrUsage)
	}
	handler, err := config.LogHandler(errOut, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := matchenv.NewLogger(handler)

	frame, err := snapshot.Load(cfg.Input)
	if err != nil {
		return fmt.Errorf("load frame: %w", err)
	}
	b, err := frame.Box.Box()
	if err != nil {
		return fmt.Errorf("load frame: %w", err)
	}

	opts := []matchenv.Option{matchenv.WithLogger(logger)}
	if cfg.Workers > 0 {
		opts = append(opts, matchenv.WithWorkers(cfg.Workers))
	}
	me, err := matchenv.New(b, cfg.RMax, cfg.Neighbors, opts...)
	if err != nil {
		return err
	}
	var runOpts []matchenv.RunOption
	if cfg.HardRadius {
		runOpts = append(runOpts, matchenv.WithHardRadius())
	}

	report, err := runMode(me, frame, cfg, runOpts)
	if err != nil {
		return err
	}
	logger.Info("run finished",
		"mode", report.Mode,
		"particles", report.Particles,
		"count", report.Count,
	)

	if cfg.Output == "" {
		return snapshot.WriteReport(out, report, snapshot.None)
	}
	if err = snapshot.SaveReport(cfg.Output, report); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	logger.Info("report written", "path", cfg.Output)

	return nil
}

func runMode(me *matchenv.MatchEnv, frame *snapshot.Frame, cfg Config, opts []matchenv.RunOption) (*snapshot.Report, error) {
	points := frame.Positions()
	if cfg.Mode == snapshot.ModeMotif {
		motif := frame.MotifVectors()
		if len(motif) == 0 {
			return nil, fmt.Errorf("motif mode needs a frame motif: %w", ErrUsage)
		}
		mm, err := me.MatchMotif(points, motif, cfg.Threshold, opts...)
		if err != nil {
			return nil, err
		}
		return snapshot.MotifReport(mm, cfg.Threshold), nil
	}

	c, err := me.Cluster(points, cfg.Threshold, opts...)
	if err != nil {
		return nil, err
	}
	return snapshot.ClusterReport(c, cfg.Threshold)
}
