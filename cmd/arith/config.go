package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/arith"
)

// config holds the settings for evaluating expressions. Each source of
// settings overrides the ones before it: defaults, then the config file, then
// the environment, then flags.
type config struct {
	Precision uint   `yaml:"precision"`
	Round     int    `yaml:"round"`
	MaxDepth  int    `yaml:"max_depth"`
	Format    string `yaml:"format"`
}

func defaultConfig() config {
	return config{
		Precision: arith.DefaultPrec,
		Round:     arith.DefaultRound,
		MaxDepth:  arith.DefaultMaxDepth,
		Format:    "%g",
	}
}

// loadConfig reads YAML settings from path into cfg. Keys missing from the
// file keep their current values. Unknown keys are an error.
func loadConfig(path string, cfg *config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides cfg with any of ARITH_PREC, ARITH_ROUND,
// ARITH_MAX_DEPTH, and ARITH_FORMAT that are set. All malformed variables are
// reported together.
func applyEnv(cfg *config) error {
	var rvErr *multierror.Error
	if v := os.Getenv("ARITH_PREC"); v != "" {
		n, err := strconv.ParseUint(v, 10, 0)
		if err != nil {
			rvErr = multierror.Append(rvErr, fmt.Errorf("ARITH_PREC: %w", err))
		} else {
			cfg.Precision = uint(n)
		}
	}
	if v := os.Getenv("ARITH_ROUND"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			rvErr = multierror.Append(rvErr, fmt.Errorf("ARITH_ROUND: %w", err))
		} else {
			cfg.Round = n
		}
	}
	if v := os.Getenv("ARITH_MAX_DEPTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			rvErr = multierror.Append(rvErr, fmt.Errorf("ARITH_MAX_DEPTH: %w", err))
		} else {
			cfg.MaxDepth = n
		}
	}
	cfg.Format = envOrDefault("ARITH_FORMAT", cfg.Format)
	return rvErr.ErrorOrNil()
}

// validate reports every setting that cannot be used.
func (cfg *config) validate() error {
	var rvErr *multierror.Error
	if cfg.Precision == 0 {
		rvErr = multierror.Append(rvErr, errors.New("precision must be positive"))
	}
	if cfg.MaxDepth <= 0 {
		rvErr = multierror.Append(rvErr, fmt.Errorf("max depth (%d) must be positive", cfg.MaxDepth))
	}
	if !strings.Contains(cfg.Format, "%") {
		rvErr = multierror.Append(rvErr, fmt.Errorf("format %q has no verb", cfg.Format))
	}
	return rvErr.ErrorOrNil()
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
