package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/arith"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, config{Precision: arith.DefaultPrec, Round: arith.DefaultRound, MaxDepth: arith.DefaultMaxDepth, Format: "%g"}, cfg)
	assert.NoError(t, cfg.validate())
}

func TestLoadConfig(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    config
		err     bool
	}{
		{
			name:    "all",
			content: "precision: 128\nround: 4\nmax_depth: 50\nformat: \"%.4f\"\n",
			want:    config{Precision: 128, Round: 4, MaxDepth: 50, Format: "%.4f"},
		},
		{
			name:    "partial",
			content: "round: 0\n",
			want:    config{Precision: arith.DefaultPrec, Round: 0, MaxDepth: arith.DefaultMaxDepth, Format: "%g"},
		},
		{
			name:    "negative-round",
			content: "round: -1",
			want:    config{Precision: arith.DefaultPrec, Round: -1, MaxDepth: arith.DefaultMaxDepth, Format: "%g"},
		},
		{
			name:    "empty",
			content: "",
			want:    defaultConfig(),
		},
		{
			name:    "comment",
			content: "# nothing here\n",
			want:    defaultConfig(),
		},
		{name: "unknown-key", content: "precsion: 128\n", err: true},
		{name: "bad-type", content: "precision: lots\n", err: true},
		{name: "negative-prec", content: "precision: -5\n", err: true},
		{name: "not-a-map", content: "- 1\n- 2\n", err: true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "arith.yaml")
			require.NoError(t, os.WriteFile(path, []byte(c.content), 0o644))
			cfg := defaultConfig()
			err := loadConfig(path, &cfg)
			if c.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, cfg)
		})
	}
}

func TestLoadConfigMissing(t *testing.T) {
	cfg := defaultConfig()
	err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"), &cfg)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("ARITH_PREC", "256")
	t.Setenv("ARITH_ROUND", "-1")
	t.Setenv("ARITH_MAX_DEPTH", "10")
	t.Setenv("ARITH_FORMAT", "%e")
	cfg := defaultConfig()
	require.NoError(t, applyEnv(&cfg))
	assert.Equal(t, config{Precision: 256, Round: -1, MaxDepth: 10, Format: "%e"}, cfg)
}

func TestApplyEnvErrors(t *testing.T) {
	t.Setenv("ARITH_PREC", "many")
	t.Setenv("ARITH_ROUND", "1.5")
	t.Setenv("ARITH_MAX_DEPTH", "deep")
	cfg := defaultConfig()
	err := applyEnv(&cfg)
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr), "got %#v", err)
	assert.Len(t, merr.Errors, 3)
	assert.ErrorContains(t, err, "ARITH_PREC")
	assert.ErrorContains(t, err, "ARITH_ROUND")
	assert.ErrorContains(t, err, "ARITH_MAX_DEPTH")
}

func TestValidate(t *testing.T) {
	cfg := config{Precision: 0, MaxDepth: 0, Format: "x"}
	err := cfg.validate()
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr), "got %#v", err)
	assert.Len(t, merr.Errors, 3)
}
