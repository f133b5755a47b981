package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/arith"
)

// execute runs the command with the given stdin and arguments, returning its
// standard output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun(t *testing.T) {
	cases := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"args", "", []string{"2+2", "(2+3)*4"}, "4\n20\n"},
		{"neg-arg", "", []string{"--", "-3^2"}, "9\n"},
		{"stdin", "2+3*4\n", nil, "14\n"},
		{"stdin-multiline", "2+\n3*4\n", nil, "14\n"},
		{"stdin-dash", "7%3", []string{"--in", "-"}, "1\n"},
		{"lines", "1+1\n\n  \n2*3\n", []string{"-n"}, "2\n6\n"},
		{"echo", "", []string{"--echo", "2+3*4"}, "(2+(3*4)) : 14\n"},
		{"fmt", "", []string{"--fmt", "%.3f", "1/3"}, "0.333\n"},
		{"round", "", []string{"--round", "2", "2/3"}, "0.67\n"},
		{"round-zero", "", []string{"--round=0", "2/3"}, "1\n"},
		{"full", "", []string{"--round", "-1", "--prec", "128", "--fmt", "%.25f", "1/3"}, "0.3333333333333333333333333\n"},
		{"default-round", "", []string{"0.1+0.2"}, "0.3\n"},
		{"version", "", []string{"--version"}, "arith version dev\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, err := execute(t, c.stdin, c.args...)
			require.NoError(t, err)
			assert.Equal(t, c.want, out)
		})
	}
}

func TestRunInFile(t *testing.T) {
	path := writeFile(t, "exprs.txt", "1+1\n2^10\n")
	out, err := execute(t, "", "--in", path, "--lines", "5-1")
	require.NoError(t, err)
	assert.Equal(t, "2\n1024\n4\n", out)

	_, err = execute(t, "", "--in", filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunErrors(t *testing.T) {
	cases := []struct {
		name  string
		stdin string
		args  []string
		kind  error
		msg   string
	}{
		{"div-zero", "", []string{"5/0"}, arith.ErrDivisionByZero, "arg1:2: "},
		{"second", "", []string{"1", "2++2"}, arith.ErrUnexpectedToken, "arg2:3: "},
		{"lex", "", []string{"2a"}, arith.ErrUnexpectedCharacter, "arg1:2: "},
		{"whole-input", "1+1\n2*3\n", nil, arith.ErrTrailingInput, "stdin:"},
		{"line", "1\n\n(2\n", []string{"-n"}, arith.ErrUnbalancedParentheses, "stdin:3:1: "},
		{"depth", "", []string{"--max-depth", "2", "((((1))))"}, arith.ErrNestingDepth, "arg1:"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := execute(t, c.stdin, c.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, c.kind)
			assert.Contains(t, err.Error(), c.msg)
		})
	}
}

func TestRunStopsAtFirstError(t *testing.T) {
	out, err := execute(t, "", "1", "1/0", "2")
	assert.ErrorIs(t, err, arith.ErrDivisionByZero)
	assert.Equal(t, "1\n", out)
}

func TestRunKeepGoing(t *testing.T) {
	out, err := execute(t, "", "-k", "1/0", "2", "3%0", "(")
	assert.Equal(t, "2\n", out)
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr), "got %#v", err)
	require.Len(t, merr.Errors, 3)
	assert.ErrorIs(t, merr.Errors[0], arith.ErrDivisionByZero)
	assert.ErrorIs(t, merr.Errors[1], arith.ErrDivisionByZero)
	assert.ErrorIs(t, merr.Errors[2], arith.ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), "3 errors occurred")
}

func TestRunBadSettings(t *testing.T) {
	_, err := execute(t, "", "--prec", "0", "1")
	assert.ErrorContains(t, err, "precision")
	_, err = execute(t, "", "--max-depth", "-1", "1")
	assert.ErrorContains(t, err, "max depth")
	_, err = execute(t, "", "--fmt", "result", "1")
	assert.ErrorContains(t, err, "no verb")
}

func TestRunConfigFile(t *testing.T) {
	path := writeFile(t, "arith.yaml", "format: \"%.2f\"\nround: 1\n")
	out, err := execute(t, "", "--config", path, "1/3")
	require.NoError(t, err)
	assert.Equal(t, "0.30\n", out)

	// Flags override the file.
	out, err = execute(t, "", "--config", path, "--round", "3", "1/3")
	require.NoError(t, err)
	assert.Equal(t, "0.33\n", out)
}

func TestRunEnv(t *testing.T) {
	t.Setenv("ARITH_FORMAT", "[%g]")
	t.Setenv("ARITH_ROUND", "1")
	out, err := execute(t, "", "1/3")
	require.NoError(t, err)
	assert.Equal(t, "[0.3]\n", out)

	out, err = execute(t, "", "--fmt", "%g", "--round", "2", "1/3")
	require.NoError(t, err)
	assert.Equal(t, "0.33\n", out)

	// The environment overrides the config file.
	path := writeFile(t, "arith.yaml", "round: 4\nformat: \"%g!\"\n")
	t.Setenv("ARITH_CONFIG", path)
	out, err = execute(t, "", "1/3")
	require.NoError(t, err)
	assert.Equal(t, "[0.3]\n", out)
}
