// Command arith evaluates arithmetic expressions given as arguments or read
// from a file or standard input.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/arith"
)

// Set via -ldflags at build time.
var version = "dev"

func main() {
	log.SetFlags(0)
	log.SetPrefix("arith: ")
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arith [flags] [expr...]",
		Short: "Evaluate arithmetic expressions",
		Long: `arith evaluates expressions of decimal numbers, parentheses, and the
operators + - * / % ^. Each argument is one expression. With no arguments,
or with --in, the input is read as one expression, or as one per line with
--lines. Use -- before an expression that starts with a minus sign.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	cmd.SetVersionTemplate("arith version {{.Version}}\n")

	f := cmd.Flags()
	f.String("config", "", "YAML file of settings (env ARITH_CONFIG)")
	f.String("in", "", "input file, - for stdin (default stdin if no args given)")
	f.BoolP("lines", "n", false, "evaluate each input line as a separate expression")
	f.String("fmt", "", "result formatting string (default %g, env ARITH_FORMAT)")
	f.Uint("prec", 0, "precision of calculations in bits (default 64, env ARITH_PREC)")
	f.Int("round", 0, "decimal places in results, negative for full precision (default 15, env ARITH_ROUND)")
	f.Int("max-depth", 0, "limit on nesting of subexpressions (default 1000, env ARITH_MAX_DEPTH)")
	f.Bool("echo", false, "print parse trees before results")
	f.BoolP("keep-going", "k", false, "continue past failed expressions and report all failures")
	f.Bool("verbose", false, "log settings and parse trees")
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		log.Printf("precision %d bits, round %d places, max depth %d, format %q", cfg.Precision, cfg.Round, cfg.MaxDepth, cfg.Format)
	}

	inname, _ := cmd.Flags().GetString("in")
	lines, _ := cmd.Flags().GetBool("lines")
	srcs, err := sources(cmd, inname, lines, args)
	if err != nil {
		return err
	}

	echo, _ := cmd.Flags().GetBool("echo")
	keep, _ := cmd.Flags().GetBool("keep-going")
	ev := &evaluator{
		ctx:     arith.NewContext(arith.Prec(cfg.Precision), arith.Round(cfg.Round)),
		depth:   arith.MaxDepth(cfg.MaxDepth),
		verb:    cfg.Format + "\n",
		full:    cfg.Round < 0,
		out:     cmd.OutOrStdout(),
		echo:    echo,
		verbose: verbose,
	}
	var rvErr *multierror.Error
	for _, src := range srcs {
		if err := ev.eval(src); err != nil {
			if !keep {
				return err
			}
			rvErr = multierror.Append(rvErr, err)
		}
	}
	return rvErr.ErrorOrNil()
}

// settings collects the configuration from defaults, the config file, the
// environment, and flags, in that order.
func settings(cmd *cobra.Command) (config, error) {
	cfg := defaultConfig()
	path := envOrDefault("ARITH_CONFIG", "")
	if v, _ := cmd.Flags().GetString("config"); v != "" {
		path = v
	}
	if path != "" {
		if err := loadConfig(path, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	f := cmd.Flags()
	if f.Changed("prec") {
		cfg.Precision, _ = f.GetUint("prec")
	}
	if f.Changed("round") {
		cfg.Round, _ = f.GetInt("round")
	}
	if f.Changed("max-depth") {
		cfg.MaxDepth, _ = f.GetInt("max-depth")
	}
	if v, _ := f.GetString("fmt"); v != "" {
		cfg.Format = v
	}
	return cfg, cfg.validate()
}

// source is one expression to evaluate.
type source struct {
	// name locates the expression in error messages.
	name string
	in   io.RuneScanner
}

// sources lists the expressions to evaluate: those in the input file, if any,
// followed by each argument.
func sources(cmd *cobra.Command, inname string, lines bool, args []string) ([]source, error) {
	var srcs []source
	f, name, err := infile(cmd, inname, len(args) == 0)
	if err != nil {
		return nil, err
	}
	if f != nil {
		if c, ok := f.(io.Closer); ok {
			defer c.Close()
		}
		if lines {
			sc := bufio.NewScanner(f)
			for n := 1; sc.Scan(); n++ {
				line := sc.Text()
				if strings.TrimSpace(line) == "" {
					continue
				}
				srcs = append(srcs, source{name: name + ":" + strconv.Itoa(n), in: strings.NewReader(line)})
			}
			if err := sc.Err(); err != nil {
				return nil, fmt.Errorf("reading %s: %w", name, err)
			}
		} else {
			b, err := io.ReadAll(f)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", name, err)
			}
			srcs = append(srcs, source{name: name, in: strings.NewReader(string(b))})
		}
	}
	for i, arg := range args {
		srcs = append(srcs, source{name: "arg" + strconv.Itoa(i+1), in: strings.NewReader(arg)})
	}
	return srcs, nil
}

// infile opens the named input, or the command's stdin for "-" or when std is
// set and no name is given. The result is nil if there is no input file.
func infile(cmd *cobra.Command, inname string, std bool) (io.Reader, string, error) {
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, "", err
		}
		return f, inname, nil
	case inname == "-", std:
		return cmd.InOrStdin(), "stdin", nil
	}
	return nil, "", nil
}

// evaluator evaluates expressions with shared settings.
type evaluator struct {
	ctx   *arith.Context
	depth arith.ParseOption
	verb  string
	// full prints results at the context's precision instead of as rounded
	// float64 values.
	full    bool
	out     io.Writer
	echo    bool
	verbose bool
}

func (ev *evaluator) eval(src source) error {
	a, err := arith.Parse(src.in, ev.depth)
	if err != nil {
		return fmt.Errorf("%s:%w", src.name, err)
	}
	if ev.verbose {
		log.Printf("%s: %v", src.name, a)
	}
	if ev.echo {
		fmt.Fprintf(ev.out, "%v : ", a)
	}
	r, err := ev.ctx.Eval(a)
	if err != nil {
		if ev.echo {
			fmt.Fprintln(ev.out)
		}
		return fmt.Errorf("%s:%w", src.name, err)
	}
	if ev.full {
		fmt.Fprintf(ev.out, ev.verb, r)
		return nil
	}
	fmt.Fprintf(ev.out, ev.verb, ev.ctx.Float64(r))
	return nil
}
