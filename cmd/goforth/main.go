package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	forth "github.com/jcorbin/goforth"
	"github.com/jcorbin/goforth/internal/config"
	"github.com/jcorbin/goforth/internal/fileinput"
	"github.com/jcorbin/goforth/internal/logio"
	"github.com/jcorbin/goforth/internal/panicerr"
)

var (
	promptStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	continuationStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("8"))
)

type flags struct {
	configFile  string
	trace       bool
	timeout     time.Duration
	heapSize    int
	precision   int
	strict      bool
	interactive bool
}

func main() {
	log := logio.NewLogger(os.Stderr)
	err := rootCommand(log).ExecuteContext(context.Background())
	log.ErrorIf(err)
	var perr *panicerr.Error
	if errors.As(err, &perr) && !perr.Exited {
		log.Printf("PANIC", "%s", perr.Stack)
	}
	os.Exit(log.ExitCode())
}

func rootCommand(log *logio.Logger) *cobra.Command {
	var fl flags
	cmd := &cobra.Command{
		Use:   "goforth [file...]",
		Short: "A small Forth interpreter",
		Long: `goforth runs each named Forth source file in batch mode, stopping at the
first error, then reads stdin interactively if -i was given or no files were
named.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, log, fl, args)
		},
	}
	f := cmd.Flags()
	f.StringVar(&fl.configFile, "config", "", "load settings from a .toml or .yaml file")
	f.BoolVar(&fl.trace, "trace", false, "enable trace logging")
	f.DurationVar(&fl.timeout, "timeout", 0, "specify a time limit")
	f.IntVar(&fl.heapSize, "heap-size", 0, "number of heap cells")
	f.IntVar(&fl.precision, "precision", 0, "fixed point fraction digits")
	f.BoolVar(&fl.strict, "strict", false, "disallow forward references inside definitions")
	f.BoolVarP(&fl.interactive, "interactive", "i", false, "read stdin interactively after any files")
	return cmd
}

func loadConfig(cmd *cobra.Command, fl flags) (config.Config, error) {
	cfg := config.Default()
	if fl.configFile != "" {
		var err error
		if cfg, err = config.Load(fl.configFile); err != nil {
			return cfg, err
		}
	}
	f := cmd.Flags()
	if f.Changed("trace") {
		cfg.Trace = fl.trace
	}
	if f.Changed("timeout") {
		cfg.Timeout.Duration = fl.timeout
	}
	if f.Changed("heap-size") {
		cfg.HeapSize = fl.heapSize
	}
	if f.Changed("precision") {
		cfg.Precision = fl.precision
	}
	if fl.strict {
		cfg.ForwardRefs = false
	}
	return cfg, cfg.Validate()
}

func run(cmd *cobra.Command, log *logio.Logger, fl flags, args []string) error {
	cfg, err := loadConfig(cmd, fl)
	if err != nil {
		return err
	}

	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	opts = append(opts,
		forth.WithOutput(cmd.OutOrStdout()),
		forth.WithPrompt(
			promptStyle.Render(cfg.Prompt),
			continuationStyle.Render(cfg.ContinuationPrompt)),
	)
	if cfg.Trace {
		opts = append(opts,
			forth.WithLogf(log.Leveledf("TRACE")),
			forth.WithTee(&logio.Writer{Logf: log.Leveledf("OUT")}))
	}
	vm, err := forth.New(opts...)
	if err != nil {
		return err
	}
	defer vm.Close()

	ctx := cmd.Context()
	if cfg.Timeout.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout.Duration)
		defer cancel()
	}

	for _, path := range args {
		if err := runFile(ctx, vm, path); err != nil {
			return err
		}
	}

	if fl.interactive || len(args) == 0 {
		err := vm.RunInput(ctx, fileinput.Named("<stdin>", cmd.InOrStdin()), true)
		fmt.Fprintln(cmd.OutOrStdout())
		return err
	}
	return nil
}

func runFile(ctx context.Context, vm *forth.VM, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return vm.RunInput(ctx, fileinput.Named(path, f), false)
}
