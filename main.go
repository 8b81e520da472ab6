// phpgen generates PHP class, trait, and interface declarations
// from declaration files or existing PHP sources.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"braces.dev/errtrace"
	"github.com/viant/afs"
	"go.abhg.dev/phpgen/internal/errdefer"
	"go.abhg.dev/phpgen/internal/highlight"
	"go.abhg.dev/phpgen/internal/importer"
	"go.abhg.dev/phpgen/internal/phpname"
	"go.abhg.dev/phpgen/internal/phpsrc"
	"go.abhg.dev/phpgen/internal/sliceutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cmd := mainCmd{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	os.Exit(cmd.Run(os.Args[1:]))
}

// mainCmd is the actual entry point to the program.
type mainCmd struct {
	Stdout io.Writer // == os.Stdout
	Stderr io.Writer // == os.Stderr

	// FS reads inputs and writes outputs.
	// Defaults to afs.New().
	FS afs.Service
}

func (cmd *mainCmd) Run(args []string) (exitCode int) {
	opts, err := (&cliParser{
		Stdout: cmd.Stdout,
		Stderr: cmd.Stderr,
	}).Parse(args)
	if err != nil {
		// '$cmd -h' should exit with zero.
		if errors.Is(err, errHelp) {
			return 0
		}
		// No need to print anything.
		// Parse prints messages.
		return 1
	}

	if err := cmd.run(context.Background(), opts); err != nil {
		fmt.Fprintf(cmd.Stderr, "phpgen: %v\n", err)
		return 1
	}
	return 0
}

func (cmd *mainCmd) run(ctx context.Context, opts *params) (err error) {
	debugw, closeDebug, err := opts.Debug.Open(cmd.Stderr)
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer errdefer.Call(&err, closeDebug)

	log := newLogger(cmd.Stderr, zapcore.WarnLevel)
	if debugw != nil {
		log = newLogger(debugw, zapcore.DebugLevel)
	}
	defer func() { _ = log.Sync() }()

	fs := cmd.FS
	if fs == nil {
		fs = afs.New()
	}

	style, _ := highlight.LookupStyle(opts.Style)
	gen := Generator{
		Log:    log,
		FS:     fs,
		Parser: &phpsrc.Parser{Logger: log.Named("phpsrc")},
		Importer: &importer.Importer{
			Inherited: opts.Inherited,
			Logger:    log.Named("importer"),
		},
		Kind:  opts.Kind,
		Decls: sliceutil.Transform(opts.Decls, func(d declName) string { return string(d) }),
		Uses:  sliceutil.Transform(opts.Uses, func(u useValue) phpname.Use { return phpname.Use(u) }),

		Highlight:   opts.Highlight,
		Highlighter: &highlight.Highlighter{Style: style},

		Output: opts.Output,
		Stdout: cmd.Stdout,
	}

	log.Debug("generating",
		zap.Strings("inputs", opts.Inputs),
		zap.String("output", opts.Output),
		zap.Stringer("highlight", &opts.Highlight))
	return errtrace.Wrap(gen.Generate(ctx, opts.Inputs))
}

// newLogger builds a human-readable logger writing to w.
func newLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.AddSync(w),
		level,
	))
}
