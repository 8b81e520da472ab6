package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"braces.dev/errtrace"
	"github.com/peterbourgon/ff/v3"
	"go.abhg.dev/phpgen/internal/codegen"
	"go.abhg.dev/phpgen/internal/flagvalue"
	"go.abhg.dev/phpgen/internal/highlight"
	"go.abhg.dev/phpgen/internal/phpname"
)

var (
	errHelp             = flag.ErrHelp
	errInvalidArguments = errors.New("invalid arguments")
)

// _envPrefix is the prefix of environment variables
// that set flags: PHPGEN_OUT sets -out.
const _envPrefix = "PHPGEN"

// params holds all arguments for phpgen.
type params struct {
	version bool
	help    Help

	Debug  flagvalue.FileSwitch
	Config string

	Output    string
	Kind      *codegen.Kind // nil to keep the kind of each declaration
	Inherited bool
	Decls     []declName
	Uses      []useValue

	Highlight highlightMode
	Style     string

	Inputs []string
}

// cliParser parses the command line arguments for phpgen.
type cliParser struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (cmd *cliParser) newFlagSet() (*params, *flag.FlagSet) {
	flag := flag.NewFlagSet("phpgen", flag.ContinueOnError)
	flag.SetOutput(cmd.Stderr)
	flag.Usage = func() {
		_ = DefaultHelp.Write(cmd.Stderr)
	}

	p := params{Highlight: highlightNone}

	// Input and output:
	flag.StringVar(&p.Output, "out", "-", "")
	flag.Var(flagvalue.ListOf(&p.Decls), "decl", "")

	// Declarations:
	flag.Func("kind", "", func(s string) error {
		kind, err := codegen.ParseKind(s)
		if err != nil {
			return errtrace.Wrap(err)
		}
		p.Kind = &kind
		return nil
	})
	flag.BoolVar(&p.Inherited, "inherited", false, "")
	flag.Var(flagvalue.ListOf(&p.Uses), "use", "")

	// Highlighting:
	flag.Var(&p.Highlight, "highlight", "")
	flag.StringVar(&p.Style, "style", highlight.PlainStyle.Name, "")

	// Program-level:
	flag.StringVar(&p.Config, "config", "", "")
	flag.Var(&p.Debug, "debug", "")
	flag.BoolVar(&p.version, "version", false, "")
	flag.Var(&p.help, "help", "")
	flag.Var(&p.help, "h", "")

	return &p, flag
}

func (cmd *cliParser) Parse(args []string) (*params, error) {
	p, flag := cmd.newFlagSet()
	err := ff.Parse(flag, args,
		ff.WithEnvVarPrefix(_envPrefix),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	)
	if err != nil {
		if !errors.Is(err, errHelp) {
			fmt.Fprintln(cmd.Stderr, err)
		}
		return nil, errtrace.Wrap(err)
	}
	args = flag.Args()

	if p.version {
		fmt.Fprintln(cmd.Stdout, "phpgen", _version)
		return nil, errHelp
	}

	if p.help == DefaultHelp && len(args) > 0 {
		// The user might have done "-h foo"
		// instead of "-h=foo".
		// If the argument is a known help topic,
		// take it.
		var h Help
		if err := h.Set(args[0]); err == nil && h.Known() {
			p.help = h
		}
	}

	switch p.help {
	case NoHelp:
		// proceed as usual
	default:
		if err := p.help.Write(cmd.Stderr); err != nil {
			fmt.Fprintln(cmd.Stderr, err)
		}
		return nil, errHelp
	}

	if _, ok := highlight.LookupStyle(p.Style); !ok {
		fmt.Fprintf(cmd.Stderr, "Unknown style %q. See -h=highlight for a list.\n", p.Style)
		return nil, errInvalidArguments
	}

	p.Inputs = args
	if len(p.Inputs) == 0 {
		fmt.Fprintln(cmd.Stderr, "Please provide at least one input file.")
		_ = UsageHelp.Write(cmd.Stderr)
		return nil, errInvalidArguments
	}

	return p, nil
}

// declName selects declarations by name with -decl.
type declName string

var _ flag.Getter = (*declName)(nil)

func (d *declName) Get() any       { return string(*d) }
func (d *declName) String() string { return string(*d) }

func (d *declName) Set(s string) error {
	s = phpname.Trim(s)
	if s == "" {
		return errtrace.New("declaration name must not be empty")
	}
	*d = declName(s)
	return nil
}

// useValue is an import added with -use.
type useValue phpname.Use

var _ flag.Getter = (*useValue)(nil)

func (u *useValue) Get() any { return phpname.Use(*u) }

func (u *useValue) String() string { return phpname.Use(*u).String() }

func (u *useValue) Set(s string) error {
	use := phpname.ParseUse(s)
	if use.Name == "" {
		return errtrace.Errorf("expected form 'Name' or 'Name as Alias', got %q", s)
	}
	*u = useValue(use)
	return nil
}

// highlightMode picks the output format for -highlight.
type highlightMode string

const (
	highlightNone     highlightMode = "none"
	highlightHTML     highlightMode = "html"
	highlightTerminal highlightMode = "terminal"
)

var _ flag.Getter = (*highlightMode)(nil)

func (m *highlightMode) Get() any       { return *m }
func (m *highlightMode) String() string { return string(*m) }

func (m *highlightMode) Set(s string) error {
	switch mode := highlightMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case highlightNone, highlightHTML, highlightTerminal:
		*m = mode
		return nil
	default:
		return errtrace.Errorf("unknown highlight mode %q: valid values are none, html, terminal", s)
	}
}
