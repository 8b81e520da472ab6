package main

import (
	"bytes"
	"context"
	"io"
	"path"
	"strings"

	"braces.dev/errtrace"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"go.abhg.dev/phpgen/internal/codegen"
	"go.abhg.dev/phpgen/internal/declconfig"
	"go.abhg.dev/phpgen/internal/highlight"
	"go.abhg.dev/phpgen/internal/importer"
	"go.abhg.dev/phpgen/internal/phpname"
	"go.abhg.dev/phpgen/internal/phpsrc"
	"go.uber.org/zap"
)

// Parser scans PHP source files for declarations.
type Parser interface {
	ParseFile(name string, src []byte) (*phpsrc.File, error)
}

var _ Parser = (*phpsrc.Parser)(nil)

// Importer turns existing declarations into generated ones.
type Importer interface {
	Import(importer.Class, codegen.Kind) (*codegen.Declaration, error)
}

var _ Importer = (*importer.Importer)(nil)

// Generator loads declarations from the inputs
// and writes the generated code.
//
// Generator separates the program's core logic from main
// to aid in testability.
type Generator struct {
	Log      *zap.Logger
	FS       afs.Service
	Parser   Parser
	Importer Importer

	// Kind overrides the kind of every declaration if set.
	Kind *codegen.Kind

	// Decls selects declarations by name.
	// All declarations are generated if this is empty.
	Decls []string

	// Uses are added to every declaration.
	Uses []phpname.Use

	Highlight   highlightMode
	Highlighter *highlight.Highlighter

	// Output is the URL to write to, or "-" for Stdout.
	Output string
	Stdout io.Writer
}

// source is an input after it has been read.
type source struct {
	url     string
	configs []map[string]any // for declaration files
	file    *phpsrc.File     // for PHP files
}

// Generate reads the inputs and writes declarations for them.
func (g *Generator) Generate(ctx context.Context, inputs []string) error {
	decls, err := g.load(ctx, inputs)
	if err != nil {
		return errtrace.Wrap(err)
	}
	if len(decls) == 0 {
		return errtrace.New("no declarations found")
	}

	for _, d := range decls {
		for _, u := range g.Uses {
			d.AddUse(u.Name, u.Alias)
		}
	}

	out, err := g.render(decls)
	if err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(g.write(ctx, out))
}

func (g *Generator) load(ctx context.Context, inputs []string) ([]*codegen.Declaration, error) {
	// All PHP sources share an index
	// so that parents declared in other inputs are found.
	idx := phpsrc.NewIndex()

	sources := make([]*source, 0, len(inputs))
	for _, input := range inputs {
		src, err := g.read(ctx, input)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		if src.file != nil {
			idx.Add(src.file)
		}
		sources = append(sources, src)
	}

	sel := newSelector(g.Decls)
	var decls []*codegen.Declaration
	for _, src := range sources {
		var (
			ds  []*codegen.Declaration
			err error
		)
		if src.file != nil {
			ds, err = g.importFile(src.file, sel)
		} else {
			ds, err = g.fromConfigs(src, sel)
		}
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		g.Log.Debug("loaded declarations",
			zap.String("input", src.url),
			zap.Int("count", len(ds)))
		decls = append(decls, ds...)
	}

	if missing := sel.Unmatched(); len(missing) > 0 {
		return nil, errtrace.Errorf("declarations not found: %v", strings.Join(missing, ", "))
	}
	return decls, nil
}

func (g *Generator) read(ctx context.Context, input string) (*source, error) {
	data, err := g.FS.DownloadWithURL(ctx, input)
	if err != nil {
		return nil, errtrace.Errorf("read %v: %w", input, err)
	}
	src := &source{url: input}

	if _, ok := declconfig.FormatOf(input); ok {
		src.configs, err = declconfig.Decode(input, data)
		return src, errtrace.Wrap(err)
	}

	if !strings.EqualFold(path.Ext(input), ".php") {
		return nil, errtrace.Errorf("%v: unsupported input; expected .php, .yaml, .yml, .json, or .toml", input)
	}
	src.file, err = g.Parser.ParseFile(input, data)
	return src, errtrace.Wrap(err)
}

func (g *Generator) fromConfigs(src *source, sel *selector) ([]*codegen.Declaration, error) {
	var decls []*codegen.Declaration
	for i, cfg := range src.configs {
		d, err := codegen.FromConfig(cfg)
		if err != nil {
			return nil, errtrace.Errorf("%v: declaration %d: %w", src.url, i, err)
		}
		if !sel.Match(d.Name(), d.QualifiedName()) {
			continue
		}
		if g.Kind != nil {
			d.SetKind(*g.Kind)
		}
		decls = append(decls, d)
	}
	return decls, nil
}

func (g *Generator) importFile(f *phpsrc.File, sel *selector) ([]*codegen.Declaration, error) {
	var decls []*codegen.Declaration
	for _, class := range f.Classes {
		if !sel.Match(class.Name(), class.QualifiedName()) {
			continue
		}

		kind := class.Kind()
		if g.Kind != nil {
			kind = *g.Kind
		}
		d, err := g.Importer.Import(class, kind)
		if err != nil {
			return nil, errtrace.Errorf("%v: %v: %w", f.Name, class.QualifiedName(), err)
		}
		decls = append(decls, d)
	}
	return decls, nil
}

func (g *Generator) render(decls []*codegen.Declaration) ([]byte, error) {
	switch g.Highlight {
	case highlightHTML:
		var code highlight.Code
		for i, d := range decls {
			if i > 0 {
				code.Spans = append(code.Spans, &highlight.TextSpan{Text: []byte("\n")})
			}
			code.Spans = append(code.Spans, &highlight.AnchorSpan{
				ID:    anchorID(d.QualifiedName()),
				Spans: g.Highlighter.Spans([]byte(d.Generate())),
			})
		}
		return []byte(g.Highlighter.HTML(&code) + "\n"), nil

	case highlightTerminal:
		var buff bytes.Buffer
		if err := g.Highlighter.Terminal(&buff, joinDeclarations(decls)); err != nil {
			return nil, errtrace.Wrap(err)
		}
		return buff.Bytes(), nil

	default:
		return joinDeclarations(decls), nil
	}
}

func (g *Generator) write(ctx context.Context, out []byte) error {
	if g.Output == "" || g.Output == "-" {
		_, err := g.Stdout.Write(out)
		return errtrace.Wrap(err)
	}

	g.Log.Info("writing output", zap.String("url", g.Output), zap.Int("bytes", len(out)))
	return errtrace.Wrap(g.FS.Upload(ctx, g.Output, file.DefaultFileOsMode, bytes.NewReader(out)))
}

// joinDeclarations separates generated declarations with a blank line.
func joinDeclarations(decls []*codegen.Declaration) []byte {
	var buff bytes.Buffer
	for i, d := range decls {
		if i > 0 {
			buff.WriteString("\n")
		}
		buff.WriteString(d.Generate())
	}
	return buff.Bytes()
}

// anchorID is the HTML id of a declaration.
func anchorID(qualifiedName string) string {
	return strings.ReplaceAll(phpname.Trim(qualifiedName), phpname.Separator, "-")
}

// selector matches declarations against -decl names.
// An empty selector matches everything.
type selector struct {
	names   []string
	matched map[string]bool
}

func newSelector(names []string) *selector {
	return &selector{names: names, matched: make(map[string]bool)}
}

// Match reports whether a declaration is selected.
// Qualified names must match exactly;
// short names match in any namespace;
// and a namespace followed by `\*` matches everything inside it.
// Names are compared ignoring case.
func (s *selector) Match(short, qualified string) bool {
	if len(s.names) == 0 {
		return true
	}

	ok := false
	for _, name := range s.names {
		if matchName(name, short, qualified) {
			s.matched[name] = true
			ok = true
		}
	}
	return ok
}

func matchName(name, short, qualified string) bool {
	name = phpname.Trim(name)
	if ns, ok := strings.CutSuffix(name, "*"); ok {
		return phpname.Descends(ns, qualified)
	}
	if phpname.IsQualified(name) {
		return phpname.EqualFold(name, phpname.Trim(qualified))
	}
	return phpname.EqualFold(name, short)
}

// Unmatched lists the names that didn't match any declaration.
func (s *selector) Unmatched() []string {
	var missing []string
	for _, name := range s.names {
		if !s.matched[name] {
			missing = append(missing, name)
		}
	}
	return missing
}
