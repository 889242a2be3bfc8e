package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"

	vueparser "github.com/vuejs/vue-eslint-parser-sub000"
	"github.com/vuejs/vue-eslint-parser-sub000/ast"
)

// Sentinel errors
var (
	ErrUnknownFormat    = errors.New("unknown output format")
	ErrTemplateHasError = errors.New("template has parse errors")
)

// buildOptions assembles parse options from config, flags and context.
func buildOptions(ctx *Context, config *vueparser.Config, path string, typeAware, vue2 bool) vueparser.Options {
	opts := vueparser.Options{
		FilePath:   path,
		TypeAware:  config.Parser.TypeAware || typeAware,
		Vue2Compat: config.Parser.Vue2Compat || vue2,
	}
	if ctx.Verbose {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
		opts.Logger = &logger
	}
	return opts
}

func parseFile(ctx *Context, path string, typeAware, vue2 bool) (*vueparser.Result, error) {
	config, err := vueparser.LoadConfig(ctx.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", vueparser.ErrEmptySource, path)
	}

	if ctx.Verbose {
		color.Blue("Parsing %s (%d bytes)", path, len(data))
	}

	return vueparser.Parse(string(data), buildOptions(ctx, config, path, typeAware, vue2))
}

// ParseCmd represents the parse command
type ParseCmd struct {
	Input     string `arg:"" help:"Template file to parse" type:"path"`
	Format    string `help:"Output format (json, yaml, xml or tree)" default:""`
	TypeAware bool   `help:"Treat generic attributes on script elements as type parameters"`
	Vue2      bool   `help:"Enable Vue 2 compatibility behaviors"`
}

func (cmd *ParseCmd) Run(ctx *Context) error {
	config, err := vueparser.LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	format := cmd.Format
	if format == "" {
		format = config.Output.Format
	}

	result, err := parseFile(ctx, cmd.Input, cmd.TypeAware, cmd.Vue2)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(result.Document, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode document: %w", err)
		}
		fmt.Println(string(data))
	case "yaml":
		// Round-trip through JSON so the type discriminators and the
		// parent-link exclusions apply to YAML output too.
		data, err := json.Marshal(result.Document)
		if err != nil {
			return fmt.Errorf("failed to encode document: %w", err)
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return fmt.Errorf("failed to encode document: %w", err)
		}
		out, err := yaml.Marshal(generic)
		if err != nil {
			return fmt.Errorf("failed to encode document: %w", err)
		}
		fmt.Print(string(out))
	case "xml":
		doc, err := exportXML(result.Document)
		if err != nil {
			return fmt.Errorf("failed to export document: %w", err)
		}
		doc.Indent(2)
		if _, err := doc.WriteTo(os.Stdout); err != nil {
			return fmt.Errorf("failed to write document: %w", err)
		}
	case "tree":
		printTree(result.Document, config.Output.Color && !color.NoColor)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	if !ctx.Quiet && len(result.Document.Errors) > 0 {
		color.Yellow("%d parse error(s)", len(result.Document.Errors))
	}

	return nil
}

// printTree renders the element structure with one line per node.
func printTree(doc *ast.DocumentFragment, colored bool) {
	name := color.New(color.FgCyan)
	pos := color.New(color.FgHiBlack)
	if !colored {
		name.DisableColor()
		pos.DisableColor()
	}

	var walk func(nodes []ast.Node, depth int)
	walk = func(nodes []ast.Node, depth int) {
		indent := strings.Repeat("  ", depth)
		for _, node := range nodes {
			switch n := node.(type) {
			case *ast.Element:
				fmt.Printf("%s%s %s\n", indent, name.Sprint("<"+n.RawName+">"), pos.Sprintf("[%d, %d)", n.Range[0], n.Range[1]))
				for _, attr := range n.StartTag.Attributes {
					printAttribute(attr, indent+"  ", pos)
				}
				walk(n.Children, depth+1)
			case *ast.Text:
				value := strings.TrimSpace(n.Value)
				if value == "" {
					continue
				}
				fmt.Printf("%stext %q %s\n", indent, value, pos.Sprintf("[%d, %d)", n.Range[0], n.Range[1]))
			case *ast.ExpressionContainer:
				fmt.Printf("%s{{ }} %s\n", indent, pos.Sprintf("[%d, %d)", n.Range[0], n.Range[1]))
			}
		}
	}
	walk(doc.Children, 0)
}

func printAttribute(attr ast.AttributeLike, indent string, pos *color.Color) {
	switch a := attr.(type) {
	case *ast.Attribute:
		fmt.Printf("%s@%s %s\n", indent, a.Key.RawName, pos.Sprintf("[%d, %d)", a.Range[0], a.Range[1]))
	case *ast.Directive:
		fmt.Printf("%s@v-%s %s\n", indent, a.Key.Name.Name, pos.Sprintf("[%d, %d)", a.Range[0], a.Range[1]))
	}
}

// TokensCmd represents the tokens command
type TokensCmd struct {
	Input    string `arg:"" help:"Template file to tokenize" type:"path"`
	Comments bool   `help:"Include comment tokens" default:"true" negatable:""`
}

func (cmd *TokensCmd) Run(ctx *Context) error {
	result, err := parseFile(ctx, cmd.Input, false, false)
	if err != nil {
		return err
	}

	typ := color.New(color.FgCyan)
	pos := color.New(color.FgHiBlack)

	printToken := func(t *ast.Token) {
		fmt.Printf("%s %s %q\n",
			pos.Sprintf("%4d:%-3d", t.Loc.Start.Line, t.Loc.Start.Column),
			typ.Sprintf("%-22s", t.Type),
			t.Value)
	}

	tokens := result.Store.GetTokens(result.Document, &vueparser.StoreOptions{
		IncludeComments: cmd.Comments,
	})
	for i := range tokens {
		printToken(&tokens[i])
	}

	if !ctx.Quiet {
		fmt.Printf("%d tokens\n", len(tokens))
	}

	return nil
}

// CheckCmd represents the check command
type CheckCmd struct {
	Paths     []string `arg:"" help:"Template files to check" type:"path"`
	TypeAware bool     `help:"Treat generic attributes on script elements as type parameters"`
	Vue2      bool     `help:"Enable Vue 2 compatibility behaviors"`
}

func (cmd *CheckCmd) Run(ctx *Context) error {
	total := 0

	for _, path := range cmd.Paths {
		result, err := parseFile(ctx, path, cmd.TypeAware, cmd.Vue2)
		if err != nil {
			return err
		}

		for _, perr := range result.Document.Errors {
			total++
			if !ctx.Quiet {
				color.Red("%s:%d:%d: %s", path, perr.Line, perr.Column, perr.Message)
			}
		}
	}

	if total > 0 {
		return fmt.Errorf("%w: %d error(s)", ErrTemplateHasError, total)
	}

	if !ctx.Quiet {
		color.Green("OK: %d file(s)", len(cmd.Paths))
	}

	return nil
}
