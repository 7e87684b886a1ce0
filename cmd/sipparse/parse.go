package main

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ghettovoice/sipparse"
	"github.com/ghettovoice/sipparse/header"
	"github.com/ghettovoice/sipparse/internal/errorutil"
)

var outputFormats = []string{"text", "yaml"}

type parseOptions struct {
	Entry  string
	Format string
	Trace  bool
}

// parseResult is the printed form of a parsed value.
type parseResult struct {
	Entry   string                `yaml:"entry"`
	Type    string                `yaml:"type,omitempty"`
	Value   string                `yaml:"value,omitempty"`
	Valid   *bool                 `yaml:"valid,omitempty"`
	Entries []multiEntry          `yaml:"entries,omitempty"`
	Lexemes []sipparse.Lexeme     `yaml:"lexemes,omitempty"`
	Error   *sipparse.SyntaxError `yaml:"error,omitempty"`
}

type multiEntry struct {
	Offset int    `yaml:"offset"`
	Value  string `yaml:"value,omitempty"`
}

func newParseCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse TEXT",
		Short: "Parse text with a grammar entry point",
		Long: `Parse TEXT starting from the entry point given by --entry and print
the reconstructed value. Header names such as "Call-ID" or "i" are accepted
as entry points as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(outputFormats, opts.Format) {
				return errtrace.Wrap(errorutil.NewInvalidArgumentError("format %q: must be one of %v", opts.Format, outputFormats))
			}
			return runParse(cmd, rootOpts, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.Entry, "entry", "e", "", "entry point name (see \"sipparse entries\")")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "text", "output format (text|yaml)")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "log every evaluated rule at debug level")
	_ = cmd.MarkFlagRequired("entry")
	return cmd
}

func runParse(cmd *cobra.Command, rootOpts *rootOptions, opts *parseOptions, text string) error {
	v, err := sipparse.Parse(text, opts.Entry, &sipparse.Options{
		Logger: rootOpts.logger,
		Trace:  opts.Trace,
	})
	if err != nil {
		var serr *sipparse.SyntaxError
		if !errors.As(err, &serr) {
			return errtrace.Wrap(err)
		}
		if opts.Format == "yaml" {
			if err := writeYAML(cmd.OutOrStdout(), parseResult{Entry: opts.Entry, Error: serr}); err != nil {
				return errtrace.Wrap(err)
			}
		} else {
			writeSyntaxError(cmd.ErrOrStderr(), text, serr)
		}
		return errtrace.Wrap(errReported)
	}

	res := describe(opts.Entry, v)
	if opts.Format == "yaml" {
		return errtrace.Wrap(writeYAML(cmd.OutOrStdout(), res))
	}
	writeText(cmd.OutOrStdout(), res)
	return nil
}

func describe(entry string, v any) parseResult {
	res := parseResult{Entry: entry, Type: typeName(v)}
	switch v := v.(type) {
	case header.Header:
		res.Value = v.RenderValue()
	case header.Multi[header.NameAddr]:
		valid := v.Valid()
		res.Valid = &valid
		if v.Wildcard {
			res.Value = "*"
			break
		}
		res.Entries = make([]multiEntry, len(v.Entries))
		for i, e := range v.Entries {
			res.Entries[i].Offset = v.Offsets[i]
			if e != nil {
				res.Entries[i].Value = e.String()
			}
		}
	case []sipparse.Lexeme:
		res.Lexemes = v
	case fmt.Stringer:
		res.Value = v.String()
	default:
		res.Value = fmt.Sprint(v)
	}
	return res
}

func typeName(v any) string {
	switch v.(type) {
	case header.Multi[header.NameAddr]:
		return "header.Multi[header.NameAddr]"
	case []sipparse.Lexeme:
		return "[]sipparse.Lexeme"
	}
	return strings.TrimPrefix(fmt.Sprintf("%T", v), "*")
}

func writeText(w io.Writer, res parseResult) {
	fmt.Fprintf(w, "entry: %s\n", res.Entry)
	fmt.Fprintf(w, "type: %s\n", res.Type)
	if res.Valid != nil {
		fmt.Fprintf(w, "valid: %t\n", *res.Valid)
	}
	if res.Value != "" {
		fmt.Fprintf(w, "value: %s\n", res.Value)
	}
	if res.Entries != nil {
		fmt.Fprintln(w, "entries:")
		for i, e := range res.Entries {
			val := e.Value
			if val == "" {
				val = "invalid"
			}
			fmt.Fprintf(w, "  %d @%d: %s\n", i, e.Offset, val)
		}
	}
	if res.Lexemes != nil {
		fmt.Fprintln(w, "lexemes:")
		for _, lx := range res.Lexemes {
			fmt.Fprintf(w, "  %d %s %s\n", lx.Offset, lx.Kind, strconv.Quote(lx.Text))
		}
	}
}

// writeSyntaxError prints the failing line with a caret under the error column.
func writeSyntaxError(w io.Writer, text string, serr *sipparse.SyntaxError) {
	start := serr.Location.Start
	lines := strings.Split(text, "\n")
	if start.Line >= 1 && start.Line <= len(lines) {
		fmt.Fprintln(w, strings.TrimSuffix(lines[start.Line-1], "\r"))
		fmt.Fprintln(w, strings.Repeat(" ", max(start.Column-1, 0))+"^")
	}
	fmt.Fprintln(w, serr.Message)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errtrace.Wrap(fmt.Errorf("encode yaml: %w", err))
	}
	return errtrace.Wrap(enc.Close())
}
