// Command fixedfield inspects and edits binary images laid out by a schema
// document.
//
//	fixedfield describe -schema header.toml
//	fixedfield decode -schema header.toml -in image.bin [-offset N] [-trace]
//	fixedfield encode -schema header.toml -in image.bin -values rec.yaml [-offset N] [-out FILE]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"text/tabwriter"

	"github.com/rawbytedev/fixedfield"
	"github.com/rawbytedev/fixedfield/byteview"
	"github.com/rawbytedev/fixedfield/pkg/schemadef"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

var errUsage = errors.New("usage: fixedfield <describe|decode|encode> -schema FILE [flags]")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	schema  string
	in      string
	out     string
	values  string
	offset  int
	trace   bool
	verbose bool
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd := args[0]
	var opts options
	set := flag.NewFlagSet(cmd, flag.ContinueOnError)
	set.SetOutput(stderr)
	set.StringVar(&opts.schema, "schema", "", "schema document (.toml, .yaml, .yml)")
	set.BoolVar(&opts.verbose, "v", false, "debug logging")
	switch cmd {
	case "describe":
	case "decode":
		set.StringVar(&opts.in, "in", "", "binary image to read")
		set.IntVar(&opts.offset, "offset", 0, "byte offset of the record")
		set.BoolVar(&opts.trace, "trace", false, "log every byte access")
	case "encode":
		set.StringVar(&opts.in, "in", "", "binary image to update (created if missing)")
		set.StringVar(&opts.values, "values", "", "YAML record to write")
		set.IntVar(&opts.offset, "offset", 0, "byte offset of the record")
		set.StringVar(&opts.out, "out", "", "output path (default: -in)")
		set.BoolVar(&opts.trace, "trace", false, "log every byte access")
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
	if err := set.Parse(args[1:]); err != nil {
		return err
	}
	if opts.schema == "" {
		return fmt.Errorf("%w: -schema is required", errUsage)
	}
	if opts.offset < 0 {
		return fmt.Errorf("negative offset %d", opts.offset)
	}

	log := newLogger(stderr, opts.verbose)
	defer func() { _ = log.Sync() }()
	schemadef.SetLogger(log.Named("schemadef"))

	doc, err := schemadef.Load(opts.schema)
	if err != nil {
		return err
	}
	s, err := doc.Build()
	if err != nil {
		return fmt.Errorf("build schema: %w", err)
	}

	switch cmd {
	case "describe":
		return describe(stdout, doc.Name, s)
	case "decode":
		return decode(stdout, log, s, opts)
	default:
		return encode(log, s, opts)
	}
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

func describe(w io.Writer, name string, s *fixedfield.Struct) error {
	if name == "" {
		name = "<root>"
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tKIND\tOFFSET\tLENGTH")
	err := fixedfield.Walk(s, func(path string, offset int, c fixedfield.Codec) error {
		if path == "" {
			path = name
		}
		_, err := fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", path, c.Kind(), offset, c.Len())
		return err
	})
	if err != nil {
		return err
	}
	return tw.Flush()
}

func viewOf(data []byte, log *zap.Logger, trace bool) fixedfield.View {
	var v fixedfield.View = byteview.Wrap(data)
	if trace {
		v = byteview.Trace(v, log.Named("view"))
	}
	return v
}

func decode(w io.Writer, log *zap.Logger, s *fixedfield.Struct, opts options) error {
	if opts.in == "" {
		return fmt.Errorf("%w: -in is required", errUsage)
	}
	data, err := os.ReadFile(opts.in)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	rec, err := s.Get(viewOf(data, log, opts.trace), opts.offset)
	if err != nil {
		return fmt.Errorf("decode at %d: %w", opts.offset, err)
	}
	node, err := toNode(s, rec)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return err
	}
	return enc.Close()
}

func encode(log *zap.Logger, s *fixedfield.Struct, opts options) error {
	if opts.in == "" || opts.values == "" {
		return fmt.Errorf("%w: -in and -values are required", errUsage)
	}
	raw, err := os.ReadFile(opts.values)
	if err != nil {
		return fmt.Errorf("read values: %w", err)
	}
	var values map[string]any
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return fmt.Errorf("parse values (%s): %w", opts.values, err)
	}

	data, err := os.ReadFile(opts.in)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read image: %w", err)
	}
	if need := opts.offset + s.Len(); len(data) < need {
		log.Debug("growing image", zap.Int("from", len(data)), zap.Int("to", need))
		data = append(data, make([]byte, need-len(data))...)
	}
	if err := s.SetValue(viewOf(data, log, opts.trace), opts.offset, values); err != nil {
		return fmt.Errorf("encode at %d: %w", opts.offset, err)
	}

	out := opts.out
	if out == "" {
		out = opts.in
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	log.Info("record encoded",
		zap.String("path", out),
		zap.Int("offset", opts.offset),
		zap.Int("length", s.Len()))
	return nil
}

// toNode renders a decoded value as YAML, keeping struct members in
// layout order.
func toNode(c fixedfield.Codec, x any) (*yaml.Node, error) {
	switch n := fixedfield.Unwrap(c).(type) {
	case *fixedfield.Struct:
		rec, ok := x.(fixedfield.Record)
		if !ok {
			return nil, fmt.Errorf("unexpected %T for struct", x)
		}
		node := &yaml.Node{Kind: yaml.MappingNode}
		for _, m := range n.Members() {
			val, err := toNode(m.Field, rec[m.Name])
			if err != nil {
				return nil, err
			}
			key := &yaml.Node{Kind: yaml.ScalarNode, Value: m.Name}
			node.Content = append(node.Content, key, val)
		}
		return node, nil
	case interface{ Elem() fixedfield.Codec }:
		items, ok := x.([]any)
		if !ok {
			return nil, fmt.Errorf("unexpected %T for array", x)
		}
		node := &yaml.Node{Kind: yaml.SequenceNode}
		if n.Elem().Kind().IsScalar() {
			node.Style = yaml.FlowStyle
		}
		for _, item := range items {
			val, err := toNode(n.Elem(), item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, val)
		}
		return node, nil
	}
	node := &yaml.Node{}
	if err := node.Encode(x); err != nil {
		return nil, err
	}
	return node, nil
}
