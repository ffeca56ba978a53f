package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	json "github.com/goccy/go-json"

	"github.com/reoring/namedargs/decl"
	"github.com/reoring/namedargs/i18n"
	"github.com/reoring/namedargs/internal/gen"
	"github.com/reoring/namedargs/jsonschema"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	cfg, err := loadConfig()
	if err != nil {
		fatalf("config: %v", err)
	}
	i18n.SetLanguage(cfg.Lang)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.level()}))

	sub := os.Args[1]
	switch sub {
	case "schema":
		schemaCmd(os.Args[2:])
	case "lint":
		os.Exit(lintCmd(os.Args[2:], cfg, logger))
	case "gen":
		genCmd(os.Args[2:], logger)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "namedargs CLI\n\nUsage:\n  namedargs schema -f decl.yaml [-name op]\n  namedargs lint -f a.yaml[,b.json] [-watch]\n  namedargs gen -f decl.yaml [-pkg p] [-o out.go]\n\nEnvironment:\n  NAMEDARGS_LANG       message language (en, ja)\n  NAMEDARGS_COLOR      auto, always or never\n  NAMEDARGS_LOG_LEVEL  debug, info, warn or error")
}

func schemaCmd(args []string) {
	fs := flag.NewFlagSet("schema", flag.ExitOnError)
	var file, name string
	fs.StringVar(&file, "f", "", "declaration file (.yaml, .yml or .json)")
	fs.StringVar(&name, "name", "", "declaration to project (default: first)")
	_ = fs.Parse(args)
	if file == "" {
		fs.Usage()
		os.Exit(2)
	}
	out, err := projectSchema(file, name)
	if err != nil {
		fatalf("%s: %v", file, err)
	}
	fmt.Println(string(out))
}

func projectSchema(file, name string) ([]byte, error) {
	ds, err := decl.ParseFile(file)
	if err != nil {
		return nil, err
	}
	d, err := pick(ds, name)
	if err != nil {
		return nil, err
	}
	s, err := d.Schema()
	if err != nil {
		return nil, err
	}
	js := jsonschema.FromSchema(s, jsonschema.Options{
		Title:        d.Name,
		Description:  d.Doc,
		Descriptions: d.Descriptions(),
		WithVersion:  true,
	})
	return json.MarshalIndent(js, "", "  ")
}

func pick(ds []*decl.Decl, name string) (*decl.Decl, error) {
	if len(ds) == 0 {
		return nil, errors.New("no declarations")
	}
	if name == "" {
		return ds[0], nil
	}
	for _, d := range ds {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, fmt.Errorf("declaration %q not found", name)
}

func lintCmd(args []string, cfg config, logger *slog.Logger) int {
	fs := flag.NewFlagSet("lint", flag.ExitOnError)
	var filesCSV string
	var watch bool
	fs.StringVar(&filesCSV, "f", "", "comma-separated declaration files")
	fs.BoolVar(&watch, "watch", false, "re-lint when a file changes")
	_ = fs.Parse(args)
	files := splitCSV(filesCSV)
	if len(files) == 0 {
		fs.Usage()
		return 2
	}
	color := cfg.colorize(os.Stdout)
	status := lint(os.Stdout, files, color)
	if !watch {
		return status
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := watchFiles(ctx, files, logger, func() { lint(os.Stdout, files, color) }); err != nil {
		logger.Error("watch failed", slog.String("err", err.Error()))
		return 1
	}
	return status
}

func genCmd(args []string, logger *slog.Logger) {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	var file, pkg, out string
	fs.StringVar(&file, "f", "", "declaration file (.yaml, .yml or .json)")
	fs.StringVar(&pkg, "pkg", "", "package name of the generated file (default: main)")
	fs.StringVar(&out, "o", "", "output filename (default: stdout)")
	_ = fs.Parse(args)
	if file == "" {
		fs.Usage()
		os.Exit(2)
	}
	ds, err := decl.ParseFile(file)
	if err != nil {
		fatalf("%s: %v", file, err)
	}
	code, err := gen.Render(pkg, ds...)
	if err != nil {
		fatalf("%s: %v", file, err)
	}
	if out == "" {
		_, _ = os.Stdout.Write(code)
		return
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		fatalf("creating output dir: %v", err)
	}
	if err := os.WriteFile(out, code, 0o644); err != nil {
		fatalf("writing output: %v", err)
	}
	logger.Info("generated", slog.String("file", out), slog.Int("decls", len(ds)))
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
