package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-passkit/pkg/generator"
	"github.com/goliatone/go-passkit/pkg/pass"
	"github.com/goliatone/go-passkit/pkg/template"
)

func main() {
	templatePath := flag.String("template", "", "pass template (YAML, JSON or JSONC)")
	output := flag.String("output", "", "output file (stdout if empty)")
	indent := flag.Bool("indent", false, "write indented JSON")
	serial := flag.String("serial", "", "serial number (overrides the template)")
	interactive := flag.Bool("interactive", false, "prompt for missing identifiers")
	requireIDs := flag.Bool("require-ids", false, "fail when a standard identifier is missing")
	stringsDir := flag.String("strings-dir", "", "directory for <lang>.lproj/pass.strings files")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx := context.Background()

	req := pass.NewRequest()
	if *templatePath != "" {
		def, err := template.LoadFile(*templatePath)
		if err != nil {
			log.Fatalf("Failed to load template: %v", err)
		}
		if req, err = def.Build(nil); err != nil {
			log.Fatalf("Failed to build template: %v", err)
		}
	} else if !*interactive {
		log.Fatalf("either -template or -interactive is required")
	}
	if *serial != "" {
		req.SerialNumber = *serial
	}

	if *interactive {
		if err := completeRequest(ctx, surveyPrompter{}, req, *templatePath == ""); err != nil {
			log.Fatalf("Failed to complete pass: %v", err)
		}
	}

	options := []generator.Option{generator.WithLogger(logger)}
	if *indent {
		options = append(options, generator.WithIndent("", "  "))
	}
	if *requireIDs {
		options = append(options, generator.WithRequiredIdentifiers())
	}
	gen := generator.New(options...)

	out, err := gen.Generate(ctx, generator.Request{Pass: req})
	if err != nil {
		log.Fatalf("Failed to generate pass: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		logger.Info("pass written", "path", *output, "serial", req.SerialNumber)
	} else {
		fmt.Println(string(out))
	}

	if *stringsDir != "" {
		if err := writeLocalizations(*stringsDir, req); err != nil {
			log.Fatalf("Failed to write localizations: %v", err)
		}
	}
}

func writeLocalizations(dir string, req *pass.Request) error {
	files := generator.LocalizationFiles(req)
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		target := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(target, files[name], 0o644); err != nil {
			return err
		}
	}
	return nil
}
