package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"go-order-pipeline/internal/config"
	"go-order-pipeline/internal/model"
	"go-order-pipeline/internal/pipeline"
	"go-order-pipeline/pkg/utils"

	"github.com/google/uuid"
)

func main() {
	mode := flag.String("mode", "shipment", "shipment, management, paste or annotate")
	out := flag.String("out", "", "output directory (default ORDER_OUTPUT_DIR)")
	carriers := flag.String("carriers", "", "comma-separated carrier export files")
	delivery := flag.String("delivery", "", "carrier upload workbook to annotate")
	summary := flag.String("summary", string(model.SummaryClassified), "management product summary: classified or raw")
	normalize := flag.Bool("normalize", false, "paste: classify labels into categories")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] order-files...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	if *out == "" {
		*out = cfg.OutputDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runID := uuid.New().String()
	outputs := utils.NewOutputManager(*out)
	opts := pipeline.Options{Location: cfg.Location()}

	var artifacts []model.Artifact
	switch *mode {
	case "shipment":
		run, err := pipeline.RunShipments(ctx, runID, mustRead(flag.Args()), opts)
		report(run.Files)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		log.Printf("📊 %d shipments", run.OrderCount())
		artifacts = run.Artifacts
	case "management":
		run, err := pipeline.RunManagement(ctx, runID, mustRead(flag.Args()), mustRead(splitList(*carriers)), model.SummaryMode(*summary), opts)
		report(run.Files)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		log.Printf("📊 %d orders, %d with invoice, %d without", len(run.Records), run.Matched, run.Unmatched())
		artifacts = run.Artifacts
	case "annotate":
		if *delivery == "" {
			log.Fatalf("❌ -delivery is required")
		}
		files := mustRead([]string{*delivery})
		a, matched, _, err := pipeline.AnnotateCarrier(runID, files[0], mustRead(splitList(*carriers)), opts)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		log.Printf("📊 %d rows with invoice", matched)
		artifacts = []model.Artifact{a}
	case "paste":
		text, err := readPaste(flag.Args())
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(pipeline.ParsePasted(text, *normalize)); err != nil {
			log.Fatalf("❌ %v", err)
		}
		return
	default:
		flag.Usage()
		os.Exit(2)
	}

	for _, a := range artifacts {
		path, err := outputs.WriteFile(runID, a.FileName, a.Content)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		log.Printf("💾 %s", path)
	}
}

func mustRead(paths []string) []model.SourceFile {
	files := make([]model.SourceFile, 0, len(paths))
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			log.Fatalf("❌ Failed to read %s: %v", p, err)
		}
		files = append(files, model.SourceFile{Name: filepath.Base(p), Content: content})
	}
	return files
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// readPaste reads the pasted table from the first argument, or stdin.
func readPaste(args []string) (string, error) {
	if len(args) > 0 {
		b, err := os.ReadFile(args[0])
		return string(b), err
	}
	b, err := io.ReadAll(os.Stdin)
	return string(b), err
}

func report(files []model.FileReport) {
	for _, f := range files {
		if f.Error != "" {
			log.Printf("⚠️ %s: %s", f.FileName, f.Error)
			continue
		}
		log.Printf("📄 %s: %s (skip %d, %s) %d lines", f.FileName, f.Marketplace, f.SkipRows, f.Method, f.Lines)
	}
}
