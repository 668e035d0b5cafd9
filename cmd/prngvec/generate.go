package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"pkg.jsn.cam/prngvec/internal/emitter"
	"pkg.jsn.cam/prngvec/internal/grid"
	"pkg.jsn.cam/prngvec/internal/manifest"
	"pkg.jsn.cam/prngvec/internal/metrics"
	"pkg.jsn.cam/prngvec/internal/runner"
	"pkg.jsn.cam/prngvec/pkg/generators"
	"pkg.jsn.cam/prngvec/pkg/prngvec"
)

const defaultOutput = "vectors"

// parseFamilies resolves a comma separated family list; empty selects all.
func parseFamilies(list string) ([]generators.Entry, error) {
	names := generators.List()
	if list != "" {
		names = names[:0]
		for _, name := range strings.Split(list, ",") {
			names = append(names, prngvec.Family(strings.TrimSpace(name)))
		}
	}

	entries := make([]generators.Entry, 0, len(names))
	for _, name := range names {
		entry, err := generators.Get(name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func runGenerate(args []string) int {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	var (
		out          = fs.String("out", defaultOutput, "Output root directory")
		length       = fs.Int("n", runner.DefaultLength, "Number of values per vector")
		familyList   = fs.String("families", "", "Comma separated families to generate (default all)")
		workers      = fs.Int("workers", runner.DefaultWorkers, "Number of concurrent emissions")
		manifestPath = fs.String("manifest", "", "Record artifact digests in this manifest database (\":memory:\" for none on disk)")
		metricsPath  = fs.String("metrics", "", "Write emission metrics to this Prometheus textfile")
		quiet        = fs.Bool("quiet", false, "Disable the progress bar")
	)
	fs.Parse(args)

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "generate: unexpected arguments %v\n", fs.Args())
		return exitUsage
	}
	if *length <= 0 {
		fmt.Fprintf(os.Stderr, "generate: -n must be positive, got %d\n", *length)
		return exitUsage
	}
	families, err := parseFamilies(*familyList)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate: %v\n", err)
		return exitUsage
	}

	cfg := runner.Config{
		Families: families,
		Policy:   &grid.DefaultPolicy,
		Length:   *length,
		Workers:  *workers,
		Emitter:  emitter.New(*out),
		Progress: os.Stderr,
	}
	if *quiet {
		cfg.Progress = io.Discard
	}

	if *manifestPath != "" {
		store, err := manifest.Open(*manifestPath)
		if err != nil {
			log.Fatalf("Failed to open manifest: %v", err)
		}
		defer store.Close()
		cfg.Manifest = store
	}

	var m *metrics.Metrics
	if *metricsPath != "" {
		m = metrics.New()
		cfg.Metrics = m
	}

	r, err := runner.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create runner: %v", err)
	}

	summary, err := r.Run()

	if m != nil {
		if werr := m.WriteTextfile(*metricsPath); werr != nil {
			log.Printf("[RUNNER] Failed to write metrics to %s: %v", *metricsPath, werr)
		}
	}

	fmt.Println(summary)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed artifacts:\n%v\n", err)
		return exitFailure
	}
	return exitOK
}
