package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"pkg.jsn.cam/prngvec/internal/compare"
	"pkg.jsn.cam/prngvec/internal/manifest"
)

// maxListed bounds the mismatches printed; the summary still counts all.
const maxListed = 50

func runCompare(args []string) int {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	var (
		ref          = fs.String("ref", defaultOutput, "Reference vector tree")
		test         = fs.String("test", "", "Vector tree produced by the implementation under test")
		refManifest  = fs.String("ref-manifest", "", "Reference manifest database")
		testManifest = fs.String("test-manifest", "", "Manifest database of the implementation under test")
	)
	fs.Parse(args)

	var (
		report compare.Report
		err    error
	)
	switch {
	case *refManifest != "" || *testManifest != "":
		if *refManifest == "" || *testManifest == "" {
			fmt.Fprintln(os.Stderr, "compare: -ref-manifest and -test-manifest must be given together")
			return exitUsage
		}
		report, err = compareManifests(*refManifest, *testManifest)
	case *test != "":
		report, err = compare.Trees(*ref, *test)
	default:
		fmt.Fprintln(os.Stderr, "compare: -test or -ref-manifest/-test-manifest is required")
		fs.Usage()
		return exitUsage
	}
	if err != nil {
		log.Printf("[COMPARE] %v", err)
		return exitFailure
	}

	for i, m := range report.Mismatches {
		if i == maxListed {
			fmt.Printf("  ... and %d more\n", len(report.Mismatches)-maxListed)
			break
		}
		fmt.Printf("  %s\n", m)
	}
	fmt.Println(report)

	if !report.OK() {
		return exitFailure
	}
	return exitOK
}

func compareManifests(refPath, testPath string) (compare.Report, error) {
	for _, p := range []string{refPath, testPath} {
		if _, err := os.Stat(p); err != nil {
			return compare.Report{}, fmt.Errorf("manifest %s: %w", p, err)
		}
	}

	ref, err := manifest.NewBboltStore(refPath)
	if err != nil {
		return compare.Report{}, err
	}
	defer ref.Close()

	test, err := manifest.NewBboltStore(testPath)
	if err != nil {
		return compare.Report{}, err
	}
	defer test.Close()

	return compare.Manifests(ref, test)
}
