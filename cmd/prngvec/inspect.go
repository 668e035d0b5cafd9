package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"pkg.jsn.cam/prngvec/internal/conformance"
	"pkg.jsn.cam/prngvec/internal/grid"
	"pkg.jsn.cam/prngvec/pkg/generators"
)

func runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	familyList := fs.String("families", "", "Comma separated families to check (default all)")
	fs.Parse(args)

	families, err := parseFamilies(*familyList)
	if err != nil {
		fmt.Fprintf(os.Stderr, "check: %v\n", err)
		return exitUsage
	}

	code := exitOK
	for _, entry := range families {
		seeds := grid.DefaultPolicy.Seeds32
		if entry.Width == 64 {
			seeds = grid.DefaultPolicy.Seeds64
		}

		report := conformance.CheckAll(entry.Family, entry.New, seeds)
		status := "ok"
		if !report.OK() {
			status = "FAIL"
			code = exitFailure
		}
		fmt.Printf("%-12s %-4s %d checks\n", entry.Family, status, report.Checks)
		for _, err := range report.Errors {
			fmt.Printf("    %v\n", err)
		}
	}
	return code
}

func runFamilies(args []string) int {
	fs := flag.NewFlagSet("families", flag.ExitOnError)
	fs.Parse(args)

	fmt.Printf("%-12s %-6s %-18s %s\n", "FAMILY", "WIDTH", "OPERATIONS", "DESCRIPTION")
	for _, family := range generators.List() {
		entry := generators.Generators[family]
		ops := []string{"seed"}
		if entry.CanSplit() {
			ops = append(ops, "split")
		}
		if entry.CanJump() {
			ops = append(ops, "jump", "jump2")
		}
		fmt.Printf("%-12s %-6d %-18s %s\n", entry.Family, entry.Width, strings.Join(ops, ","), entry.Description)
	}
	return exitOK
}

func runGrid(args []string) int {
	fs := flag.NewFlagSet("grid", flag.ExitOnError)
	familyList := fs.String("families", "", "Comma separated families (default all)")
	count := fs.Bool("count", false, "Print only the number of artifacts")
	fs.Parse(args)

	families, err := parseFamilies(*familyList)
	if err != nil {
		fmt.Fprintf(os.Stderr, "grid: %v\n", err)
		return exitUsage
	}

	if *count {
		fmt.Println(grid.DefaultPolicy.Count(families))
		return exitOK
	}
	for cfg := range grid.DefaultPolicy.All(families) {
		fmt.Println(cfg)
	}
	return exitOK
}
