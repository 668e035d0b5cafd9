package main

import (
	"fmt"
	"os"
	"strings"
)

/*generates PRNG conformance vectors and compares them against a reference set*/

const usage = `usage: prngvec [command] [flags]

commands:
  generate   emit vectors for the parameter grid (default)
  compare    compare a test tree or manifest against a reference
  check      run the generator property self-checks
  families   list generator families and their capabilities
  grid       print the artifact paths of the parameter grid

Run "prngvec <command> -h" for the flags of a command.
`

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	cmd, args := "generate", os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	var code int
	switch cmd {
	case "generate":
		code = runGenerate(args)
	case "compare":
		code = runCompare(args)
	case "check":
		code = runCheck(args)
	case "families":
		code = runFamilies(args)
	case "grid":
		code = runGrid(args)
	case "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		code = exitUsage
	}
	os.Exit(code)
}
