// Package main provides the symdiff command-line tool.
//
// symdiff parses an expression in the factory's textual form, evaluates it,
// differentiates it symbolically and checks derivatives numerically.
//
//	symdiff eval "sigmoid(x)" --set x=3
//	symdiff diff "(x * sin(y))" --wrt x --wrt y
//	symdiff check "tanh((2 * x))" --set x=0.4 --strict
//	symdiff ops
package main

import (
	"fmt"
	"os"
)

const version = "v0.1.0"

// Exit codes.
const (
	exitSuccess = 0
	exitFailure = 1 // command ran but reported a failure (check mismatch)
	exitError   = 2 // invalid input or configuration
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if isCheckFailure(err) {
			return exitFailure
		}
		return exitError
	}
	return exitSuccess
}
