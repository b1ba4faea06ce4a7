// cmd/pathseq/main.go
//
// Entry point for the pathseq CLI. It reads objective catalogs, runs the
// sequencing engine and prints, validates or browses the resulting paths.

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
