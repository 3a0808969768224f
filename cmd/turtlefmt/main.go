// Command turtlefmt formats RDF Turtle documents.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/geoknoesis/turtlefmt/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		if !errors.Is(err, cli.ErrCheckFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
