// Command swagdoc serves and generates Swagger 2.0 documents of the
// petstore demo.
package main

import (
	"fmt"
	"os"

	"github.com/vitalvas/swagdoc/internal/cli"
)

func main() {
	if err := cli.New().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
