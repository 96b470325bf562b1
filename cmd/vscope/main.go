// Command vscope drives the component scope engine from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/vscope/cmd/vscope/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
