// Command symtab interns strings into typed symbols and runs interning
// scenarios against golden traces.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/symtab/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "symtab:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
