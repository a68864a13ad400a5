package main

import (
	"fmt"
	"os"

	"github.com/agiangrant/corewidgets/cmd/corewidgets/commands"
)

var version = "dev" // set by the linker

func main() {
	if err := commands.NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
