package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/temirov/depdoc/cmd/cli"
	"github.com/temirov/depdoc/internal/check"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the depdoc command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		if !errors.Is(executionError, check.ErrCheckFailed) {
			fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		}
		os.Exit(1)
	}
}
