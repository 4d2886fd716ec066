// Command-line entrypoint for the PIMProf cost solver; delegates to the
// Cobra root command in cmd/root.go.

package main

import (
	"github.com/pimprof/solver/cmd"
)

func main() {
	cmd.Execute()
}
