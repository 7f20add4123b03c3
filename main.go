// =============================================================================
// dzcb - Main Entry Point
// =============================================================================
//
// This is the main entry point for the dzcb CLI application. It delegates
// command execution to the cmd package.
//
// USAGE:
//   dzcb convert INPUT_DIR OUTPUT_DIR  - Build the Anytone codeplugs
//   dzcb radios                        - List the supported radios
//   dzcb version                       - Display the application version
//
// ARCHITECTURE:
//   - cmd/                 : CLI command definitions (Cobra)
//   - internal/k7abd       : K7ABD CSV input parsing
//   - internal/assembler   : Codeplug assembly
//   - internal/anytone     : Anytone CPS output
//   - internal/converter   : The conversion pipeline
//   - pkg/utils            : File handling and run summaries
//
// =============================================================================

package main

import (
	"github.com/mycodeplug/dzcb/cmd"
)

func main() {
	cmd.Execute()
}
