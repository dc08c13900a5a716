// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for Livetable.
//
// Usage:
//
//	go run . [flags]
//	./livetable [flags]
//
// See --help for the available commands.
package main

import (
	"os"

	"github.com/toeirei/livetable/internal/logging"
	"github.com/toeirei/livetable/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		logging.Errorf("livetable: %v", err)
		os.Exit(1)
	}
}
