// Copyright (c) 2026 topsecret Team
// topsecret - classified file viewer
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for topsecret.
//
// Usage:
//
//	go run . [NN] [KEY_PATH]
//	./topsecret [NN] [KEY_PATH]
//
// See --help for options.
package main

import (
	"os"

	"github.com/UVA-CS-SDE-Sp26/ts-1-2-15/ui/cli"
)

func main() {
	os.Exit(cli.Execute())
}
