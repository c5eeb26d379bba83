// Copyright (c) 2026 topsecret Team
// topsecret - classified file viewer
// This source code is licensed under the MIT license found in the LICENSE file.

// Package buildvars contains variables injected at build time.
package buildvars

// DefaultVersion is the development version reported by local builds.
const DefaultVersion = "1.0-SNAPSHOT"

// Version, GitCommit and BuildDate are set at link time, e.g.
// `-ldflags "-X github.com/UVA-CS-SDE-Sp26/ts-1-2-15/buildvars.Version=1.0.0"`.
// GitCommit and BuildDate are empty for local builds.
var (
	Version   = DefaultVersion
	GitCommit string
	BuildDate string
)
