// Copyright (c) 2026 topsecret Team
// topsecret - classified file viewer
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"runtime/debug"

	"github.com/UVA-CS-SDE-Sp26/ts-1-2-15/buildvars"
)

// resolveBuildVersion combines link-time variables with the module build
// info. The version always comes from buildvars; build info only fills in
// the commit and date when they were not injected.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.Version
	resolvedCommit := buildvars.GitCommit
	resolvedDate := buildvars.BuildDate

	if info == nil {
		if local, ok := debug.ReadBuildInfo(); ok {
			info = local
		}
	}

	if info != nil {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if resolvedCommit == "" && s.Value != "" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if resolvedDate == "" && s.Value != "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	if resolvedVersion == "" {
		resolvedVersion = buildvars.DefaultVersion
	}
	return resolvedVersion, resolvedCommit, resolvedDate
}

// compositeVersion renders the version string shown by --version.
func compositeVersion() string {
	v, c, d := resolveBuildVersion(nil)
	out := v
	if c != "" {
		if len(c) > 12 {
			c = c[:12]
		}
		out += " (" + c + ")"
	}
	if d != "" {
		out += " built: " + d
	}
	return out
}
