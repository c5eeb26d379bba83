// Copyright (c) 2026 topsecret Team
// topsecret - classified file viewer
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the topsecret command line using Cobra. It wires
// configuration, logging, localization and the audit store, then delegates
// to internal/control. CLI code validates arguments and formats output; it
// holds no file or cipher logic of its own.
package cli
