// Copyright (c) 2026 topsecret Team
// topsecret - classified file viewer
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"os"

	"github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/i18n"
	"github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// isTerminal is replaceable in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [KEY_PATH]",
		Short: i18n.T("cli.browse_short"),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyPath := a.cfg.KeyPath
			if len(args) == 1 {
				keyPath = args[0]
			}
			if !isTerminal() {
				return &userError{msg: i18n.T("cli.browse_needs_tty")}
			}
			return tui.Run(cmd.Context(), a.ctrl, keyPath)
		},
	}
}
