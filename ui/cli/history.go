// Copyright (c) 2026 topsecret Team
// topsecret - classified file viewer
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/i18n"
	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: i18n.T("cli.history_short"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cfg.Audit.Enabled {
				fmt.Fprintln(a.stdout, i18n.T("cli.history_disabled"))
				return nil
			}
			entries, err := a.ctrl.History(cmd.Context(), limit)
			if err != nil {
				return &userError{msg: err.Error()}
			}
			if len(entries) == 0 {
				fmt.Fprintln(a.stdout, i18n.T("cli.history_empty"))
				return nil
			}
			for _, e := range entries {
				file := e.File
				if file == "" {
					file = "-"
				}
				fmt.Fprintln(a.stdout, i18n.T("cli.history_line",
					e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Username, e.Action, file))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show (0 for all)")
	return cmd
}
