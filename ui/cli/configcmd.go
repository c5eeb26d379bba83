// Copyright (c) 2026 topsecret Team
// topsecret - classified file viewer
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"os"

	"github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/config"
	"github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/i18n"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: i18n.T("cli.config_short"),
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(newConfigInitCmd(a))
	return cmd
}

// newConfigInitCmd writes the configuration resolved from defaults, the
// environment and flags. The file is created with mode 0600.
func newConfigInitCmd(a *app) *cobra.Command {
	var (
		output string
		system bool
		force  bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: i18n.T("cli.config_init_short"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := output
			if path == "" {
				p, err := config.GetConfigPath(system)
				if err != nil {
					return &userError{msg: err.Error()}
				}
				path = p
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return &userError{msg: i18n.T("error.config_exists", path)}
				}
			}

			cfg := a.cfg
			var err error
			if output == "" {
				err = config.WriteConfigFile(&cfg, system)
			} else {
				err = config.WriteConfigFileTo(&cfg, output)
			}
			if err != nil {
				return &userError{msg: i18n.T("error.config_write", path, err)}
			}
			fmt.Fprintln(a.stdout, i18n.T("cli.config_written", path))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this path instead of the config directory")
	cmd.Flags().BoolVar(&system, "system", false, "write the system-wide config file")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
