// Copyright (c) 2026 topsecret Team
// topsecret - classified file viewer
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/control"
	"github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/i18n"
	"github.com/spf13/cobra"
)

var (
	twoDigits = regexp.MustCompile(`^[0-9]{2}$`)
	// dashNumber matches a file number typed with a leading dash, which the
	// flag parser would otherwise report as an unknown flag.
	dashNumber = regexp.MustCompile(`^-+[0-9]+$`)
)

// userError is an error whose message is already localized for the user.
// usage requests the usage summary after the message.
type userError struct {
	msg   string
	usage bool
}

func (e *userError) Error() string { return e.msg }

func usageErrorf(id string, args ...any) error {
	return &userError{msg: i18n.T(id, args...), usage: true}
}

// IsTwoDigitCode reports whether s is a file number of exactly two ASCII digits.
func IsTwoDigitCode(s string) bool {
	return twoDigits.MatchString(s)
}

// flagError reports flag parsing failures as user errors followed by usage.
// A dash followed by digits is a malformed file number, not a flag.
func (a *app) flagError(_ *cobra.Command, err error) error {
	for _, arg := range a.args {
		if arg == "--" {
			break
		}
		if dashNumber.MatchString(arg) {
			return usageErrorf("error.invalid_number")
		}
	}
	return &userError{msg: err.Error(), usage: true}
}

// runRoot dispatches on the positional arguments:
// none lists files, NN shows a file with the default key, and NN KEY_PATH
// shows a file with the given key.
func (a *app) runRoot(ctx context.Context, args []string) error {
	switch len(args) {
	case 0:
		return a.listFiles(ctx)
	case 1:
		return a.showFile(ctx, args[0], a.cfg.KeyPath)
	case 2:
		return a.showFile(ctx, args[0], args[1])
	default:
		return usageErrorf("error.too_many_args")
	}
}

func (a *app) listFiles(ctx context.Context) error {
	names, err := a.ctrl.FileList(ctx)
	if err != nil {
		return localize(err)
	}
	if len(names) == 0 {
		fmt.Fprintln(a.stdout, i18n.T("cli.no_files"))
		return nil
	}
	for i, name := range names {
		fmt.Fprintln(a.stdout, i18n.T("cli.file_line", i+1, name))
	}
	return nil
}

func (a *app) showFile(ctx context.Context, code, keyPath string) error {
	if !IsTwoDigitCode(code) {
		return usageErrorf("error.invalid_number")
	}
	if strings.TrimSpace(keyPath) == "" {
		return usageErrorf("error.empty_key_path")
	}
	number, _ := strconv.Atoi(code)

	doc, err := a.ctrl.Reveal(ctx, number, keyPath)
	if err != nil {
		return localize(err)
	}

	fmt.Fprint(a.stdout, doc.Content)
	if a.copy {
		if err := a.copyFunc(doc.Content); err != nil {
			fmt.Fprintln(a.stderr, i18n.T("cli.copy_failed", err))
		} else {
			fmt.Fprintln(a.stderr, i18n.T("cli.copied"))
		}
	}
	return nil
}

// localize turns controller errors into user messages followed by usage.
func localize(err error) error {
	var (
		numErr  *control.NumberError
		readErr *control.ReadError
		keyErr  *control.KeyError
	)
	switch {
	case errors.As(err, &numErr):
		return usageErrorf("error.number_not_found", numErr.Number)
	case errors.As(err, &readErr):
		return usageErrorf("error.file_not_found", readErr.Name)
	case errors.As(err, &keyErr):
		return usageErrorf("error.key_load", keyErr.Path)
	case errors.Is(err, control.ErrNoFiles):
		return usageErrorf("error.no_files")
	case errors.Is(err, control.ErrListUnavailable):
		return usageErrorf("error.list_unavailable")
	default:
		return &userError{msg: err.Error(), usage: true}
	}
}
