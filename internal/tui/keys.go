// Copyright (c) 2026 topsecret Team
// topsecret - classified file viewer
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/i18n"
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds the browser key bindings and implements help.KeyMap.
type keyMap struct {
	Open key.Binding
	Back key.Binding
	Copy key.Binding
	Quit key.Binding

	viewing bool
}

func newKeyMap() keyMap {
	return keyMap{
		Open: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", i18n.T("tui.help_open"))),
		Back: key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", i18n.T("tui.help_back"))),
		Copy: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", i18n.T("tui.help_copy"))),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", i18n.T("tui.help_quit"))),
	}
}

// ShortHelp lists the bindings relevant to the current screen.
func (k keyMap) ShortHelp() []key.Binding {
	if k.viewing {
		return []key.Binding{k.Back, k.Copy, k.Quit}
	}
	return []key.Binding{k.Open, k.Quit}
}

// FullHelp is the same as ShortHelp on a single row.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
