// Copyright (c) 2026 topsecret Team
// topsecret - classified file viewer
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/control"
	"github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/i18n"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Revealer is the part of control.Controller the browser needs.
type Revealer interface {
	FileList(ctx context.Context) ([]string, error)
	Reveal(ctx context.Context, number int, keyPath string) (control.Document, error)
}

// browserState is the screen currently shown.
type browserState int

const (
	stateList browserState = iota
	stateView
)

// filesLoadedMsg carries the result of the initial listing.
type filesLoadedMsg struct {
	names []string
	err   error
}

// revealedMsg carries the result of deciphering one file.
type revealedMsg struct {
	doc control.Document
	err error
}

// browserModel lists files in a table and shows the selected file deciphered
// in a scrollable viewport.
type browserModel struct {
	ctx      context.Context
	ctrl     Revealer
	keyPath  string
	copyFunc func(string) error

	state    browserState
	names    []string
	table    table.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	doc      control.Document
	status   string
	err      error
	width    int
	height   int
}

func newBrowserModel(ctx context.Context, ctrl Revealer, keyPath string) browserModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: i18n.T("tui.number_header"), Width: 4},
			{Title: i18n.T("tui.files_header"), Width: 40},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	return browserModel{
		ctx:      ctx,
		ctrl:     ctrl,
		keyPath:  keyPath,
		copyFunc: clipboard.WriteAll,
		state:    stateList,
		table:    t,
		viewport: viewport.New(0, 0),
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

func (m browserModel) Init() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		names, err := ctrl.FileList(ctx)
		return filesLoadedMsg{names: names, err: err}
	}
}

func (m browserModel) revealCmd(number int) tea.Cmd {
	ctx, ctrl, keyPath := m.ctx, m.ctrl, m.keyPath
	return func() tea.Msg {
		doc, err := ctrl.Reveal(ctx, number, keyPath)
		return revealedMsg{doc: doc, err: err}
	}
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case filesLoadedMsg:
		m.err = msg.err
		m.names = msg.names
		rows := make([]table.Row, 0, len(msg.names))
		for i, name := range msg.names {
			rows = append(rows, table.Row{fmt.Sprintf("%02d", i+1), name})
		}
		m.table.SetRows(rows)
		return m, nil

	case revealedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.status = ""
		m.doc = msg.doc
		m.state = stateView
		m.keys.viewing = true
		m.viewport.SetContent(msg.doc.Content)
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.state == stateView {
			return m.updateView(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m browserModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Open) {
		if len(m.names) == 0 {
			return m, nil
		}
		return m, m.revealCmd(m.table.Cursor() + 1)
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m browserModel) updateView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.state = stateList
		m.keys.viewing = false
		m.status = ""
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		if err := m.copyFunc(m.doc.Content); err != nil {
			m.err = err
		} else {
			m.err = nil
			m.status = i18n.T("tui.copied")
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *browserModel) resize() {
	h, v := docStyle.GetFrameSize()
	width := m.width - h
	height := m.height - v - 6
	if height < 3 {
		height = 3
	}
	m.table.SetHeight(height)
	m.table.SetWidth(width)
	fw, fh := viewportStyle.GetFrameSize()
	m.viewport.Width = width - fw
	m.viewport.Height = height - fh
	m.help.Width = width
}

func (m browserModel) View() string {
	var b strings.Builder
	title := i18n.T("tui.title")
	if m.state == stateView {
		title = fmt.Sprintf("%02d %s", m.doc.Number, m.doc.Name)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	switch m.state {
	case stateView:
		b.WriteString(viewportStyle.Render(m.viewport.View()))
	default:
		if len(m.names) == 0 && m.err == nil {
			b.WriteString(helpStyle.Render(i18n.T("tui.empty")))
		} else {
			b.WriteString(m.table.View())
		}
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(successStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(i18n.T("tui.key_label", m.keyPath)))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return docStyle.Render(b.String())
}

// Run starts the interactive browser and blocks until the user quits.
func Run(ctx context.Context, ctrl Revealer, keyPath string) error {
	p := tea.NewProgram(newBrowserModel(ctx, ctrl, keyPath), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
