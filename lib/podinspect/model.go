// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package podinspect

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// row is one visible line of the flattened tree: a node together with
// the indent depth it was flattened at. Re-derived
// by flatten whenever expansion state or the underlying tree changes.
type row struct {
	node  *Node
	depth int
}

// Model is a bubbletea program over a decoded POD tree: arrow keys
// move the cursor and expand/collapse containers, '/' opens a fuzzy
// filter over visible labels and values.
type Model struct {
	root  *Node
	theme Theme

	rows   []row
	cursor int

	width  int
	height int

	filtering   bool
	filterInput string
	statusLine  string
}

// NewModel creates a Model rooted at root. Use [BuildTree] or
// [BuildTopLevel] to decode a POD buffer into root first.
func NewModel(root *Node) Model {
	model := Model{root: root, theme: DefaultTheme}
	model.flatten()
	return model
}

// Init implements tea.Model. The tree is already fully decoded before
// the program starts, so there is nothing to kick off.
func (model Model) Init() tea.Cmd { return nil }

// flatten rebuilds the visible row list from root's Expanded state.
// Called after any change to expansion or after building a new tree.
func (model *Model) flatten() {
	model.rows = model.rows[:0]
	if model.root == nil {
		return
	}
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		model.rows = append(model.rows, row{node: n, depth: depth})
		if !n.Expanded {
			return
		}
		for _, child := range n.Children {
			walk(child, depth+1)
		}
	}
	walk(model.root, 0)
	if model.cursor >= len(model.rows) {
		model.cursor = len(model.rows) - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		return model, nil

	case tea.KeyMsg:
		if model.filtering {
			return model.handleFilterKeys(message)
		}
		return model.handleTreeKeys(message)
	}
	return model, nil
}

func (model Model) handleTreeKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.String() {
	case "ctrl+c", "q":
		return model, tea.Quit
	case "up", "k":
		model.moveCursorUp()
	case "down", "j":
		model.moveCursorDown()
	case "left", "h":
		model.collapseOrGoToParent()
	case "right", "l", "enter":
		model.expandOrEnterFirstChild()
	case "/":
		model.filtering = true
		model.filterInput = ""
	case "g":
		model.cursor = 0
	case "G":
		model.cursor = len(model.rows) - 1
	}
	return model, nil
}

func (model Model) handleFilterKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyCtrlC:
		return model, tea.Quit
	case tea.KeyEsc:
		model.filtering = false
		model.filterInput = ""
		return model, nil
	case tea.KeyEnter:
		model.filtering = false
		model.jumpToNextMatch()
		return model, nil
	case tea.KeyBackspace:
		if len(model.filterInput) > 0 {
			runes := []rune(model.filterInput)
			model.filterInput = string(runes[:len(runes)-1])
		}
		return model, nil
	case tea.KeyRunes, tea.KeySpace:
		model.filterInput += message.String()
		return model, nil
	}
	return model, nil
}

// jumpToNextMatch moves the cursor to the first row after the current
// one whose label or value fuzzy-matches filterInput, wrapping around
// to the start of the tree if nothing after the cursor matches.
func (model *Model) jumpToNextMatch() {
	if model.filterInput == "" || len(model.rows) == 0 {
		return
	}
	pattern := []rune(model.filterInput)
	tryFrom := func(start int) bool {
		for i := start; i < len(model.rows); i++ {
			text := model.rows[i].node.Label + " " + model.rows[i].node.Value
			if match := fuzzyMatch(text, pattern, nil); match.Score >= 0 {
				model.cursor = i
				return true
			}
		}
		return false
	}
	if tryFrom(model.cursor + 1) {
		return
	}
	tryFrom(0)
}

func (model *Model) moveCursorUp() {
	if model.cursor > 0 {
		model.cursor--
	}
}

func (model *Model) moveCursorDown() {
	if model.cursor < len(model.rows)-1 {
		model.cursor++
	}
}

// collapseOrGoToParent handles the Left key:
//   - On an expanded container: collapse it.
//   - On a leaf or collapsed container: move the cursor to its parent.
func (model *Model) collapseOrGoToParent() {
	if model.cursor < 0 || model.cursor >= len(model.rows) {
		return
	}
	current := model.rows[model.cursor]
	if !current.node.leaf() && current.node.Expanded {
		current.node.Expanded = false
		model.flatten()
		return
	}
	for i := model.cursor - 1; i >= 0; i-- {
		if model.rows[i].depth < current.depth {
			model.cursor = i
			return
		}
	}
}

// expandOrEnterFirstChild handles the Right/Enter key:
//   - On a collapsed container: expand it.
//   - On an expanded container: move the cursor to its first child.
//   - On a leaf: no-op.
func (model *Model) expandOrEnterFirstChild() {
	if model.cursor < 0 || model.cursor >= len(model.rows) {
		return
	}
	current := model.rows[model.cursor]
	if current.node.leaf() {
		return
	}
	if !current.node.Expanded {
		current.node.Expanded = true
		model.flatten()
		return
	}
	if model.cursor+1 < len(model.rows) && model.rows[model.cursor+1].depth > current.depth {
		model.cursor++
	}
}

// View implements tea.Model.
func (model Model) View() string {
	var b strings.Builder
	for i, r := range model.rows {
		b.WriteString(model.renderRow(r, i == model.cursor))
		b.WriteString("\n")
	}
	if model.filtering {
		b.WriteString(fmt.Sprintf("/%s", model.filterInput))
	} else if model.statusLine != "" {
		b.WriteString(model.theme.helpStyle().Render(model.statusLine))
	} else {
		b.WriteString(model.theme.helpStyle().Render("↑/↓ move  ←/→ collapse/expand  / filter  q quit"))
	}
	return b.String()
}

func (theme Theme) helpStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.HelpText)
}

func (model Model) renderRow(r row, selected bool) string {
	indent := strings.Repeat("  ", r.depth)
	marker := "  "
	if !r.node.leaf() {
		if r.node.Expanded {
			marker = "▾ "
		} else {
			marker = "▸ "
		}
	}

	tagStyle := lipgloss.NewStyle().Foreground(model.theme.TagColor(r.node.Tag))
	label := r.node.Label
	if label == "" {
		label = r.node.Tag.String()
	}

	line := fmt.Sprintf("%s%s%s: %s", indent, marker, label, r.node.Value)
	line = tagStyle.Render(line)

	if selected {
		return lipgloss.NewStyle().
			Background(model.theme.SelectedBackground).
			Foreground(model.theme.SelectedForeground).
			Render(line)
	}
	return line
}
