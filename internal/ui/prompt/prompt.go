// Package prompt provides the single-line input popup used to open a file
// and to start the sleep timer.
package prompt

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/audiobook/internal/ui"
	"github.com/llehouerou/audiobook/internal/ui/popup"
	"github.com/llehouerou/audiobook/internal/ui/styles"
)

// Compile-time check that Model implements popup.Popup.
var _ popup.Popup = (*Model)(nil)

// Kind tells what the entered text is for.
type Kind int

const (
	KindOpenFile Kind = iota + 1
	KindSleepMinutes
)

const maxMinutesDigits = 4

// Model is a text input popup.
type Model struct {
	ui.Base
	kind  Kind
	title string
	input textinput.Model
}

// New creates a new prompt model.
func New() Model {
	return Model{input: textinput.New()}
}

// Start opens the prompt with a title and initial text. Suggestions are
// offered with tab completion; the minutes prompt accepts digits only.
func (m *Model) Start(kind Kind, title, initialText string, suggestions []string, width int) tea.Cmd {
	m.kind = kind
	m.title = title

	in := textinput.New()
	in.Prompt = "> "
	in.PromptStyle = styles.T().S().Playing
	in.TextStyle = styles.T().S().Base
	in.Width = max(width-len(in.Prompt)-1, 1)
	in.SetSuggestions(suggestions)
	in.ShowSuggestions = len(suggestions) > 0
	if kind == KindSleepMinutes {
		in.CharLimit = maxMinutesDigits
		in.Placeholder = "minutes"
	}
	in.SetValue(initialText)
	in.CursorEnd()
	m.input = in
	m.SetSize(width, 1)
	return m.input.Focus()
}

// Active reports whether the prompt is open.
func (m Model) Active() bool {
	return m.kind != 0
}

// Kind returns what the prompt was opened for.
func (m Model) Kind() Kind {
	return m.kind
}

// Title returns the prompt title.
func (m Model) Title() string {
	return m.title
}

// Value returns the current text.
func (m Model) Value() string {
	return m.input.Value()
}

// Reset closes the prompt.
func (m *Model) Reset() {
	m.kind = 0
	m.title = ""
	m.input.Blur()
	m.input.SetValue("")
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			kind := m.kind
			return m, func() tea.Msg {
				return ActionMsg(Result{Kind: kind, Canceled: true})
			}
		case "enter":
			kind := m.kind
			text := strings.TrimSpace(m.input.Value())
			return m, func() tea.Msg {
				return ActionMsg(Result{Kind: kind, Text: text})
			}
		}
		if m.kind == KindSleepMinutes && key.Type == tea.KeyRunes && !allDigits(key.Runes) {
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements popup.Popup.
func (m *Model) View() string {
	return lipgloss.NewStyle().MaxWidth(m.Width()).Render(m.input.View())
}

// Hint returns the key help shown under the input.
func (m Model) Hint() string {
	if m.input.ShowSuggestions {
		return "Enter: confirm, Tab: complete, Esc: cancel"
	}
	return "Enter: confirm, Esc: cancel"
}

func allDigits(rs []rune) bool {
	for _, r := range rs {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
