// Package views provides TUI view components for the parley application.
package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/parley-dev/parley/internal/tui"
)

// ============================================================================
// Message Types
// ============================================================================

// SubmitURLMsg is sent when the user submits an API base URL.
type SubmitURLMsg struct {
	URL string
}

// ============================================================================
// SetupModel
// ============================================================================

// SetupModel is the view model for the API URL entry screen.
type SetupModel struct {
	textInput textinput.Model
	senderID  string
	errText   string
	width     int
	height    int
}

// NewSetupModel creates a SetupModel, prefilled with any previously known URL.
func NewSetupModel(initialURL, senderID string, width, height int) SetupModel {
	ti := textinput.New()
	ti.Placeholder = "https://your-tunnel.example.io"
	ti.CharLimit = 500
	ti.Width = width - 14
	ti.SetValue(initialURL)
	ti.Focus()

	return SetupModel{
		textInput: ti,
		senderID:  senderID,
		width:     width,
		height:    height,
	}
}

// Init returns the initial command for the setup view.
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the setup view.
func (m SetupModel) Update(msg tea.Msg) (SetupModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == tui.KeyEnter {
			value := strings.TrimSpace(m.textInput.Value())
			if value == "" {
				m.errText = "Please enter an API URL first"
				return m, nil
			}
			m.errText = ""
			return m, func() tea.Msg {
				return SubmitURLMsg{URL: value}
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 14
		return m, nil
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// View renders the setup view.
func (m SetupModel) View() string {
	var b strings.Builder

	header := tui.TitleStyle.Render("Parley - Developer Chat")
	b.WriteString(header)
	b.WriteString("\n\n")

	b.WriteString("API base URL:\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	if m.errText != "" {
		b.WriteString(tui.WarningStyle.Render(m.errText))
		b.WriteString("\n\n")
	}

	b.WriteString(tui.DimStyle.Render("Sender ID: " + m.senderID))
	b.WriteString("\n\n")

	footer := tui.DimStyle.Render("Enter: Connect · Ctrl+C: Exit")
	b.WriteString(footer)

	const maxBoxWidth = 70
	boxWidth := maxBoxWidth
	if m.width-4 < boxWidth {
		boxWidth = m.width - 4
	}

	return tui.BoxStyle.Width(boxWidth).Render(b.String())
}
