package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/parley-dev/parley/internal/chat"
	"github.com/parley-dev/parley/internal/tui"
)

// ============================================================================
// Message Types
// ============================================================================

// SendChatMsg is sent when the user submits a chat message.
type SendChatMsg struct {
	Content string
}

// RequestProbeMsg is sent when the user asks for a connection test.
type RequestProbeMsg struct{}

// ClearHistoryMsg is sent when the user clears the transcript.
type ClearHistoryMsg struct{}

// ExitChatMsg signals that the user wants to go back and change the URL.
type ExitChatMsg struct{}

// ============================================================================
// ChatModel
// ============================================================================

// ChatModel is the view model for the chat screen. It keeps its own copy of
// the transcript for rendering; the session remains the source of truth.
type ChatModel struct {
	messages  []chat.Message
	textarea  textarea.Model
	viewport  viewport.Model
	spinner   spinner.Model
	senderID  string
	status    chat.Status
	isLoading bool
	isProbing bool
	width     int
	height    int
}

// NewChatModel creates a ChatModel seeded from the session's transcript.
func NewChatModel(senderID string, status chat.Status, messages []chat.Message, width, height int) ChatModel {
	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.CharLimit = 5000
	ta.SetWidth(width - 8)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.Focus()

	// Shift+Enter inserts a newline; plain Enter submits.
	keyMap := ta.KeyMap
	keyMap.InsertNewline = key.NewBinding(
		key.WithKeys("shift+enter", "ctrl+j"),
		key.WithHelp("shift+enter", "new line"),
	)
	ta.KeyMap = keyMap

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED"))

	vpHeight := height - 14
	if vpHeight < 5 {
		vpHeight = 5
	}
	vpWidth := width - 8
	if vpWidth < 20 {
		vpWidth = 20
	}

	vp := viewport.New(vpWidth, vpHeight)
	vp.SetContent(formatMessages(messages))
	vp.GotoBottom()

	return ChatModel{
		messages: messages,
		textarea: ta,
		viewport: vp,
		spinner:  sp,
		senderID: senderID,
		status:   status,
		width:    width,
		height:   height,
	}
}

// Status returns the connection status the view is displaying.
func (m ChatModel) Status() chat.Status {
	return m.status
}

// Messages returns the transcript copy the view is rendering.
func (m ChatModel) Messages() []chat.Message {
	return m.messages
}

// Busy reports whether a dispatch or probe is in flight.
func (m ChatModel) Busy() bool {
	return m.isLoading || m.isProbing
}

// Init returns the initial command for the chat view.
func (m ChatModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// Update handles messages for the chat view.
func (m ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// The input surface is disabled while a call is in flight: one
		// dispatch at a time, and the session must not be touched until
		// the result message arrives.
		if m.Busy() {
			return m, nil
		}

		keys := tui.DefaultKeyMap
		switch {
		case key.Matches(msg, keys.Send):
			content := strings.TrimSpace(m.textarea.Value())
			if content == "" || m.status != chat.StatusConnected {
				return m, nil
			}

			// Show the user entry immediately; the dispatcher records the
			// authoritative copy in the session.
			m.messages = append(m.messages, chat.Message{
				Role:      chat.RoleUser,
				Content:   content,
				Timestamp: time.Now().Format(chat.TimestampFormat),
			})
			m.viewport.SetContent(formatMessages(m.messages))
			m.viewport.GotoBottom()

			m.textarea.Reset()
			m.isLoading = true

			return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
				return SendChatMsg{Content: content}
			})

		case key.Matches(msg, keys.NewLine):
			m.textarea.InsertString("\n")
			return m, nil

		case key.Matches(msg, keys.Probe):
			m.isProbing = true
			return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
				return RequestProbeMsg{}
			})

		case key.Matches(msg, keys.Clear):
			m.messages = nil
			m.viewport.SetContent(formatMessages(nil))
			return m, func() tea.Msg {
				return ClearHistoryMsg{}
			}

		case key.Matches(msg, keys.Back):
			return m, func() tea.Msg {
				return ExitChatMsg{}
			}
		}

	case tui.DispatchDoneMsg:
		m.messages = append(m.messages, msg.Reply)
		m.viewport.SetContent(formatMessages(m.messages))
		m.viewport.GotoBottom()
		m.isLoading = false
		return m, nil

	case tui.DispatchBlockedMsg:
		m.isLoading = false
		return m, nil

	case tui.ProbeResultMsg:
		if msg.Connected {
			m.status = chat.StatusConnected
		} else {
			m.status = chat.StatusDisconnected
		}
		m.isProbing = false
		return m, nil

	case spinner.TickMsg:
		if m.Busy() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := msg.Height - 14
		if vpHeight < 5 {
			vpHeight = 5
		}
		vpWidth := msg.Width - 8
		if vpWidth < 20 {
			vpWidth = 20
		}

		m.viewport.Width = vpWidth
		m.viewport.Height = vpHeight
		m.textarea.SetWidth(vpWidth)

		m.viewport.SetContent(formatMessages(m.messages))
		return m, nil
	}

	if !m.Busy() {
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the chat view.
func (m ChatModel) View() string {
	var b strings.Builder

	header := tui.TitleStyle.Render("Developer Chat")
	b.WriteString(header)
	b.WriteString("\n\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n\n")

	switch {
	case m.isLoading:
		b.WriteString(fmt.Sprintf("%s Getting response...", m.spinner.View()))
		b.WriteString("\n\n")
		b.WriteString(tui.DimStyle.Render(m.textarea.View()))
	case m.isProbing:
		b.WriteString(fmt.Sprintf("%s Testing connection...", m.spinner.View()))
		b.WriteString("\n\n")
		b.WriteString(tui.DimStyle.Render(m.textarea.View()))
	case m.status != chat.StatusConnected:
		b.WriteString(tui.WarningStyle.Render("Disconnected - press Ctrl+T to test the connection"))
		b.WriteString("\n\n")
		b.WriteString(tui.DimStyle.Render(m.textarea.View()))
	default:
		b.WriteString(m.textarea.View())
	}

	b.WriteString("\n\n")
	b.WriteString(m.statusLine())

	boxed := tui.BoxStyle.
		Width(m.width - 4).
		Render(b.String())

	contentHeight := lipgloss.Height(boxed)
	if m.height > contentHeight {
		padding := (m.height - contentHeight) / 3
		if padding > 0 {
			boxed = strings.Repeat("\n", padding) + boxed
		}
	}

	return boxed
}

// statusLine renders the connection indicator, the sender ID, and key help.
func (m ChatModel) statusLine() string {
	dot := tui.StatusDisconnectedDot
	if m.status == chat.StatusConnected {
		dot = tui.StatusConnectedDot
	}

	left := fmt.Sprintf("%s %s", dot, m.status)
	sender := tui.DimStyle.Render("sender " + m.senderID)

	keys := tui.DefaultKeyMap
	var parts []string
	for _, b := range []key.Binding{keys.Send, keys.Probe, keys.Clear, keys.Back} {
		h := b.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	help := tui.DimStyle.Render(strings.Join(parts, " · "))

	return left + "  " + sender + "\n" + help
}

// formatMessages formats the chat transcript for display in the viewport.
func formatMessages(messages []chat.Message) string {
	if len(messages) == 0 {
		return tui.DimStyle.Render("No messages yet. Start the conversation!")
	}

	var b strings.Builder
	for i, msg := range messages {
		var prefix string
		var style lipgloss.Style

		switch msg.Role {
		case chat.RoleUser:
			prefix = "You: "
			style = tui.UserStyle
		case chat.RoleAssistant:
			prefix = "API: "
			style = tui.AssistantStyle
		default:
			prefix = string(msg.Role) + ": "
			style = tui.DimStyle
		}

		b.WriteString(style.Render(prefix))
		b.WriteString(msg.Content)
		if msg.Timestamp != "" {
			b.WriteString("\n")
			b.WriteString(tui.DimStyle.Render(msg.Timestamp))
		}

		if i < len(messages)-1 {
			b.WriteString("\n\n")
		}
	}

	return b.String()
}
