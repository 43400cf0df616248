// Package app provides the main TUI application that wires all views together.
package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/parley-dev/parley/internal/api"
	"github.com/parley-dev/parley/internal/chat"
	"github.com/parley-dev/parley/internal/config"
	"github.com/parley-dev/parley/internal/log"
	"github.com/parley-dev/parley/internal/tui"
	"github.com/parley-dev/parley/internal/tui/commands"
	"github.com/parley-dev/parley/internal/tui/views"
)

// App is the main TUI application that wires all views together.
type App struct {
	model *tui.Model

	setupView views.SetupModel
	chatView  views.ChatModel
}

// New creates a new App with the given configuration.
func New(cfg *config.Config, logger *log.Logger) *App {
	model := tui.NewModel(cfg, logger)

	return &App{
		model: model,
		setupView: views.NewSetupModel(
			cfg.BaseURL(),
			model.Session.SenderID(),
			model.Width,
			model.Height,
		),
	}
}

// Init returns the initial command for the TUI.
func (a *App) Init() tea.Cmd {
	return a.setupView.Init()
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.model.Width = msg.Width
		a.model.Height = msg.Height
		var cmd tea.Cmd
		switch a.model.State {
		case tui.StateSetup:
			a.setupView, cmd = a.setupView.Update(msg)
		case tui.StateChat:
			a.chatView, cmd = a.chatView.Update(msg)
		}
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == tui.KeyCtrlC {
			if a.model.CtrlCPending {
				// Second press within timeout - exit.
				return a, tea.Quit
			}
			a.model.CtrlCPending = true
			return a, tea.Tick(time.Second, func(time.Time) tea.Msg {
				return tui.CtrlCResetMsg{}
			})
		}

	case tui.CtrlCResetMsg:
		a.model.CtrlCPending = false
		return a, nil
	}

	switch a.model.State {
	case tui.StateSetup:
		return a.updateSetup(msg)
	case tui.StateProbing:
		return a.updateProbing(msg)
	case tui.StateChat:
		return a.updateChat(msg)
	}

	return a, nil
}

// View renders the current application state.
func (a *App) View() string {
	switch a.model.State {
	case tui.StateSetup:
		return a.centerContent(a.setupView.View())
	case tui.StateProbing:
		return a.centerContent(a.renderProbingView())
	case tui.StateChat:
		return a.chatView.View()
	default:
		return "Unknown state"
	}
}

// centerContent centers the given content both horizontally and vertically.
func (a *App) centerContent(content string) string {
	return lipgloss.Place(
		a.model.Width,
		a.model.Height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// ============================================================================
// State Update Handlers
// ============================================================================

func (a *App) updateSetup(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.setupView, cmd = a.setupView.Update(msg)

	if submit, ok := msg.(views.SubmitURLMsg); ok {
		sess := a.model.Session
		a.model.Client = api.NewClient(
			sess.SenderID(),
			a.model.Cfg.ClientSettings(submit.URL),
		)
		a.model.Dispatcher = chat.NewDispatcher(sess, a.model.Client, a.model.Logger)

		a.model.State = tui.StateProbing
		return a, tea.Batch(
			a.model.Spinner.Tick,
			commands.ProbeCmd(a.model.Dispatcher, a.model.Client),
		)
	}

	return a, cmd
}

func (a *App) updateProbing(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		a.model.Spinner, cmd = a.model.Spinner.Update(msg)
		return a, cmd

	case tui.ProbeResultMsg:
		// Status was already recorded on the session by the probe command;
		// either way the chat screen opens, showing the indicator.
		a.model.State = tui.StateChat
		a.chatView = views.NewChatModel(
			a.model.Session.SenderID(),
			a.model.Session.Status(),
			a.model.Session.Messages(),
			a.model.Width,
			a.model.Height,
		)
		return a, a.chatView.Init()
	}

	return a, nil
}

func (a *App) updateChat(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.chatView, cmd = a.chatView.Update(msg)

	switch msg := msg.(type) {
	case views.SendChatMsg:
		return a, tea.Batch(cmd, commands.DispatchCmd(a.model.Dispatcher, msg.Content))

	case views.RequestProbeMsg:
		return a, tea.Batch(cmd, commands.ProbeCmd(a.model.Dispatcher, a.model.Client))

	case views.ClearHistoryMsg:
		a.model.Dispatcher.Clear()
		return a, cmd

	case views.ExitChatMsg:
		a.model.State = tui.StateSetup
		a.setupView = views.NewSetupModel(
			a.model.Client.BaseURL(),
			a.model.Session.SenderID(),
			a.model.Width,
			a.model.Height,
		)
		return a, a.setupView.Init()
	}

	return a, cmd
}

// renderProbingView renders the connection-test state.
func (a *App) renderProbingView() string {
	var b strings.Builder

	header := tui.TitleStyle.Render("Connecting...")
	b.WriteString(header)
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s Testing connection...", a.model.Spinner.View()))
	b.WriteString("\n\n")
	b.WriteString(tui.DimStyle.Render(a.model.Client.BaseURL() + "/test"))

	const maxBoxWidth = 70
	boxWidth := maxBoxWidth
	if a.model.Width-4 < boxWidth {
		boxWidth = a.model.Width - 4
	}

	return tui.BoxStyle.Width(boxWidth).Render(b.String())
}
