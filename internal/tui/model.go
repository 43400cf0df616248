package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/parley-dev/parley/internal/api"
	"github.com/parley-dev/parley/internal/chat"
	"github.com/parley-dev/parley/internal/config"
	"github.com/parley-dev/parley/internal/log"
)

// ViewState represents the current state of the TUI.
type ViewState int

const (
	StateSetup   ViewState = iota // Waiting for an API URL
	StateProbing                  // Connection test in flight
	StateChat                     // Main chat screen
)

// Model is the shared application state passed between views.
type Model struct {
	State ViewState

	Cfg        *config.Config
	Logger     *log.Logger
	Session    *chat.Session
	Client     *api.Client
	Dispatcher *chat.Dispatcher

	Width  int
	Height int

	Spinner      spinner.Model
	CtrlCPending bool
	Err          error
}

// NewModel creates the shared model. Session and Dispatcher exist from the
// start; the Client is built once the user supplies an API URL.
func NewModel(cfg *config.Config, logger *log.Logger) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(primaryColor))

	sess := chat.NewSession()
	sess.CustomerInfo = cfg.CustomerInfo

	return &Model{
		State:   StateSetup,
		Cfg:     cfg,
		Logger:  logger,
		Session: sess,
		Width:   80,
		Height:  24,
		Spinner: sp,
	}
}
