package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/logobrief/internal/logging"
	"github.com/muurk/logobrief/internal/submission"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenDiscovery     Screen = "discovery"
	ScreenQuestionnaire Screen = "questionnaire"
)

// AppConfig configures the application.
type AppConfig struct {
	// Questionnaire options. Options.Transport is used unless an intake
	// server is chosen on the discovery screen.
	Options Options

	// Discover starts on the intake server picker.
	Discover    bool
	Scan        ScanFunc
	ScanTimeout time.Duration

	// SubmitTimeout bounds HTTP submissions to a discovered server.
	SubmitTimeout time.Duration
}

// AppModel is the top-level coordinator model that manages screen transitions
type AppModel struct {
	CurrentScreen Screen

	DiscoveryModel     DiscoveryModel
	QuestionnaireModel QuestionnaireModel

	Width  int
	Height int

	config AppConfig
}

// NewAppModel creates the application. It starts on the intake server
// picker when cfg.Discover is set and a scan function is available.
func NewAppModel(cfg AppConfig) AppModel {
	m := AppModel{
		CurrentScreen: ScreenQuestionnaire,
		config:        cfg,
	}

	if cfg.Discover && cfg.Scan != nil {
		m.CurrentScreen = ScreenDiscovery
		m.DiscoveryModel = NewDiscoveryModel(cfg.Scan, cfg.ScanTimeout)
		return m
	}

	m.QuestionnaireModel = NewQuestionnaireModel(cfg.Options)
	return m
}

// Init initializes the application
func (m AppModel) Init() tea.Cmd {
	switch m.CurrentScreen {
	case ScreenDiscovery:
		return m.DiscoveryModel.Init()
	case ScreenQuestionnaire:
		return m.QuestionnaireModel.Init()
	default:
		return nil
	}
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case tea.KeyMsg:
		// Global quit handler
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch m.CurrentScreen {
	case ScreenDiscovery:
		m.DiscoveryModel, cmd = m.DiscoveryModel.Update(msg)
		if m.DiscoveryModel.Chosen() {
			return m.startQuestionnaire(cmd)
		}
	case ScreenQuestionnaire:
		m.QuestionnaireModel, cmd = m.QuestionnaireModel.Update(msg)
	}
	return m, cmd
}

// startQuestionnaire leaves the intake picker, binding the chosen endpoint
// to an HTTP transport.
func (m AppModel) startQuestionnaire(pending tea.Cmd) (tea.Model, tea.Cmd) {
	opts := m.config.Options
	if endpoint := m.DiscoveryModel.Endpoint; endpoint != "" {
		client := submission.NewHTTPClient(endpoint)
		if m.config.SubmitTimeout > 0 {
			client.SetTimeout(m.config.SubmitTimeout)
		}
		opts.Transport = client
		logging.Info("Intake server selected", zap.String("endpoint", client.Endpoint))
	} else {
		logging.Info("Continuing without an intake server")
	}

	m.QuestionnaireModel = NewQuestionnaireModel(opts)
	if m.Width > 0 {
		m.QuestionnaireModel, _ = m.QuestionnaireModel.Update(tea.WindowSizeMsg{Width: m.Width, Height: m.Height})
	}
	m.CurrentScreen = ScreenQuestionnaire

	return m, tea.Batch(pending, m.QuestionnaireModel.Init())
}

// View renders the current screen
func (m AppModel) View() string {
	switch m.CurrentScreen {
	case ScreenDiscovery:
		return m.DiscoveryModel.View()
	case ScreenQuestionnaire:
		return m.QuestionnaireModel.View()
	default:
		return "Unknown screen"
	}
}

// Run starts the application in the alternate screen and returns the final
// questionnaire state.
func Run(cfg AppConfig) (QuestionnaireModel, error) {
	program := tea.NewProgram(NewAppModel(cfg), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return QuestionnaireModel{}, err
	}
	return final.(AppModel).QuestionnaireModel, nil
}
