package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/logobrief/internal/discovery"
)

// Messages for async operations
type scanStartMsg struct{}
type scanCompleteMsg struct {
	services []*discovery.Service
	err      error
}

// ScanFunc finds intake servers. It is discovery.Scanner.Scan in production.
type ScanFunc func(ctx context.Context) ([]*discovery.Service, error)

// discoveryKeyMap defines key bindings for the intake picker
type discoveryKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Enter   key.Binding
	Rescan  key.Binding
	Manual  key.Binding
	Offline key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k discoveryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Rescan, k.Manual, k.Offline, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k discoveryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter},
		{k.Rescan, k.Manual, k.Offline, k.Quit},
	}
}

// manualModeKeyMap defines key bindings for manual endpoint entry
type manualModeKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

func (m manualModeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{m.Confirm, m.Cancel}
}

func (m manualModeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{m.Confirm, m.Cancel}}
}

// serviceItem wraps a Service for use with bubbles/list
type serviceItem struct {
	service *discovery.Service
}

func (s serviceItem) FilterValue() string {
	return s.service.Instance + " " + s.service.IP + " " + s.service.Hostname
}

func (s serviceItem) Title() string {
	return s.service.Instance
}

func (s serviceItem) Description() string {
	return s.service.URL()
}

// serviceDelegate renders each intake server as a card
type serviceDelegate struct {
	width int
}

func (d serviceDelegate) Height() int { return 6 }

func (d serviceDelegate) Spacing() int { return 1 }

func (d serviceDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d serviceDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	si, ok := item.(serviceItem)
	if !ok {
		return
	}
	svc := si.service
	selected := index == m.Index()

	var content strings.Builder
	content.WriteString(RenderMenuItem(svc.Instance, selected))
	content.WriteString("\n\n")
	fmt.Fprintf(&content, "  Endpoint: %s\n", svc.URL())
	version := svc.Version
	if version == "" {
		version = "unknown"
	}
	fmt.Fprintf(&content, "  Version:  %s", version)

	cardWidth := max(d.width-6, MinTerminalWidth-6)
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 2).
		MarginLeft(2).
		Width(cardWidth)
	if selected {
		cardStyle = cardStyle.BorderForeground(HighlightColor)
	}

	fmt.Fprint(w, cardStyle.Render(content.String()))
}

// DiscoveryModel is the intake picker shown before the questionnaire when
// discovery is enabled. The user picks a discovered server, types an
// endpoint, or continues offline with the simulated transport.
type DiscoveryModel struct {
	Scanning    bool
	ServiceList list.Model
	Err         error

	// Outcome: exactly one of these is set once the user has chosen.
	Endpoint string
	Offline  bool

	ManualMode    bool
	EndpointInput textinput.Model

	Width         int
	Height        int
	Spinner       spinner.Model
	ProgressBar   progress.Model
	ScanStartTime time.Time
	ScanTimeout   time.Duration
	Help          help.Model
	Keys          discoveryKeyMap
	ManualKeys    manualModeKeyMap

	scan ScanFunc
}

// NewDiscoveryModel creates an intake picker that scans with scan.
func NewDiscoveryModel(scan ScanFunc, timeout time.Duration) DiscoveryModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	input := textinput.New()
	input.Placeholder = "intake.local:8080"
	input.CharLimit = 253
	input.Width = 40

	progressBar := progress.New(progress.WithDefaultGradient())
	progressBar.Width = 40

	serviceList := list.New([]list.Item{}, serviceDelegate{width: MinTerminalWidth}, 0, 0)
	serviceList.Title = "Intake Servers"
	serviceList.SetShowStatusBar(false)
	serviceList.SetFilteringEnabled(false)
	serviceList.SetShowHelp(false)
	serviceList.Styles.Title = TitleStyle

	if timeout <= 0 {
		timeout = discovery.DefaultScanTimeout
	}

	return DiscoveryModel{
		ServiceList:   serviceList,
		EndpointInput: input,
		Spinner:       s,
		ProgressBar:   progressBar,
		ScanTimeout:   timeout,
		Help:          help.New(),
		Keys: discoveryKeyMap{
			Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up")),
			Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down")),
			Enter:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "use server")),
			Rescan:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rescan")),
			Manual:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "enter endpoint")),
			Offline: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip (simulated)")),
			Quit:    key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
		},
		ManualKeys: manualModeKeyMap{
			Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
			Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		},
		scan: scan,
	}
}

// Init starts the first scan
func (m DiscoveryModel) Init() tea.Cmd {
	return m.startScan()
}

func (m DiscoveryModel) startScan() tea.Cmd {
	scan, timeout := m.scan, m.ScanTimeout
	return tea.Batch(
		func() tea.Msg { return scanStartMsg{} },
		func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout+time.Second)
			defer cancel()
			services, err := scan(ctx)
			return scanCompleteMsg{services: services, err: err}
		},
		m.Spinner.Tick,
	)
}

// Chosen reports whether the user has picked an endpoint or gone offline.
func (m DiscoveryModel) Chosen() bool {
	return m.Endpoint != "" || m.Offline
}

// Update handles messages and updates the model
func (m DiscoveryModel) Update(msg tea.Msg) (DiscoveryModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.ManualMode {
			return m.updateManualMode(msg)
		}
		return m.updateNormalMode(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.ServiceList.SetDelegate(serviceDelegate{width: msg.Width - 4})
		m.ServiceList.SetWidth(msg.Width - 4)
		m.ServiceList.SetHeight(max(msg.Height-10, 0))

	case scanStartMsg:
		m.Scanning = true
		m.ScanStartTime = time.Now()

	case scanCompleteMsg:
		m.Scanning = false
		m.Err = msg.err
		items := make([]list.Item, len(msg.services))
		for i, svc := range msg.services {
			items[i] = serviceItem{service: svc}
		}
		m.ServiceList.SetItems(items)

	case spinner.TickMsg:
		if !m.Scanning {
			return m, nil
		}
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m DiscoveryModel) updateNormalMode(msg tea.KeyMsg) (DiscoveryModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Offline):
		m.Offline = true
		return m, nil

	case key.Matches(msg, m.Keys.Manual):
		m.ManualMode = true
		m.EndpointInput.SetValue("")
		return m, m.EndpointInput.Focus()
	}

	if m.Scanning {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.Keys.Enter):
		if item, ok := m.ServiceList.SelectedItem().(serviceItem); ok {
			m.Endpoint = item.service.URL()
		}
		return m, nil

	case key.Matches(msg, m.Keys.Rescan):
		m.ServiceList.SetItems([]list.Item{})
		m.Err = nil
		return m, m.startScan()
	}

	var cmd tea.Cmd
	m.ServiceList, cmd = m.ServiceList.Update(msg)
	return m, cmd
}

func (m DiscoveryModel) updateManualMode(msg tea.KeyMsg) (DiscoveryModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.ManualKeys.Cancel):
		m.ManualMode = false
		m.EndpointInput.Blur()
		return m, nil

	case key.Matches(msg, m.ManualKeys.Confirm):
		if value := strings.TrimSpace(m.EndpointInput.Value()); value != "" {
			m.Endpoint = value
			m.ManualMode = false
			m.EndpointInput.Blur()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.EndpointInput, cmd = m.EndpointInput.Update(msg)
	return m, cmd
}

// View renders the intake picker
func (m DiscoveryModel) View() string {
	width := m.Width
	if width == 0 {
		width = MinTerminalWidth
	}

	var content, helpText string
	switch {
	case m.ManualMode:
		content = m.renderManualEntry()
		helpText = m.Help.View(m.ManualKeys)
	case m.Scanning:
		content = m.renderScanning(width)
		helpText = m.Help.View(m.Keys)
	default:
		content = m.renderResults()
		helpText = m.Help.View(m.Keys)
	}

	return RenderApplicationContainer(content, helpText, "choosing intake server", width, m.Height)
}

func (m DiscoveryModel) renderScanning(width int) string {
	elapsed := time.Since(m.ScanStartTime)
	percent := min(1, elapsed.Seconds()/m.ScanTimeout.Seconds())

	content := lipgloss.JoinVertical(lipgloss.Center,
		"",
		TitleStyle.Render(m.Spinner.View()+" SEARCHING FOR INTAKE SERVERS"),
		"",
		SubtitleStyle.Render("Browsing the local network for logobrief intake servers..."),
		"",
		m.ProgressBar.ViewAs(percent),
		"",
	)
	return lipgloss.Place(width-4, 0, lipgloss.Center, lipgloss.Top, content)
}

func (m DiscoveryModel) renderResults() string {
	var b strings.Builder
	b.WriteString("\n")

	switch {
	case m.Err != nil:
		b.WriteString(RenderError(fmt.Sprintf("Scan failed: %v", m.Err)))
		b.WriteString("\n\n")
		b.WriteString(m.renderTroubleshooting())

	case len(m.ServiceList.Items()) == 0:
		b.WriteString("  ")
		b.WriteString(lipgloss.NewStyle().Foreground(WarningColor).Bold(true).Render("⚠ No intake servers found on your network"))
		b.WriteString("\n\n")
		b.WriteString(m.renderTroubleshooting())

	default:
		b.WriteString(m.ServiceList.View())
	}

	return b.String()
}

func (m DiscoveryModel) renderTroubleshooting() string {
	return "  Troubleshooting:\n" +
		"    • Start one with: logobrief-server serve\n" +
		"    • Multicast DNS must be allowed between you and the server\n" +
		"    • Press m to type an endpoint, or s to continue offline\n"
}

func (m DiscoveryModel) renderManualEntry() string {
	var b strings.Builder
	b.WriteString(SubtitleStyle.Render("Enter the intake server endpoint"))
	b.WriteString("\n\n")
	b.WriteString("  Endpoint: ")
	b.WriteString(m.EndpointInput.View())
	b.WriteString("\n\n")
	return b.String()
}
