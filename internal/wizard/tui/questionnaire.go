package tui

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/logobrief/internal/logging"
	"github.com/muurk/logobrief/internal/questionnaire"
	"github.com/muurk/logobrief/internal/submission"
)

// DefaultNotifyDuration is how long a notification stays visible when
// Options.NotifyDuration is zero.
const DefaultNotifyDuration = 5 * time.Second

// Messages for async operations
type submitCompleteMsg struct {
	receipt *submission.Receipt
	err     error
}

type notificationExpiredMsg struct {
	seq int
}

// itemKind is what a focusable row of a section does when activated.
type itemKind int

const (
	itemInput  itemKind = iota // single-line text or date
	itemArea                   // multi-line text
	itemOption                 // one member of a single-choice field
	itemCheck                  // one member of a set field
	itemAgree                  // the terms checkbox
	itemAttach                 // concept image path
	itemPrev
	itemNext
	itemSubmit
)

type item struct {
	kind  itemKind
	field questionnaire.Field
	value string
}

// typing reports whether the item consumes printable keys.
func (it item) typing() bool {
	return it.kind == itemInput || it.kind == itemArea || it.kind == itemAttach
}

func (it item) navigation() bool {
	return it.kind == itemPrev || it.kind == itemNext || it.kind == itemSubmit
}

// buildItems lists the focusable rows of a section in display order.
func buildItems(c *questionnaire.Catalog, section questionnaire.Section) []item {
	var items []item
	for _, spec := range questionnaire.FieldsIn(section) {
		switch spec.Kind {
		case questionnaire.KindText, questionnaire.KindDate:
			items = append(items, item{kind: itemInput, field: spec.Field})
		case questionnaire.KindLongText:
			items = append(items, item{kind: itemArea, field: spec.Field})
			if spec.Field == questionnaire.FieldConceptDescription {
				items = append(items, item{kind: itemAttach, field: spec.Field})
			}
		case questionnaire.KindChoice:
			for _, v := range c.Options(spec.Field) {
				items = append(items, item{kind: itemOption, field: spec.Field, value: v})
			}
		case questionnaire.KindSet:
			for _, v := range c.Options(spec.Field) {
				items = append(items, item{kind: itemCheck, field: spec.Field, value: v})
			}
		case questionnaire.KindBool:
			items = append(items, item{kind: itemAgree, field: spec.Field})
		}
	}

	if !section.IsFirst() {
		items = append(items, item{kind: itemPrev})
	}
	if section.IsLast() {
		items = append(items, item{kind: itemSubmit})
	} else {
		items = append(items, item{kind: itemNext})
	}
	return items
}

// questionnaireKeyMap defines key bindings for the questionnaire
type questionnaireKeyMap struct {
	NextSection key.Binding
	PrevSection key.Binding
	Up          key.Binding
	Down        key.Binding
	Select      key.Binding
	Submit      key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k questionnaireKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextSection, k.PrevSection, k.Select, k.Submit, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k questionnaireKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextSection, k.PrevSection, k.Up, k.Down},
		{k.Select, k.Submit, k.PageUp, k.PageDown},
		{k.Help, k.Quit},
	}
}

func newQuestionnaireKeyMap() questionnaireKeyMap {
	return questionnaireKeyMap{
		NextSection: key.NewBinding(key.WithKeys("tab", "ctrl+n"), key.WithHelp("tab", "next section")),
		PrevSection: key.NewBinding(key.WithKeys("shift+tab", "ctrl+p"), key.WithHelp("shift+tab", "previous section")),
		Up:          key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous item")),
		Down:        key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next item")),
		Select:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("space", "select")),
		Submit:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
		PageUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		Help:        key.NewBinding(key.WithKeys("?", "f1"), key.WithHelp("?", "toggle help")),
		Quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// Options configures a QuestionnaireModel.
type Options struct {
	// Transport receives the brief. Defaults to a SimulatedTransport.
	Transport submission.Transport

	// Form pre-fills the answers, for example from a brief file.
	Form *questionnaire.Form

	// Catalog overrides the embedded option catalog.
	Catalog *questionnaire.Catalog

	NotifyDuration time.Duration

	// Context is passed to the transport. Defaults to context.Background.
	Context context.Context
}

// QuestionnaireModel is the five-section logo design questionnaire.
//
// Form holds the answers and is only written from Update. The active
// section's focusable rows are rebuilt on every section change; Cursor
// indexes into them.
type QuestionnaireModel struct {
	Form    questionnaire.Form
	Section questionnaire.Section
	Cursor  int

	Width  int
	Height int

	catalog   *questionnaire.Catalog
	transport submission.Transport
	ctx       context.Context
	handler   submission.Handler

	items    []item
	inputs   map[questionnaire.Field]textinput.Model
	areas    map[questionnaire.Field]textarea.Model
	attach   textinput.Model
	attached string

	viewport viewport.Model
	spinner  spinner.Model
	help     help.Model
	keys     questionnaireKeyMap

	notice    *submission.Notification
	noticeSeq int
	notifyFor time.Duration
}

// NewQuestionnaireModel creates the questionnaire on its first section.
func NewQuestionnaireModel(opts Options) QuestionnaireModel {
	c := opts.Catalog
	if c == nil {
		c = questionnaire.MustCatalog()
	}
	t := opts.Transport
	if t == nil {
		t = submission.NewSimulatedTransport()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	notifyFor := opts.NotifyDuration
	if notifyFor <= 0 {
		notifyFor = DefaultNotifyDuration
	}
	form := questionnaire.NewForm()
	if opts.Form != nil {
		form = opts.Form.Normalize()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	attach := textinput.New()
	attach.Placeholder = "/path/to/concept.png"
	attach.CharLimit = 512

	m := QuestionnaireModel{
		Form:      form,
		Section:   questionnaire.SectionCompany,
		catalog:   c,
		transport: t,
		ctx:       ctx,
		inputs:    make(map[questionnaire.Field]textinput.Model),
		areas:     make(map[questionnaire.Field]textarea.Model),
		attach:    attach,
		viewport:  viewport.New(MinTerminalWidth-8, MinContentHeight),
		spinner:   s,
		help:      help.New(),
		keys:      newQuestionnaireKeyMap(),
		notifyFor: notifyFor,
	}

	for _, spec := range questionnaire.Fields() {
		switch spec.Kind {
		case questionnaire.KindText, questionnaire.KindDate:
			in := textinput.New()
			in.Placeholder = spec.Placeholder
			in.CharLimit = 200
			if spec.Kind == questionnaire.KindDate {
				in.CharLimit = len(questionnaire.DateLayout)
			}
			in.SetValue(form.Text(spec.Field))
			m.inputs[spec.Field] = in
		case questionnaire.KindLongText:
			ta := textarea.New()
			ta.Placeholder = spec.Placeholder
			ta.ShowLineNumbers = false
			ta.SetHeight(3)
			ta.SetValue(form.Text(spec.Field))
			m.areas[spec.Field] = ta
		}
	}

	m.items = buildItems(c, m.Section)
	m.resizeFields()
	m.focusCurrent()
	m.refresh(false)
	return m
}

// Init starts the cursor blinking in the first text field
func (m QuestionnaireModel) Init() tea.Cmd {
	return textinput.Blink
}

// ScrollOffset is the first visible line of the section panel.
func (m QuestionnaireModel) ScrollOffset() int { return m.viewport.YOffset }

// SubmitEnabled reports whether the submit control accepts input.
func (m QuestionnaireModel) SubmitEnabled() bool {
	return m.handler.CanSubmit(m.Form.TermsAgreement)
}

// Submitting reports whether a submission is in flight.
func (m QuestionnaireModel) Submitting() bool { return m.handler.Submitting() }

// Notification returns the visible notification, or nil.
func (m QuestionnaireModel) Notification() *submission.Notification { return m.notice }

// Receipt returns the receipt of the last accepted submission.
func (m QuestionnaireModel) Receipt() *submission.Receipt { return m.handler.Receipt() }

// LastError returns the error of the last failed submission, if the most
// recent attempt failed.
func (m QuestionnaireModel) LastError() error {
	if m.handler.State() != submission.StateFailed {
		return nil
	}
	return m.handler.LastError()
}

// Attached returns the file name of the last attached concept image.
func (m QuestionnaireModel) Attached() string { return m.attached }

// TransportName names where briefs are sent.
func (m QuestionnaireModel) TransportName() string { return m.transport.Name() }

// FocusedField returns the field of the focused row, or "" on a button.
func (m QuestionnaireModel) FocusedField() questionnaire.Field {
	if m.Cursor < 0 || m.Cursor >= len(m.items) {
		return ""
	}
	return m.items[m.Cursor].field
}

// Update handles messages and updates the model
func (m QuestionnaireModel) Update(msg tea.Msg) (QuestionnaireModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = max(msg.Width-8, MinTerminalWidth-8)
		m.viewport.Height = viewportHeight(msg.Height)
		m.resizeFields()
		m.refresh(true)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case submitCompleteMsg:
		n := m.handler.Complete(msg.receipt, msg.err)
		m.refresh(false)
		return m, m.notify(n)

	case notificationExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = nil
		}
		return m, nil

	case spinner.TickMsg:
		if !m.handler.Submitting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh(false)
		return m, cmd
	}

	// Cursor blinks and other component messages
	return m.updateFocused(msg)
}

func (m QuestionnaireModel) handleKey(msg tea.KeyMsg) (QuestionnaireModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.NextSection):
		return m, m.gotoSection(questionnaire.Next(m.Section))

	case key.Matches(msg, m.keys.PrevSection):
		return m, m.gotoSection(questionnaire.Prev(m.Section))

	case key.Matches(msg, m.keys.Help) && (msg.Type != tea.KeyRunes || !m.typingFocused()):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case m.areaCursorMove(msg):
		return m.updateFocused(msg)

	case key.Matches(msg, m.keys.Up):
		return m, m.moveCursor(m.Cursor - 1)

	case key.Matches(msg, m.keys.Down):
		return m, m.moveCursor(m.Cursor + 1)

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height)
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height)
		return m, nil
	}

	it := m.items[m.Cursor]
	if it.typing() {
		if msg.Type == tea.KeyEnter {
			switch it.kind {
			case itemInput:
				return m, m.moveCursor(m.Cursor + 1)
			case itemAttach:
				return m, m.confirmAttachment()
			}
		}
		return m.updateFocused(msg)
	}

	if key.Matches(msg, m.keys.Select) {
		return m.activate(it)
	}
	return m, nil
}

func (m QuestionnaireModel) typingFocused() bool {
	return m.Cursor < len(m.items) && m.items[m.Cursor].typing()
}

// areaCursorMove reports whether an up or down key should move the cursor
// inside the focused text area rather than leave it.
func (m QuestionnaireModel) areaCursorMove(msg tea.KeyMsg) bool {
	if m.Cursor >= len(m.items) || m.items[m.Cursor].kind != itemArea {
		return false
	}
	ta := m.areas[m.items[m.Cursor].field]
	row := ta.LineInfo().RowOffset
	switch {
	case key.Matches(msg, m.keys.Up):
		return ta.Line() > 0 || row > 0
	case key.Matches(msg, m.keys.Down):
		return ta.Line() < ta.LineCount()-1 || row < ta.LineInfo().Height-1
	}
	return false
}

// helpKeys returns the bindings for the footer. While a text row has focus
// "?" is typed into it, so help is advertised on f1 instead.
func (m QuestionnaireModel) helpKeys() questionnaireKeyMap {
	keys := m.keys
	if m.typingFocused() {
		keys.Help.SetHelp("f1", "toggle help")
	}
	return keys
}

// activate applies a select/toggle keypress to the focused row.
func (m QuestionnaireModel) activate(it item) (QuestionnaireModel, tea.Cmd) {
	var err error
	switch it.kind {
	case itemOption:
		m.Form, err = m.Form.SetText(it.field, it.value)
	case itemCheck:
		m.Form, err = m.Form.Toggle(it.field, it.value)
	case itemAgree:
		m.Form, err = m.Form.SetBool(it.field, !m.Form.TermsAgreement)
	case itemPrev:
		return m, m.gotoSection(questionnaire.Prev(m.Section))
	case itemNext:
		return m, m.gotoSection(questionnaire.Next(m.Section))
	case itemSubmit:
		return m.submit()
	}
	if err != nil {
		logging.Warn("Form update rejected", zap.String("field", string(it.field)), zap.Error(err))
	}
	m.refresh(false)
	return m, nil
}

// updateFocused forwards msg to the focused text component and copies its
// value into the form.
func (m QuestionnaireModel) updateFocused(msg tea.Msg) (QuestionnaireModel, tea.Cmd) {
	if m.Cursor >= len(m.items) {
		return m, nil
	}
	it := m.items[m.Cursor]

	var cmd tea.Cmd
	switch it.kind {
	case itemInput:
		in := m.inputs[it.field]
		in, cmd = in.Update(msg)
		m.inputs[it.field] = in
		m.Form, _ = m.Form.SetText(it.field, in.Value())
	case itemArea:
		ta := m.areas[it.field]
		ta, cmd = ta.Update(msg)
		m.areas[it.field] = ta
		m.Form, _ = m.Form.SetText(it.field, ta.Value())
	case itemAttach:
		m.attach, cmd = m.attach.Update(msg)
	default:
		return m, nil
	}
	m.refresh(false)
	return m, cmd
}

// submit validates the form and starts the transport call. The control is
// inert while disabled.
func (m QuestionnaireModel) submit() (QuestionnaireModel, tea.Cmd) {
	if !m.SubmitEnabled() {
		return m, nil
	}

	if errs := questionnaire.ValidateWith(m.catalog, m.Form); len(errs) > 0 {
		first := questionnaire.FirstInvalid(errs)
		logging.Debug("Questionnaire incomplete",
			zap.Int("problems", len(errs)),
			zap.String("first", string(first.Field)),
		)
		focus := m.jumpTo(first.Section, first.Field)
		return m, tea.Batch(focus, m.notify(submission.IncompleteNotification(first)))
	}

	if err := m.handler.Begin(m.Form); err != nil {
		return m, nil
	}
	m.refresh(false)

	ctx, t, form := m.ctx, m.transport, m.Form
	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			receipt, err := submission.Dispatch(ctx, t, form)
			return submitCompleteMsg{receipt: receipt, err: err}
		},
	)
}

func (m *QuestionnaireModel) confirmAttachment() tea.Cmd {
	path := strings.TrimSpace(m.attach.Value())
	if path == "" {
		return nil
	}
	logging.LogAttachment(path)
	m.attached = filepath.Base(path)
	m.attach.SetValue("")
	m.refresh(false)
	return m.notify(submission.AttachmentNotification())
}

// notify shows n and schedules its removal. A newer notification replaces
// it and outlives the older timer.
func (m *QuestionnaireModel) notify(n submission.Notification) tea.Cmd {
	m.notice = &n
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(m.notifyFor, func(time.Time) tea.Msg {
		return notificationExpiredMsg{seq: seq}
	})
}

// gotoSection switches panels. The panel scrolls back to the top and the
// first row takes focus. Staying on the same section changes nothing.
func (m *QuestionnaireModel) gotoSection(s questionnaire.Section) tea.Cmd {
	if s == m.Section {
		return nil
	}
	m.blurCurrent()
	m.Section = s
	m.items = buildItems(m.catalog, s)
	m.Cursor = 0
	m.viewport.GotoTop()
	m.refresh(false)
	return m.focusCurrent()
}

// jumpTo activates section and focuses the first row of field.
func (m *QuestionnaireModel) jumpTo(s questionnaire.Section, field questionnaire.Field) tea.Cmd {
	cmd := m.gotoSection(s)
	for i, it := range m.items {
		if it.field == field {
			return tea.Batch(cmd, m.moveCursor(i))
		}
	}
	return cmd
}

func (m *QuestionnaireModel) moveCursor(to int) tea.Cmd {
	to = max(0, min(to, len(m.items)-1))
	if to == m.Cursor {
		return nil
	}
	m.blurCurrent()
	m.Cursor = to
	cmd := m.focusCurrent()
	m.refresh(true)
	return cmd
}

func (m *QuestionnaireModel) focusCurrent() tea.Cmd {
	it := m.items[m.Cursor]
	switch it.kind {
	case itemInput:
		in := m.inputs[it.field]
		cmd := in.Focus()
		m.inputs[it.field] = in
		return cmd
	case itemArea:
		ta := m.areas[it.field]
		cmd := ta.Focus()
		m.areas[it.field] = ta
		return cmd
	case itemAttach:
		return m.attach.Focus()
	}
	return nil
}

func (m *QuestionnaireModel) blurCurrent() {
	it := m.items[m.Cursor]
	switch it.kind {
	case itemInput:
		in := m.inputs[it.field]
		in.Blur()
		m.inputs[it.field] = in
	case itemArea:
		ta := m.areas[it.field]
		ta.Blur()
		m.areas[it.field] = ta
	case itemAttach:
		m.attach.Blur()
	}
}

func (m *QuestionnaireModel) resizeFields() {
	w := max(m.viewport.Width-6, 20)
	for f, in := range m.inputs {
		in.Width = w - 4
		m.inputs[f] = in
	}
	for f, ta := range m.areas {
		ta.SetWidth(w)
		m.areas[f] = ta
	}
	m.attach.Width = w - 4
}

// refresh re-renders the section into the viewport. With follow set, the
// viewport scrolls just enough to show the focused row.
func (m *QuestionnaireModel) refresh(follow bool) {
	body, starts := m.renderBody()
	m.viewport.SetContent(body)
	if !follow || m.Cursor >= len(starts) {
		return
	}
	line := starts[m.Cursor]
	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}
