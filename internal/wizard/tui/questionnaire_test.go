package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/muurk/logobrief/internal/questionnaire"
	"github.com/muurk/logobrief/internal/submission"
)

type recordingTransport struct {
	forms []questionnaire.Form
	err   error
}

func (r *recordingTransport) Name() string { return "recording" }

func (r *recordingTransport) Submit(_ context.Context, form questionnaire.Form) (*submission.Receipt, error) {
	r.forms = append(r.forms, form)
	if r.err != nil {
		return nil, r.err
	}
	return &submission.Receipt{ID: "r-1", ReceivedAt: time.Now()}, nil
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "f1":
		return tea.KeyMsg{Type: tea.KeyF1}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(m QuestionnaireModel, keys ...string) QuestionnaireModel {
	for _, k := range keys {
		m, _ = m.Update(keyMsg(k))
	}
	return m
}

// collect runs cmd and any batched commands and returns their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func submitResult(t *testing.T, cmd tea.Cmd) submitCompleteMsg {
	t.Helper()
	for _, msg := range collect(cmd) {
		if done, ok := msg.(submitCompleteMsg); ok {
			return done
		}
	}
	t.Fatal("submit command produced no submitCompleteMsg")
	return submitCompleteMsg{}
}

func completeForm() questionnaire.Form {
	f := questionnaire.NewForm()
	f.BusinessName = "Acme Roasters"
	f.Industry = "Coffee Shop"
	f.BusinessDescription = "Small batch coffee"
	f.LogoMessage = "Warmth"
	f.TargetAudience = "Commuters"
	f.LogoType = "combination"
	f.LogoUseLocations = []string{"Website"}
	f.FileFormats = []string{"SVG"}
	f.ServiceTier = "logo-only"
	f.Deadline = "2026-12-01"
	f.TermsAgreement = true
	return f
}

func newTestModel(t *testing.T, tr submission.Transport, form *questionnaire.Form, height int) QuestionnaireModel {
	t.Helper()
	m := NewQuestionnaireModel(Options{
		Transport:      tr,
		Form:           form,
		NotifyDuration: time.Millisecond,
	})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 200, Height: height})
	return m
}

func TestSectionBoundaries(t *testing.T) {
	m := newTestModel(t, &recordingTransport{}, nil, 60)

	m = press(m, "shift+tab")
	if m.Section != questionnaire.SectionCompany {
		t.Errorf("Section after shift+tab on first = %v, want company", m.Section)
	}

	m = press(m, "tab", "tab", "tab", "tab")
	if m.Section != questionnaire.SectionBudget {
		t.Fatalf("Section after four tabs = %v, want budget", m.Section)
	}

	m = press(m, "tab")
	if m.Section != questionnaire.SectionBudget {
		t.Errorf("Section after tab on last = %v, want budget", m.Section)
	}

	m = press(m, "shift+tab", "tab")
	if m.Section != questionnaire.SectionBudget {
		t.Errorf("Section after shift+tab, tab = %v, want budget", m.Section)
	}
}

func TestSectionChangeScrollsToTop(t *testing.T) {
	m := newTestModel(t, &recordingTransport{}, nil, 20)

	m = press(m, "pgdown")
	if m.ScrollOffset() == 0 {
		t.Fatal("ScrollOffset() = 0 after pgdown, want > 0")
	}

	m = press(m, "tab")
	if m.ScrollOffset() != 0 {
		t.Errorf("ScrollOffset() after tab = %d, want 0", m.ScrollOffset())
	}
	if m.Cursor != 0 {
		t.Errorf("Cursor after tab = %d, want 0", m.Cursor)
	}
}

func TestTypingUpdatesForm(t *testing.T) {
	m := newTestModel(t, &recordingTransport{}, nil, 60)

	m = press(m, "Acme", " ", "Co")
	if m.Form.BusinessName != "Acme Co" {
		t.Errorf("BusinessName = %q, want %q", m.Form.BusinessName, "Acme Co")
	}

	// Help is not toggled while typing
	m = press(m, "?")
	if m.Form.BusinessName != "Acme Co?" {
		t.Errorf("BusinessName = %q, want %q", m.Form.BusinessName, "Acme Co?")
	}
}

func TestAreaArrowKeysMoveWithinText(t *testing.T) {
	m := newTestModel(t, &recordingTransport{}, nil, 60)
	m = press(m, "down", "down")
	if m.FocusedField() != questionnaire.FieldBusinessDescription {
		t.Fatalf("FocusedField() = %q, want businessDescription", m.FocusedField())
	}

	m = press(m, "line1", "enter", "line2", "up")
	if m.FocusedField() != questionnaire.FieldBusinessDescription {
		t.Fatalf("FocusedField() after up = %q, want businessDescription", m.FocusedField())
	}

	m = press(m, "X")
	if want := "line1X\nline2"; m.Form.BusinessDescription != want {
		t.Errorf("BusinessDescription = %q, want %q", m.Form.BusinessDescription, want)
	}
	if m.Form.Industry != "" {
		t.Errorf("Industry = %q, want empty", m.Form.Industry)
	}

	// On the first line, up leaves the field
	m = press(m, "up")
	if m.FocusedField() != questionnaire.FieldIndustry {
		t.Errorf("FocusedField() after up on first line = %q, want industry", m.FocusedField())
	}

	// Down walks back through both lines before moving on
	m = press(m, "down", "down")
	if m.FocusedField() != questionnaire.FieldBusinessDescription {
		t.Fatalf("FocusedField() = %q, want businessDescription", m.FocusedField())
	}
	m = press(m, "down")
	if m.FocusedField() != questionnaire.FieldLogoMessage {
		t.Errorf("FocusedField() after down on last line = %q, want logoMessage", m.FocusedField())
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t, &recordingTransport{}, nil, 60)

	if got := m.helpKeys().Help.Help().Key; got != "f1" {
		t.Errorf("help key while typing = %q, want f1", got)
	}
	m = press(m, "f1")
	if !m.help.ShowAll {
		t.Error("ShowAll = false after f1 in a text field")
	}
	if m.Form.BusinessName != "" {
		t.Errorf("BusinessName = %q, want empty", m.Form.BusinessName)
	}

	m = press(m, "tab", "tab", "tab")
	if got := m.helpKeys().Help.Help().Key; got != "?" {
		t.Errorf("help key on a checkbox = %q, want ?", got)
	}
	m = press(m, "?")
	if m.help.ShowAll {
		t.Error("ShowAll = true after ? on a checkbox, want toggled off")
	}
}

func TestToggleTwiceRestoresSet(t *testing.T) {
	m := newTestModel(t, &recordingTransport{}, nil, 60)
	m = press(m, "tab", "tab", "tab")
	if m.FocusedField() != questionnaire.FieldLogoUseLocations {
		t.Fatalf("FocusedField() = %q, want logoUseLocations", m.FocusedField())
	}
	before := m.Form.Values(questionnaire.FieldLogoUseLocations)

	m = press(m, " ")
	if !m.Form.Has(questionnaire.FieldLogoUseLocations, "Website") {
		t.Error("Website not selected after first toggle")
	}

	m = press(m, " ")
	if diff := cmp.Diff(before, m.Form.Values(questionnaire.FieldLogoUseLocations)); diff != "" {
		t.Errorf("logoUseLocations after two toggles (-want +got):\n%s", diff)
	}
}

func TestSubmitDisabledWithoutTerms(t *testing.T) {
	tr := &recordingTransport{}
	m := newTestModel(t, tr, nil, 60)

	if m.SubmitEnabled() {
		t.Error("SubmitEnabled() = true without terms, want false")
	}

	m, cmd := m.Update(keyMsg("ctrl+s"))
	if cmd != nil {
		t.Error("ctrl+s returned a command without terms")
	}
	if m.Submitting() || len(tr.forms) != 0 {
		t.Error("submission started without terms")
	}
}

func TestSubmitDisabledWhileSubmitting(t *testing.T) {
	tr := &recordingTransport{}
	form := completeForm()
	m := newTestModel(t, tr, &form, 60)

	if !m.SubmitEnabled() {
		t.Fatal("SubmitEnabled() = false with terms accepted")
	}

	m, cmd := m.Update(keyMsg("ctrl+s"))
	if !m.Submitting() {
		t.Fatal("Submitting() = false after ctrl+s")
	}
	if m.SubmitEnabled() {
		t.Error("SubmitEnabled() = true while submitting")
	}
	if !strings.Contains(m.View(), "Submitting...") {
		t.Error("View() missing Submitting... label")
	}

	m, again := m.Update(keyMsg("ctrl+s"))
	if again != nil {
		t.Error("second ctrl+s returned a command while submitting")
	}

	m, _ = m.Update(submitResult(t, cmd))
	if m.Submitting() {
		t.Error("Submitting() = true after completion")
	}
	if !m.SubmitEnabled() {
		t.Error("SubmitEnabled() = false after completion")
	}
	if len(tr.forms) != 1 {
		t.Errorf("transport called %d times, want 1", len(tr.forms))
	}

	n := m.Notification()
	if n == nil || n.Title != "Questionnaire submitted!" {
		t.Errorf("Notification() = %+v, want success", n)
	}
	if m.Receipt() == nil || m.Receipt().ID != "r-1" {
		t.Errorf("Receipt() = %+v, want r-1", m.Receipt())
	}
}

func TestSubmitFailureIsTransient(t *testing.T) {
	tr := &recordingTransport{err: submission.NewHTTPError(503, "service unavailable")}
	form := completeForm()
	m := newTestModel(t, tr, &form, 60)

	m, cmd := m.Update(keyMsg("ctrl+s"))
	m, _ = m.Update(submitResult(t, cmd))

	n := m.Notification()
	if n == nil || n.Variant != submission.VariantDestructive {
		t.Fatalf("Notification() = %+v, want destructive", n)
	}
	if n.Title != "Submission failed" {
		t.Errorf("Title = %q, want %q", n.Title, "Submission failed")
	}
	if !m.SubmitEnabled() {
		t.Error("SubmitEnabled() = false after failure, want retry allowed")
	}
}

func TestServiceTierShowsPriceAndDescription(t *testing.T) {
	m := newTestModel(t, &recordingTransport{}, nil, 60)
	m = press(m, "tab", "tab", "tab", "tab", "down", " ")

	if m.Form.ServiceTier != "logo-marketing" {
		t.Fatalf("ServiceTier = %q, want logo-marketing", m.Form.ServiceTier)
	}

	tier, _ := m.catalog.Tier("logo-marketing")
	view := m.View()
	for _, want := range []string{"$1200", tier.Description, "(•) Logo + Marketing Items"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestThreeLocationsSubmitted(t *testing.T) {
	tr := &recordingTransport{}
	form := completeForm()
	form.LogoUseLocations = []string{}
	m := newTestModel(t, tr, &form, 60)

	m = press(m, "tab", "tab", "tab", " ", "down", " ", "down", " ")
	m, cmd := m.Update(keyMsg("ctrl+s"))
	m, _ = m.Update(submitResult(t, cmd))

	if len(tr.forms) != 1 {
		t.Fatalf("transport called %d times, want 1", len(tr.forms))
	}
	want := []string{"Website", "Social Media", "Business Cards"}
	if diff := cmp.Diff(want, tr.forms[0].LogoUseLocations); diff != "" {
		t.Errorf("submitted logoUseLocations (-want +got):\n%s", diff)
	}
}

func TestSubmitJumpsToFirstInvalid(t *testing.T) {
	tr := &recordingTransport{}
	form := completeForm()
	form.Industry = ""
	m := newTestModel(t, tr, &form, 60)

	m = press(m, "tab", "tab", "tab", "tab")
	m, _ = m.Update(keyMsg("ctrl+s"))

	if m.Section != questionnaire.SectionCompany {
		t.Errorf("Section = %v, want company", m.Section)
	}
	if m.FocusedField() != questionnaire.FieldIndustry {
		t.Errorf("FocusedField() = %q, want industry", m.FocusedField())
	}
	if m.Submitting() || len(tr.forms) != 0 {
		t.Error("incomplete form was submitted")
	}
	if n := m.Notification(); n == nil || n.Variant != submission.VariantDestructive {
		t.Errorf("Notification() = %+v, want destructive", n)
	}
}

func TestTermsCheckboxTogglesSubmit(t *testing.T) {
	m := newTestModel(t, &recordingTransport{}, nil, 60)
	m = press(m, "tab", "tab", "tab", "tab")

	// three tiers, then the deadline, then the terms checkbox
	m = press(m, "down", "down", "down", "down")
	if m.FocusedField() != questionnaire.FieldTermsAgreement {
		t.Fatalf("FocusedField() = %q, want termsAgreement", m.FocusedField())
	}

	m = press(m, " ")
	if !m.Form.TermsAgreement || !m.SubmitEnabled() {
		t.Error("terms not accepted after space")
	}
	if !strings.Contains(m.View(), questionnaire.TermsTitle) {
		t.Errorf("View() missing %q", questionnaire.TermsTitle)
	}

	m = press(m, " ")
	if m.Form.TermsAgreement || m.SubmitEnabled() {
		t.Error("terms still accepted after second space")
	}
}

func TestAttachmentNotification(t *testing.T) {
	m := newTestModel(t, &recordingTransport{}, nil, 60)
	m = press(m, "tab", "down", "/tmp/concepts/mark.png", "enter")

	if got := m.Attached(); got != "mark.png" {
		t.Errorf("Attached() = %q, want mark.png", got)
	}
	n := m.Notification()
	if n == nil || n.Title != "File attached" {
		t.Fatalf("Notification() = %+v, want attachment", n)
	}

	// A stale timer leaves the notification in place
	m, _ = m.Update(notificationExpiredMsg{seq: m.noticeSeq - 1})
	if m.Notification() == nil {
		t.Error("stale expiry removed the notification")
	}

	m, _ = m.Update(notificationExpiredMsg{seq: m.noticeSeq})
	if m.Notification() != nil {
		t.Error("Notification() != nil after expiry")
	}
}

func TestPrefilledFormPopulatesInputs(t *testing.T) {
	form := completeForm()
	m := newTestModel(t, &recordingTransport{}, &form, 60)

	if !strings.Contains(m.View(), "Acme Roasters") {
		t.Error("View() missing pre-filled business name")
	}

	m = press(m, "!")
	if m.Form.BusinessName != "Acme Roasters!" {
		t.Errorf("BusinessName = %q, want %q", m.Form.BusinessName, "Acme Roasters!")
	}
}

func TestSimulatedTransportIsDefault(t *testing.T) {
	m := NewQuestionnaireModel(Options{})
	if got := m.TransportName(); got != "simulated" {
		t.Errorf("TransportName() = %q, want simulated", got)
	}
}

func TestFailureDetailShown(t *testing.T) {
	tr := &recordingTransport{err: errors.New("boom")}
	form := completeForm()
	m := newTestModel(t, tr, &form, 60)

	m, cmd := m.Update(keyMsg("ctrl+s"))
	m, _ = m.Update(submitResult(t, cmd))

	if !strings.Contains(m.View(), "There was an error submitting your questionnaire. Please try again.") {
		t.Error("View() missing failure description")
	}
}
