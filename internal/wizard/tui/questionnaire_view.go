package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/logobrief/internal/questionnaire"
	"github.com/muurk/logobrief/internal/submission"
)

const (
	pointer   = "→ "
	noPointer = "  "
)

// View renders the questionnaire
func (m QuestionnaireModel) View() string {
	width := m.Width
	if width == 0 {
		width = MinTerminalWidth
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(Title))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(Subtitle))
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(SectionTitleStyle.Render(m.Section.Title()))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	if m.notice != nil {
		b.WriteString("\n")
		b.WriteString(m.renderNotification(width))
	}

	return RenderApplicationContainer(b.String(), m.help.View(m.helpKeys()), m.transport.Name(), width, m.Height)
}

func (m QuestionnaireModel) renderTabs() string {
	tabs := make([]string, 0, len(questionnaire.Sections))
	for _, s := range questionnaire.Sections {
		if s == m.Section {
			tabs = append(tabs, ActiveTabStyle.Render(s.Tab()))
		} else {
			tabs = append(tabs, InactiveTabStyle.Render(s.Tab()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m QuestionnaireModel) renderNotification(width int) string {
	n := m.notice
	style := ToastStyle
	if n.Variant == submission.VariantDestructive {
		style = DestructiveToastStyle
	}

	lines := []string{ToastTitleStyle.Render(n.Title), n.Description}
	if n.Detail != "" {
		lines = append(lines, ErrorTextStyle.Render(n.Detail))
	}
	if n.Variant == submission.VariantDefault && !m.handler.Submitting() {
		if r := m.handler.Receipt(); r != nil && n.Title == submission.SuccessNotification().Title {
			lines = append(lines, HintStyle.Render("Reference: "+r.ID))
		}
	}
	return style.Width(min(width-8, 70)).Render(strings.Join(lines, "\n"))
}

// renderBody renders the active section and returns the first line of each
// focusable row, indexed like m.items.
func (m QuestionnaireModel) renderBody() (string, []int) {
	var (
		b       strings.Builder
		line    int
		starts  = make([]int, len(m.items))
		last    questionnaire.Field
		focused = m.FocusedField()
		nav     []int
	)
	write := func(s string) {
		b.WriteString(s)
		line += strings.Count(s, "\n")
	}

	for i, it := range m.items {
		if it.navigation() {
			nav = append(nav, i)
			continue
		}
		if it.field != last {
			if last != "" {
				write("\n")
			}
			spec, _ := questionnaire.Spec(it.field)
			if spec.Kind == questionnaire.KindBool {
				write(m.renderTerms() + "\n")
			} else {
				write(renderLabel(spec, it.field == focused) + "\n")
			}
			last = it.field
		}
		starts[i] = line
		write(m.renderItem(it, i == m.Cursor) + "\n")
	}

	if len(nav) > 0 {
		write("\n")
		buttons := make([]string, 0, len(nav))
		for _, i := range nav {
			starts[i] = line
			buttons = append(buttons, m.renderButton(m.items[i], i == m.Cursor))
		}
		write(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	}

	return b.String(), starts
}

func renderLabel(spec questionnaire.FieldSpec, focused bool) string {
	if focused {
		return FocusedLabelStyle.Render(spec.DisplayLabel())
	}
	return LabelStyle.Render(spec.DisplayLabel())
}

func (m QuestionnaireModel) renderItem(it item, focused bool) string {
	switch it.kind {
	case itemInput:
		return noPointer + m.inputs[it.field].View()

	case itemArea:
		return lipgloss.NewStyle().PaddingLeft(2).Render(m.areas[it.field].View())

	case itemAttach:
		return m.renderAttach(focused)

	case itemOption:
		return m.renderOption(it, focused)

	case itemCheck:
		return m.renderCheck(it, focused)

	case itemAgree:
		spec, _ := questionnaire.Spec(it.field)
		return cursor(focused) + checkbox(m.Form.TermsAgreement) + " " + spec.DisplayLabel()
	}
	return ""
}

func cursor(focused bool) string {
	if focused {
		return FocusedLabelStyle.Render(pointer)
	}
	return noPointer
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

func radio(selected bool) string {
	if selected {
		return "(•)"
	}
	return "( )"
}

func (m QuestionnaireModel) renderAttach(focused bool) string {
	var b strings.Builder
	b.WriteString(cursor(focused))
	b.WriteString(HintStyle.Render("Attach concept image (optional)"))
	if m.attached != "" {
		b.WriteString("  ")
		b.WriteString(PriceStyle.Render("✓ " + m.attached))
	}
	if focused {
		b.WriteString("\n")
		b.WriteString(noPointer)
		b.WriteString(m.attach.View())
	}
	return b.String()
}

func (m QuestionnaireModel) renderOption(it item, focused bool) string {
	selected := m.Form.Text(it.field) == it.value

	switch it.field {
	case questionnaire.FieldServiceTier:
		if tier, ok := m.catalog.Tier(it.value); ok {
			return m.renderTier(tier, selected, focused)
		}

	case questionnaire.FieldLogoStyle:
		if style, ok := m.catalog.Style(it.value); ok {
			return cursor(focused) + radio(selected) + " " + style.Name + "\n" +
				DescriptionStyle.Render(style.Description)
		}

	case questionnaire.FieldLogoType:
		return cursor(focused) + radio(selected) + " " + m.catalog.LogoTypeLabel(it.value)
	}

	return cursor(focused) + radio(selected) + " " + it.value
}

// renderTier draws one service package card: name and price on the first
// line, the description verbatim below.
func (m QuestionnaireModel) renderTier(t *questionnaire.ServiceTier, selected, focused bool) string {
	style := TierBoxStyle
	if selected {
		style = SelectedTierBoxStyle
	}
	if focused {
		style = style.BorderForeground(HighlightColor)
	}

	head := fmt.Sprintf("%s %s  %s", radio(selected), t.Name, PriceStyle.Render(t.PriceLabel()))
	body := head + "\n" + HintStyle.Render(t.Description)

	return lipgloss.NewStyle().PaddingLeft(2).Render(
		style.Width(max(m.viewport.Width-6, 20)).Render(body),
	)
}

func (m QuestionnaireModel) renderCheck(it item, focused bool) string {
	checked := m.Form.Has(it.field, it.value)
	label := it.value

	switch it.field {
	case questionnaire.FieldColorPreferences:
		if c, ok := m.catalog.Color(it.value); ok {
			label = swatch(c)
		}
	case questionnaire.FieldRetainElements:
		label = m.catalog.DisplayValue(questionnaire.Form{RetainElements: []string{it.value}}, it.field)
	}

	return cursor(focused) + checkbox(checked) + " " + label
}

// swatch renders a color name on its own color.
func swatch(c *questionnaire.Color) string {
	fg := lipgloss.Color("#000000")
	if c.Text == "white" {
		fg = lipgloss.Color("#FFFFFF")
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex)).
		Foreground(fg).
		Padding(0, 1).
		Render(c.Name)
}

func (m QuestionnaireModel) renderTerms() string {
	paragraphs := make([]string, 0, len(questionnaire.TermsParagraphs)+1)
	paragraphs = append(paragraphs, ToastTitleStyle.Render(questionnaire.TermsTitle))
	paragraphs = append(paragraphs, questionnaire.TermsParagraphs...)
	return TermsBoxStyle.
		Width(max(m.viewport.Width-4, 20)).
		Render(strings.Join(paragraphs, "\n\n"))
}

func (m QuestionnaireModel) renderButton(it item, focused bool) string {
	var label string
	switch it.kind {
	case itemPrev:
		label = "Previous"
	case itemNext:
		label = "Next"
	case itemSubmit:
		label = "Submit Questionnaire"
		if m.handler.Submitting() {
			label = m.spinner.View() + " Submitting..."
		}
		if !m.SubmitEnabled() {
			return DisabledButtonStyle.Render(label)
		}
	}

	if focused {
		return FocusedButtonStyle.Render(label)
	}
	return ButtonStyle.Render(label)
}
