package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/logobrief/internal/questionnaire"
)

// AgreePhrase is what the user must type to accept the engagement terms.
const AgreePhrase = "I AGREE"

// ConfirmTerms prints the design engagement terms in a warning box and
// asks the user to type AgreePhrase. It returns true only on an exact match.
func ConfirmTerms(in io.Reader, out io.Writer) bool {
	width := GetTerminalWidth()

	lines := []string{"", WarningTitleStyle.Render(fmt.Sprintf("   %s  %s", WarningMarker, strings.ToUpper(questionnaire.TermsTitle))), ""}
	para := lipgloss.NewStyle().
		Foreground(TextColor).
		Width(width - 12).
		PaddingLeft(3)
	for _, p := range questionnaire.TermsParagraphs {
		lines = append(lines, para.Render(p), "")
	}
	lines = append(lines, lipgloss.NewStyle().
		Foreground(MutedColor).
		Italic(true).
		PaddingLeft(3).
		Render("Agreeing sets termsAgreement on the submitted brief."), "")

	_, _ = fmt.Fprintln(out, OuterBoxStyle(width, WarningColor).Render(strings.Join(lines, "\n")))
	_, _ = fmt.Fprintln(out)

	prompt := lipgloss.NewStyle().Foreground(WarningColor).Bold(true)
	_, _ = fmt.Fprint(out, prompt.Render(fmt.Sprintf("To agree, type %q and press Enter: ", AgreePhrase)))

	input, err := bufio.NewReader(in).ReadString('\n')
	_, _ = fmt.Fprintln(out)
	if err != nil && input == "" {
		return false
	}
	if strings.TrimSpace(input) == AgreePhrase {
		return true
	}

	_, _ = fmt.Fprintln(out, lipgloss.NewStyle().Foreground(MutedColor).Render("  Submission cancelled."))
	_, _ = fmt.Fprintln(out)
	return false
}
