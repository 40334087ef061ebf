package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/logobrief/internal/questionnaire"
)

const unanswered = "(none)"

// Brief renders a completed questionnaire as a read-only summary panel,
// grouped by section in display order.
type Brief struct {
	Title   string // e.g., "Brief 6f1c... received 12:00:03"
	Form    questionnaire.Form
	Catalog *questionnaire.Catalog
	Width   int
}

// NewBrief creates a summary of f using the embedded catalog.
func NewBrief(title string, f questionnaire.Form) *Brief {
	return &Brief{
		Title:   title,
		Form:    f,
		Catalog: questionnaire.MustCatalog(),
		Width:   GetTerminalWidth(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (b *Brief) SetWidth(width int) *Brief {
	b.Width = width
	return b
}

// Render returns the styled summary panel.
func (b *Brief) Render() string {
	width := clampWidth(b.Width)
	valueWidth := width - 12

	var lines []string
	if b.Title != "" {
		lines = append(lines, HeaderTitleStyle.UnsetPaddingLeft().Render(b.Title), "")
	}

	for i, section := range questionnaire.Sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, SectionTitleStyle.Render(section.Title()))
		for _, spec := range questionnaire.FieldsIn(section) {
			value := b.Catalog.DisplayValue(b.Form, spec.Field)
			if strings.TrimSpace(value) == "" {
				value = unanswered
			}
			lines = append(lines,
				BriefLabelStyle.Render("  "+spec.Label),
				BriefValueStyle.Width(valueWidth).PaddingLeft(4).Render(value),
			)
		}
	}

	return PanelStyle(width).Render(strings.Join(lines, "\n"))
}

// String implements fmt.Stringer
func (b *Brief) String() string {
	return b.Render()
}

// RenderCatalog renders every option list a questionnaire offers: service
// packages with prices, styles, logo types, color swatches, and the
// practical-usage choices.
func RenderCatalog(c *questionnaire.Catalog, width int) string {
	width = clampWidth(width)
	textWidth := width - 12

	var lines []string
	heading := func(title string) {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, SectionTitleStyle.Render(title))
	}

	heading("Service Packages")
	for _, t := range c.ServiceTiers {
		lines = append(lines,
			"  "+BriefValueStyle.Bold(true).Render(t.Name)+"  "+PriceStyle.Render(t.PriceLabel())+"  "+BriefLabelStyle.Render("["+t.ID+"]"),
			BriefLabelStyle.Width(textWidth).PaddingLeft(4).Render(t.Description),
		)
	}

	heading("Logo Styles")
	for _, s := range c.LogoStyles {
		lines = append(lines, "  "+BriefValueStyle.Render(s.Name)+"  "+BriefLabelStyle.Render(s.Description))
	}

	heading("Logo Types")
	for _, lt := range c.LogoTypes {
		lines = append(lines, "  "+BriefValueStyle.Render(lt.Label)+"  "+BriefLabelStyle.Render("["+lt.ID+"]"))
	}

	heading("Colors")
	var swatches []string
	for _, col := range c.Colors {
		swatches = append(swatches, Swatch(col))
	}
	lines = append(lines, wrapJoined(swatches, " ", textWidth, "  "))

	heading("Previous Logos")
	for _, p := range c.PreviousLogos {
		lines = append(lines, "  "+BriefValueStyle.Render(p.Name)+"  "+BriefLabelStyle.Render("["+p.ID+"]"))
	}

	heading("Logo Use Locations")
	lines = append(lines, BriefValueStyle.Width(textWidth).PaddingLeft(2).Render(strings.Join(c.UseLocations, ", ")))

	heading("File Formats")
	lines = append(lines, BriefValueStyle.Width(textWidth).PaddingLeft(2).Render(strings.Join(c.FileFormats, ", ")))

	return PanelStyle(width).Render(strings.Join(lines, "\n"))
}

// Swatch renders a color name on its own color.
func Swatch(c *questionnaire.Color) string {
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

// wrapJoined joins styled items with sep, starting a new indented line
// whenever the visible width would exceed max.
func wrapJoined(items []string, sep string, max int, indent string) string {
	var out []string
	line := indent
	for _, item := range items {
		if line != indent && lipgloss.Width(line+sep+item) > max {
			out = append(out, line)
			line = indent
		}
		if line != indent {
			line += sep
		}
		line += item
	}
	if line != indent {
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
