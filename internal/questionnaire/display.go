package questionnaire

import (
	"fmt"
	"strings"
)

// DisplayValue renders a field's current value for humans: catalog IDs are
// replaced by their names, sets are comma-joined, and an unanswered field
// yields "".
func (c *Catalog) DisplayValue(f Form, field Field) string {
	switch field {
	case FieldLogoStyle:
		if s, ok := c.Style(f.LogoStyle); ok {
			return s.Name
		}
		return f.LogoStyle
	case FieldLogoType:
		if f.LogoType == "" {
			return ""
		}
		return c.LogoTypeLabel(f.LogoType)
	case FieldServiceTier:
		if t, ok := c.Tier(f.ServiceTier); ok {
			return fmt.Sprintf("%s (%s)", t.Name, t.PriceLabel())
		}
		return f.ServiceTier
	case FieldColorPreferences:
		names := make([]string, 0, len(f.ColorPreferences))
		for _, id := range f.ColorPreferences {
			if col, ok := c.Color(id); ok {
				names = append(names, col.Name)
			} else {
				names = append(names, id)
			}
		}
		return strings.Join(names, ", ")
	case FieldRetainElements:
		names := make([]string, 0, len(f.RetainElements))
		for _, id := range f.RetainElements {
			names = append(names, c.previousLogoName(id))
		}
		return strings.Join(names, ", ")
	case FieldLogoUseLocations, FieldFileFormats:
		return strings.Join(f.Values(field), ", ")
	case FieldTermsAgreement:
		if f.TermsAgreement {
			return "yes"
		}
		return "no"
	}
	return f.Text(field)
}

func (c *Catalog) previousLogoName(id string) string {
	for _, p := range c.PreviousLogos {
		if p.ID == id {
			return p.Name
		}
	}
	return id
}
