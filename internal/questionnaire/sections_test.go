package questionnaire

import "testing"

func TestNextPrevBoundaries(t *testing.T) {
	if got := Next(SectionBudget); got != SectionBudget {
		t.Errorf("Next(budget) = %v, want budget", got)
	}
	if got := Prev(SectionCompany); got != SectionCompany {
		t.Errorf("Prev(company) = %v, want company", got)
	}
}

func TestNextThenPrevRoundTrip(t *testing.T) {
	for _, s := range Sections {
		if s.IsLast() {
			continue
		}
		if got := Prev(Next(s)); got != s {
			t.Errorf("Prev(Next(%v)) = %v, want %v", s, got, s)
		}
	}
}

func TestSectionOrder(t *testing.T) {
	want := []string{"company", "design", "history", "practical", "budget"}
	if len(Sections) != len(want) {
		t.Fatalf("len(Sections) = %d, want %d", len(Sections), len(want))
	}
	for i, s := range Sections {
		if s.ID() != want[i] {
			t.Errorf("Sections[%d] = %q, want %q", i, s.ID(), want[i])
		}
	}
}

func TestSectionLabels(t *testing.T) {
	tests := []struct {
		section Section
		tab     string
		title   string
	}{
		{SectionCompany, "Company", "Company & Vision"},
		{SectionDesign, "Design", "Design Preferences"},
		{SectionHistory, "History", "Previous Logos & Feedback"},
		{SectionPractical, "Usage", "Practical Usage"},
		{SectionBudget, "Budget", "Budget & Timeline"},
	}

	for _, tt := range tests {
		t.Run(tt.section.ID(), func(t *testing.T) {
			if got := tt.section.Tab(); got != tt.tab {
				t.Errorf("Tab() = %q, want %q", got, tt.tab)
			}
			if got := tt.section.Title(); got != tt.title {
				t.Errorf("Title() = %q, want %q", got, tt.title)
			}
		})
	}
}

func TestParseSection(t *testing.T) {
	s, ok := ParseSection("practical")
	if !ok || s != SectionPractical {
		t.Errorf("ParseSection(practical) = %v, %v; want practical, true", s, ok)
	}
	if _, ok := ParseSection("pricing"); ok {
		t.Error("ParseSection(pricing) should fail")
	}
}

func TestEveryFieldBelongsToAValidSection(t *testing.T) {
	for _, spec := range Fields() {
		if !spec.Section.Valid() {
			t.Errorf("field %q has invalid section %d", spec.Field, spec.Section)
		}
	}
	if n := len(FieldsIn(SectionPractical)); n != 2 {
		t.Errorf("len(FieldsIn(practical)) = %d, want 2", n)
	}
}

func TestDisplayLabel(t *testing.T) {
	tests := []struct {
		field Field
		want  string
	}{
		{FieldBusinessName, "Business Name*"},
		{FieldLogoUseLocations, "Where will the logo be used?* (select all that apply)"},
		{FieldFileFormats, "File formats needed* (select all that apply)"},
		{FieldColorPreferences, "Colors you like (select multiple)"},
		{FieldTermsAgreement, "I agree to these design engagement terms*"},
	}
	for _, tt := range tests {
		spec, ok := Spec(tt.field)
		if !ok {
			t.Fatalf("Spec(%q) not found", tt.field)
		}
		if got := spec.DisplayLabel(); got != tt.want {
			t.Errorf("DisplayLabel(%q) = %q, want %q", tt.field, got, tt.want)
		}
	}
}
