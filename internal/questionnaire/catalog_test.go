package questionnaire

import "testing"

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}

	if len(c.ServiceTiers) != 3 {
		t.Errorf("len(ServiceTiers) = %d, want 3", len(c.ServiceTiers))
	}
	if len(c.Colors) != 12 {
		t.Errorf("len(Colors) = %d, want 12", len(c.Colors))
	}
	if len(c.LogoStyles) != 4 {
		t.Errorf("len(LogoStyles) = %d, want 4", len(c.LogoStyles))
	}
	if len(c.LogoTypes) != 4 {
		t.Errorf("len(LogoTypes) = %d, want 4", len(c.LogoTypes))
	}
	if len(c.UseLocations) != 8 {
		t.Errorf("len(UseLocations) = %d, want 8", len(c.UseLocations))
	}
	if len(c.FileFormats) != 7 {
		t.Errorf("len(FileFormats) = %d, want 7", len(c.FileFormats))
	}

	again, _ := LoadCatalog()
	if again != c {
		t.Error("LoadCatalog() should return the same instance on every call")
	}
}

func TestCatalogTier(t *testing.T) {
	c := MustCatalog()

	tests := []struct {
		id    string
		name  string
		price string
		desc  string
	}{
		{"logo-only", "Logo Only Package", "$500", "Professional logo design in all requested file formats"},
		{"logo-marketing", "Logo + Marketing Items", "$1200", "Logo design plus selected marketing materials like business cards, letterhead, and social media assets"},
		{"brand-identity", "Complete Brand Identity", "$2500", "Comprehensive brand identity system including logo, style guide, marketing materials, and brand strategy documentation"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			tier, ok := c.Tier(tt.id)
			if !ok {
				t.Fatalf("Tier(%q) not found", tt.id)
			}
			if tier.Name != tt.name {
				t.Errorf("Name = %q, want %q", tier.Name, tt.name)
			}
			if got := tier.PriceLabel(); got != tt.price {
				t.Errorf("PriceLabel() = %q, want %q", got, tt.price)
			}
			if tier.Description != tt.desc {
				t.Errorf("Description = %q, want %q", tier.Description, tt.desc)
			}
		})
	}

	if _, ok := c.Tier("platinum"); ok {
		t.Error("Tier(platinum) should not exist")
	}
}

func TestCatalogLookups(t *testing.T) {
	c := MustCatalog()

	if col, ok := c.Color("purple"); !ok || col.Hex != "#9b87f5" || col.Text != "white" {
		t.Errorf("Color(purple) = %+v, %v", col, ok)
	}
	if s, ok := c.Style("emblem"); !ok || s.Description != "Badge or seal-type logo with contained elements" {
		t.Errorf("Style(emblem) = %+v, %v", s, ok)
	}
	if got := c.LogoTypeLabel("combination"); got != "Combination (Text & Icon)" {
		t.Errorf("LogoTypeLabel(combination) = %q", got)
	}
	if got := c.LogoTypeLabel("hologram"); got != "hologram" {
		t.Errorf("LogoTypeLabel(hologram) = %q, want passthrough", got)
	}
}

func TestCatalogAllows(t *testing.T) {
	c := MustCatalog()

	tests := []struct {
		field Field
		value string
		want  bool
	}{
		{FieldFileFormats, "SVG", true},
		{FieldFileFormats, "GIF", false},
		{FieldLogoUseLocations, "Print Ads", true},
		{FieldRetainElements, "logo2", true},
		{FieldServiceTier, "logo-only", true},
		{FieldLogoStyle, "grunge", false},
		{FieldBusinessName, "anything", true},
	}

	for _, tt := range tests {
		if got := c.Allows(tt.field, tt.value); got != tt.want {
			t.Errorf("Allows(%q, %q) = %v, want %v", tt.field, tt.value, got, tt.want)
		}
	}
}

func TestParseCatalogRejectsEmpty(t *testing.T) {
	if _, err := parseCatalog([]byte("colors: []\n")); err == nil {
		t.Error("parseCatalog() should fail without service tiers")
	}
	if _, err := parseCatalog([]byte("service_tiers: [")); err == nil {
		t.Error("parseCatalog() should fail on malformed yaml")
	}
}

func TestDisplayValue(t *testing.T) {
	c := MustCatalog()
	f := NewForm()
	f.LogoStyle = "minimal"
	f.LogoType = "combination"
	f.ServiceTier = "logo-marketing"
	f.ColorPreferences = []string{"red", "not-a-color"}
	f.LogoUseLocations = []string{"Website", "Signage"}
	f.BusinessName = "Acme"

	tests := []struct {
		field Field
		want  string
	}{
		{FieldBusinessName, "Acme"},
		{FieldIndustry, ""},
		{FieldLogoStyle, "Minimal"},
		{FieldLogoType, c.LogoTypeLabel("combination")},
		{FieldServiceTier, "Logo + Marketing Items ($1200)"},
		{FieldColorPreferences, "Red, not-a-color"},
		{FieldLogoUseLocations, "Website, Signage"},
		{FieldFileFormats, ""},
		{FieldTermsAgreement, "no"},
	}
	for _, tt := range tests {
		if got := c.DisplayValue(f, tt.field); got != tt.want {
			t.Errorf("DisplayValue(%s) = %q, want %q", tt.field, got, tt.want)
		}
	}
}
