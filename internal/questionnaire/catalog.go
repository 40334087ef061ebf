package questionnaire

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// ServiceTier is a named pricing package with a fixed price and description.
type ServiceTier struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       int    `yaml:"price"` // whole US dollars
}

// PriceLabel formats the tier price the way it is displayed ("$1200").
func (t *ServiceTier) PriceLabel() string {
	return fmt.Sprintf("$%d", t.Price)
}

// Color is a selectable swatch in the color palette.
type Color struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Hex  string `yaml:"hex"`
	Text string `yaml:"text"` // "white" or "black", for legible labels on the swatch
}

// LogoStyle is one of the preset style directions.
type LogoStyle struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// LogoType is a choice between wordmark, icon, or both.
type LogoType struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// PreviousLogo is a placeholder for a logo the customer used before.
// Selecting one adds its ID to the retainElements set.
type PreviousLogo struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// Catalog holds all static option lists used by the questionnaire.
type Catalog struct {
	ServiceTiers  []*ServiceTier  `yaml:"service_tiers"`
	LogoStyles    []*LogoStyle    `yaml:"logo_styles"`
	LogoTypes     []*LogoType     `yaml:"logo_types"`
	Colors        []*Color        `yaml:"colors"`
	PreviousLogos []*PreviousLogo `yaml:"previous_logos"`
	UseLocations  []string        `yaml:"use_locations"`
	FileFormats   []string        `yaml:"file_formats"`
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
	defaultCatalogErr  error
)

// LoadCatalog parses the embedded catalog. Safe to call repeatedly; the
// catalog is parsed only once.
func LoadCatalog() (*Catalog, error) {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = parseCatalog(catalogYAML)
	})
	return defaultCatalog, defaultCatalogErr
}

// MustCatalog returns the embedded catalog and panics if it cannot be parsed.
// The catalog is compiled into the binary, so a parse failure is a build defect.
func MustCatalog() *Catalog {
	c, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

func parseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(c.ServiceTiers) == 0 {
		return nil, fmt.Errorf("catalog has no service tiers")
	}
	return &c, nil
}

// Tier returns the service tier with the given ID.
func (c *Catalog) Tier(id string) (*ServiceTier, bool) {
	for _, t := range c.ServiceTiers {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// Style returns the logo style with the given ID.
func (c *Catalog) Style(id string) (*LogoStyle, bool) {
	for _, s := range c.LogoStyles {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// Color returns the color swatch with the given ID.
func (c *Catalog) Color(id string) (*Color, bool) {
	for _, col := range c.Colors {
		if col.ID == id {
			return col, true
		}
	}
	return nil, false
}

// LogoTypeLabel returns the display label for a logo type ID, or the ID
// itself if it is unknown.
func (c *Catalog) LogoTypeLabel(id string) string {
	for _, lt := range c.LogoTypes {
		if lt.ID == id {
			return lt.Label
		}
	}
	return id
}

// Options returns the allowed values for a choice or set field.
// Fields without a fixed option list return nil.
func (c *Catalog) Options(field Field) []string {
	switch field {
	case FieldLogoStyle:
		ids := make([]string, 0, len(c.LogoStyles))
		for _, s := range c.LogoStyles {
			ids = append(ids, s.ID)
		}
		return ids
	case FieldLogoType:
		ids := make([]string, 0, len(c.LogoTypes))
		for _, lt := range c.LogoTypes {
			ids = append(ids, lt.ID)
		}
		return ids
	case FieldServiceTier:
		ids := make([]string, 0, len(c.ServiceTiers))
		for _, t := range c.ServiceTiers {
			ids = append(ids, t.ID)
		}
		return ids
	case FieldColorPreferences:
		ids := make([]string, 0, len(c.Colors))
		for _, col := range c.Colors {
			ids = append(ids, col.ID)
		}
		return ids
	case FieldRetainElements:
		ids := make([]string, 0, len(c.PreviousLogos))
		for _, p := range c.PreviousLogos {
			ids = append(ids, p.ID)
		}
		return ids
	case FieldLogoUseLocations:
		return append([]string(nil), c.UseLocations...)
	case FieldFileFormats:
		return append([]string(nil), c.FileFormats...)
	}
	return nil
}

// Allows reports whether value is a member of the field's option list.
// Fields without an option list allow any value.
func (c *Catalog) Allows(field Field, value string) bool {
	opts := c.Options(field)
	if opts == nil {
		return true
	}
	for _, o := range opts {
		if o == value {
			return true
		}
	}
	return false
}
