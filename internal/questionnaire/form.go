package questionnaire

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownField is returned when an operation names a field that does not exist.
	ErrUnknownField = errors.New("unknown field")

	// ErrWrongKind is returned when an operation is applied to a field of the wrong kind,
	// for example Toggle on a text field.
	ErrWrongKind = errors.New("operation does not apply to field kind")
)

// Form is the complete set of answers collected by the questionnaire.
//
// Form is a value type. Every mutating method returns a new Form that differs
// from the receiver only in the named field. Set fields are replaced, never
// appended to in place, so copies may safely share backing arrays.
type Form struct {
	BusinessName        string `json:"businessName" yaml:"businessName"`
	Industry            string `json:"industry" yaml:"industry"`
	BusinessDescription string `json:"businessDescription" yaml:"businessDescription"`
	LogoMessage         string `json:"logoMessage" yaml:"logoMessage"`
	TargetAudience      string `json:"targetAudience" yaml:"targetAudience"`
	ConceptDescription  string `json:"conceptDescription" yaml:"conceptDescription"`

	LogoStyle        string   `json:"logoStyle" yaml:"logoStyle"`
	LogoType         string   `json:"logoType" yaml:"logoType"`
	ColorPreferences []string `json:"colorPreferences" yaml:"colorPreferences"`
	LogoInspiration  string   `json:"logoInspiration" yaml:"logoInspiration"`

	PreviousLogoFeedback string   `json:"previousLogoFeedback" yaml:"previousLogoFeedback"`
	PartnerFeedback      string   `json:"partnerFeedback" yaml:"partnerFeedback"`
	RetainElements       []string `json:"retainElements" yaml:"retainElements"`

	LogoUseLocations []string `json:"logoUseLocations" yaml:"logoUseLocations"`
	FileFormats      []string `json:"fileFormats" yaml:"fileFormats"`

	ServiceTier    string `json:"serviceTier" yaml:"serviceTier"`
	Deadline       string `json:"deadline" yaml:"deadline"` // YYYY-MM-DD
	TermsAgreement bool   `json:"termsAgreement" yaml:"termsAgreement"`
}

// NewForm returns an empty form. Set fields are non-nil so that they encode
// as empty JSON arrays rather than null.
func NewForm() Form {
	return Form{
		ColorPreferences: []string{},
		RetainElements:   []string{},
		LogoUseLocations: []string{},
		FileFormats:      []string{},
	}
}

func (f *Form) scalar(field Field) *string {
	switch field {
	case FieldBusinessName:
		return &f.BusinessName
	case FieldIndustry:
		return &f.Industry
	case FieldBusinessDescription:
		return &f.BusinessDescription
	case FieldLogoMessage:
		return &f.LogoMessage
	case FieldTargetAudience:
		return &f.TargetAudience
	case FieldConceptDescription:
		return &f.ConceptDescription
	case FieldLogoStyle:
		return &f.LogoStyle
	case FieldLogoType:
		return &f.LogoType
	case FieldLogoInspiration:
		return &f.LogoInspiration
	case FieldPreviousLogoFeedback:
		return &f.PreviousLogoFeedback
	case FieldPartnerFeedback:
		return &f.PartnerFeedback
	case FieldServiceTier:
		return &f.ServiceTier
	case FieldDeadline:
		return &f.Deadline
	}
	return nil
}

func (f *Form) set(field Field) *[]string {
	switch field {
	case FieldColorPreferences:
		return &f.ColorPreferences
	case FieldRetainElements:
		return &f.RetainElements
	case FieldLogoUseLocations:
		return &f.LogoUseLocations
	case FieldFileFormats:
		return &f.FileFormats
	}
	return nil
}

func lookupKind(field Field) (Kind, error) {
	spec, ok := Spec(field)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return spec.Kind, nil
}

// SetText sets a text, choice, or date field.
func (f Form) SetText(field Field, value string) (Form, error) {
	kind, err := lookupKind(field)
	if err != nil {
		return f, err
	}
	if !kind.IsScalar() {
		return f, fmt.Errorf("%w: SetText on %q", ErrWrongKind, field)
	}
	if kind == KindDate {
		value = strings.TrimSpace(value)
	}
	*f.scalar(field) = value
	return f, nil
}

// Toggle adds value to a set field if absent, or removes it if present.
func (f Form) Toggle(field Field, value string) (Form, error) {
	if err := requireSet(field); err != nil {
		return f, err
	}
	return f.SetChecked(field, value, !f.Has(field, value))
}

// SetChecked adds value to a set field when checked is true and removes it
// otherwise. Repeating the same call has no further effect.
func (f Form) SetChecked(field Field, value string, checked bool) (Form, error) {
	if err := requireSet(field); err != nil {
		return f, err
	}
	ptr := f.set(field)
	current := *ptr
	next := make([]string, 0, len(current)+1)
	for _, v := range current {
		if v != value {
			next = append(next, v)
		}
	}
	if checked {
		next = append(next, value)
	}
	*ptr = next
	return f, nil
}

// SetBool sets a boolean field.
func (f Form) SetBool(field Field, value bool) (Form, error) {
	kind, err := lookupKind(field)
	if err != nil {
		return f, err
	}
	if kind != KindBool {
		return f, fmt.Errorf("%w: SetBool on %q", ErrWrongKind, field)
	}
	f.TermsAgreement = value
	return f, nil
}

func requireSet(field Field) error {
	kind, err := lookupKind(field)
	if err != nil {
		return err
	}
	if kind != KindSet {
		return fmt.Errorf("%w: set operation on %q", ErrWrongKind, field)
	}
	return nil
}

// Text returns the value of a scalar field, or "" for other kinds.
func (f Form) Text(field Field) string {
	if p := f.scalar(field); p != nil {
		return *p
	}
	return ""
}

// Values returns a copy of a set field's members.
func (f Form) Values(field Field) []string {
	p := f.set(field)
	if p == nil {
		return nil
	}
	return append([]string{}, (*p)...)
}

// Has reports whether value is a member of a set field.
func (f Form) Has(field Field, value string) bool {
	p := f.set(field)
	if p == nil {
		return false
	}
	for _, v := range *p {
		if v == value {
			return true
		}
	}
	return false
}

// Normalize returns a copy of the form with duplicate set members removed,
// nil sets replaced by empty ones and the deadline trimmed. It is used for forms decoded from
// files or the network, which bypass SetChecked.
func (f Form) Normalize() Form {
	f.Deadline = strings.TrimSpace(f.Deadline)
	for _, field := range []Field{FieldColorPreferences, FieldRetainElements, FieldLogoUseLocations, FieldFileFormats} {
		ptr := f.set(field)
		seen := make(map[string]struct{}, len(*ptr))
		out := make([]string, 0, len(*ptr))
		for _, v := range *ptr {
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
		*ptr = out
	}
	return f
}
