package questionnaire

// Field names a single entry of the form. The string value is the JSON key
// used on the wire.
type Field string

const (
	FieldBusinessName         Field = "businessName"
	FieldIndustry             Field = "industry"
	FieldBusinessDescription  Field = "businessDescription"
	FieldLogoMessage          Field = "logoMessage"
	FieldTargetAudience       Field = "targetAudience"
	FieldConceptDescription   Field = "conceptDescription"
	FieldLogoStyle            Field = "logoStyle"
	FieldLogoType             Field = "logoType"
	FieldColorPreferences     Field = "colorPreferences"
	FieldLogoInspiration      Field = "logoInspiration"
	FieldPreviousLogoFeedback Field = "previousLogoFeedback"
	FieldPartnerFeedback      Field = "partnerFeedback"
	FieldRetainElements       Field = "retainElements"
	FieldLogoUseLocations     Field = "logoUseLocations"
	FieldFileFormats          Field = "fileFormats"
	FieldServiceTier          Field = "serviceTier"
	FieldDeadline             Field = "deadline"
	FieldTermsAgreement       Field = "termsAgreement"
)

// Kind describes how a field's value is stored and edited.
type Kind int

const (
	KindText Kind = iota
	KindLongText
	KindChoice
	KindSet
	KindDate
	KindBool
)

// IsScalar reports whether the kind is stored as a single string.
func (k Kind) IsScalar() bool {
	return k == KindText || k == KindLongText || k == KindChoice || k == KindDate
}

// FieldSpec is the static description of one form field.
type FieldSpec struct {
	Field       Field
	Section     Section
	Kind        Kind
	Label       string
	Placeholder string
	Required    bool
}

// fieldSpecs lists every field in display order.
var fieldSpecs = []FieldSpec{
	{FieldBusinessName, SectionCompany, KindText, "Business Name", "Your company name", true},
	{FieldIndustry, SectionCompany, KindText, "Industry/Niche", "E.g. Coffee Shop, Tech Startup, Healthcare", true},
	{FieldBusinessDescription, SectionCompany, KindLongText, "What does your business do?", "Briefly describe your products/services and what sets you apart", true},
	{FieldLogoMessage, SectionCompany, KindLongText, "What message should the logo communicate?", "E.g. Reliability, Innovation, Luxury", true},
	{FieldTargetAudience, SectionCompany, KindLongText, "Who is your target audience?", "Age range, demographics, interests, etc.", true},

	{FieldConceptDescription, SectionDesign, KindLongText, "Do you have a specific concept in mind?", "Describe any concepts or ideas you already have", false},
	{FieldLogoStyle, SectionDesign, KindChoice, "Preferred Style", "", false},
	{FieldLogoType, SectionDesign, KindChoice, "Do you want text only, icon only, or a combination?", "Select logo type", true},
	{FieldColorPreferences, SectionDesign, KindSet, "Colors you like (select multiple)", "", false},
	{FieldLogoInspiration, SectionDesign, KindLongText, "Logos you admire (and why)", "List examples of logos you like and explain why they appeal to you", false},

	{FieldRetainElements, SectionHistory, KindSet, "Retain elements from this logo", "", false},
	{FieldPreviousLogoFeedback, SectionHistory, KindLongText, "What didn't you like about previous logos?", "Specific aspects you disliked about previous designs", false},
	{FieldPartnerFeedback, SectionHistory, KindLongText, "What feedback did your partners give?", "Feedback from partners, team members, stakeholders, etc.", false},

	{FieldLogoUseLocations, SectionPractical, KindSet, "Where will the logo be used? (select all that apply)", "", true},
	{FieldFileFormats, SectionPractical, KindSet, "File formats needed (select all that apply)", "", true},

	{FieldServiceTier, SectionBudget, KindChoice, "Service Package", "", true},
	{FieldDeadline, SectionBudget, KindDate, "Deadline for Final Logo", "YYYY-MM-DD", true},
	{FieldTermsAgreement, SectionBudget, KindBool, "I agree to these design engagement terms", "", true},
}

var fieldIndex = func() map[Field]int {
	idx := make(map[Field]int, len(fieldSpecs))
	for i, s := range fieldSpecs {
		idx[s.Field] = i
	}
	return idx
}()

// Spec returns the static description of a field.
func Spec(field Field) (FieldSpec, bool) {
	i, ok := fieldIndex[field]
	if !ok {
		return FieldSpec{}, false
	}
	return fieldSpecs[i], true
}

// Fields returns all field specs in display order.
func Fields() []FieldSpec {
	out := make([]FieldSpec, len(fieldSpecs))
	copy(out, fieldSpecs)
	return out
}

// FieldsIn returns the specs of the fields shown in a section, in order.
func FieldsIn(section Section) []FieldSpec {
	var out []FieldSpec
	for _, s := range fieldSpecs {
		if s.Section == section {
			out = append(out, s)
		}
	}
	return out
}

// DisplayLabel returns the label with a trailing "*" on required fields.
// Labels ending in a parenthetical get the marker before it.
func (s FieldSpec) DisplayLabel() string {
	if !s.Required {
		return s.Label
	}
	if n := len(s.Label); n > 0 && s.Label[n-1] == ')' {
		for i := n - 1; i > 0; i-- {
			if s.Label[i] == '(' && s.Label[i-1] == ' ' {
				return s.Label[:i-1] + "* " + s.Label[i:]
			}
		}
	}
	return s.Label + "*"
}
