package questionnaire

// Section identifies one of the five tabbed panels of the questionnaire.
type Section int

const (
	SectionCompany Section = iota
	SectionDesign
	SectionHistory
	SectionPractical
	SectionBudget
)

// Sections is the fixed display order of the questionnaire panels.
var Sections = []Section{
	SectionCompany,
	SectionDesign,
	SectionHistory,
	SectionPractical,
	SectionBudget,
}

// ID returns the stable identifier of the section.
func (s Section) ID() string {
	switch s {
	case SectionCompany:
		return "company"
	case SectionDesign:
		return "design"
	case SectionHistory:
		return "history"
	case SectionPractical:
		return "practical"
	case SectionBudget:
		return "budget"
	default:
		return "unknown"
	}
}

// Tab returns the short label shown in the tab bar.
func (s Section) Tab() string {
	switch s {
	case SectionCompany:
		return "Company"
	case SectionDesign:
		return "Design"
	case SectionHistory:
		return "History"
	case SectionPractical:
		return "Usage"
	case SectionBudget:
		return "Budget"
	default:
		return "Unknown"
	}
}

// Title returns the heading rendered at the top of the section panel.
func (s Section) Title() string {
	switch s {
	case SectionCompany:
		return "Company & Vision"
	case SectionDesign:
		return "Design Preferences"
	case SectionHistory:
		return "Previous Logos & Feedback"
	case SectionPractical:
		return "Practical Usage"
	case SectionBudget:
		return "Budget & Timeline"
	default:
		return "Unknown"
	}
}

func (s Section) String() string {
	return s.ID()
}

// Valid reports whether s is one of the five known sections.
func (s Section) Valid() bool {
	return s >= SectionCompany && s <= SectionBudget
}

// ParseSection resolves a section identifier such as "practical".
func ParseSection(id string) (Section, bool) {
	for _, s := range Sections {
		if s.ID() == id {
			return s, true
		}
	}
	return SectionCompany, false
}

// Next returns the section after current. At the last section it returns
// current unchanged.
func Next(current Section) Section {
	if current >= SectionBudget {
		return SectionBudget
	}
	if current < SectionCompany {
		return SectionCompany
	}
	return current + 1
}

// Prev returns the section before current. At the first section it returns
// current unchanged.
func Prev(current Section) Section {
	if current <= SectionCompany {
		return SectionCompany
	}
	if current > SectionBudget {
		return SectionBudget
	}
	return current - 1
}

// IsFirst reports whether s is the first section.
func (s Section) IsFirst() bool { return s == SectionCompany }

// IsLast reports whether s is the last section.
func (s Section) IsLast() bool { return s == SectionBudget }
