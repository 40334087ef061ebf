package questionnaire

// TermsTitle heads the engagement terms shown above the agreement checkbox.
const TermsTitle = "Design Engagement Terms"

// TermsParagraphs is the body of the engagement terms a customer agrees to
// by setting termsAgreement.
var TermsParagraphs = []string{
	"To begin your logo design project, we will first align on expectations and the overall creative direction. " +
		"As someone already familiar with the quality and standard of my work, you can expect a collaborative process " +
		"designed to ensure a result that meets your vision.",
	"You will receive up to five rounds of revisions, allowing room for refinement and feedback at each stage of the design process.",
	"To initiate the project, a 50% advance payment will be required. This serves as a mutual commitment to the process and " +
		"ensures dedicated time and focus on your project. Please note that no draft designs can be shared before this initial payment is received.",
}
