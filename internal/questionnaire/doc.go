// Package questionnaire defines the logo design brief: the form answers, the
// five sections they are grouped into, the static option catalog, and the
// checks a brief must pass before it is submitted.
//
// Form values are immutable from the caller's point of view. Operations such
// as SetText and Toggle return a new Form:
//
//	form := questionnaire.NewForm()
//	form, _ = form.SetText(questionnaire.FieldBusinessName, "Bean There")
//	form, _ = form.Toggle(questionnaire.FieldFileFormats, "SVG")
//
// Section order is fixed and navigated with Next and Prev, which stop at the
// first and last section.
package questionnaire
