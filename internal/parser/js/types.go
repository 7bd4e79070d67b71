package js

// Template is a css or html tagged template literal found in JS/TS source
type Template struct {
	// Tag is the template tag function name ("css" or "html")
	Tag string
	// Content is the raw text between the backticks
	Content string
	// StartLine is the 0-indexed line where Content begins
	StartLine uint
	// StartCol is the 0-indexed UTF-16 column where Content begins
	StartCol uint
	// Substitutions counts the ${...} expressions in the template
	Substitutions int
}
