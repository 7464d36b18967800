package preview

import "regexp"

// Directive patterns. Shortest-match, with . spanning newlines, so each
// delimiter pair is removed as a unit wherever it appears in the document.
var (
	controlTagRe    = regexp.MustCompile(`(?s)\{%.*?%\}`)
	expressionTagRe = regexp.MustCompile(`(?s)\{\{.*?\}\}`)
)

// StripDirectives removes templating directives from a template's contents,
// producing a visual approximation of the rendered page. Control tags
// ({% ... %}) are removed first, then expression tags ({{ ... }}), in both
// cases across the full document text regardless of position.
//
// Matching is purely syntactic. A stray {% with no closing %} before the
// next one consumes everything up to the next %} it finds, which may span
// unrelated markup. That is an accepted approximation: the goal is a
// previewable page, not template semantics. The function is total and never
// fails, whatever the input.
func StripDirectives(s string) string {
	s = controlTagRe.ReplaceAllString(s, "")
	return expressionTagRe.ReplaceAllString(s, "")
}
