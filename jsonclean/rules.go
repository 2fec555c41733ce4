package jsonclean

import "regexp"

// reBoilerplate matches the caution phrase the answer UI injects between
// fragments, with an optional trailing period. Shared with value sanitation.
var reBoilerplate = regexp.MustCompile(`(?i)use code with caution\.?`)

// rule is one ordered text-transform step applied before span discovery.
type rule struct {
	re   *regexp.Regexp
	repl string
}

// cleanupRules run in order over the raw text. Order matters: the boilerplate
// phrase and fences must go before the allow-list pass strips the backticks
// that anchor them.
var cleanupRules = []rule{
	// Boilerplate phrase, wherever it occurs.
	{reBoilerplate, ""},
	// Language-tagged opening fence.
	{regexp.MustCompile("(?i)```json\\s*"), ""},
	// Any remaining fence.
	{regexp.MustCompile("```\\s*"), ""},
	// Standalone format label directly before JSON content. RE2 has no
	// lookahead, so the delimiter is captured and re-emitted.
	{regexp.MustCompile(`(?i)\bjson\b(\s*[{"\[])`), "$1"},
	// Allow-list: letters, digits, JSON structural characters, space, tab.
	// Removes markup remnants and control characters.
	{regexp.MustCompile(`[^a-zA-Z0-9{}\[\]:,"'.@\-_ \t]`), ""},
}

// applyRules runs the cleanup rule list over text in order.
func applyRules(text string) string {
	for _, r := range cleanupRules {
		text = r.re.ReplaceAllString(text, r.repl)
	}
	return text
}
