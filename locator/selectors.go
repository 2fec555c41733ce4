// Package locator finds the AI answer node on a search results page and
// returns its text and HTML for JSON recovery.
//
// The answer panel moves around: the primary subtree selector is the reliable
// anchor, but the panel also surfaces under a handful of fallback containers,
// and as a last resort the page is asked directly via an injected script.
// Every strategy failure degrades to the next one; a severed driver or an
// empty page yields an empty Response, never an error.
package locator

// Selectors is the immutable selector configuration for one search engine
// layout. The zero value plus defaults() matches the current production SERP.
type Selectors struct {
	// Primary anchors the AI answer subtree. The LAST match is the most
	// recent answer, and content is read from its parent node because the
	// renderer splits one answer across sibling elements.
	Primary string `yaml:"primary"`

	// Fallbacks are tried in order when Primary matches nothing. A match
	// counts only if its text exceeds MinFallbackText.
	Fallbacks []string `yaml:"fallbacks"`

	// MinFallbackText filters out empty shells matched by broad fallbacks.
	MinFallbackText int `yaml:"min_fallback_text"`

	// Bubble is the last-resort conversational message selector.
	Bubble string `yaml:"bubble"`

	// AskBox selectors locate the question textarea, tried in order.
	AskBox []string `yaml:"ask_box"`

	// NewSearch selectors locate the reset button, tried in order.
	NewSearch []string `yaml:"new_search"`
}

func (s *Selectors) defaults() {
	if s.Primary == "" {
		s.Primary = "[data-subtree='aimfl']"
	}
	if len(s.Fallbacks) == 0 {
		s.Fallbacks = []string{
			".Y3BBE",
			"[data-attrid='AIOverview']",
			".ai-overview",
			"[jsname*='ai']",
			"[data-hveid*='AI']",
			".kp-wholepage",
		}
	}
	if s.MinFallbackText <= 0 {
		s.MinFallbackText = 10
	}
	if s.Bubble == "" {
		s.Bubble = "div[data-message-author-role='assistant']"
	}
	if len(s.AskBox) == 0 {
		s.AskBox = []string{
			"textarea.ITIRGe",
			"textarea[aria-label='Ask anything']",
		}
	}
	if len(s.NewSearch) == 0 {
		s.NewSearch = []string{
			"button[aria-label='Start new search']",
			"button[title='Start new search']",
			"button.UTNPFf",
		}
	}
}
