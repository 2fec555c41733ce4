package locator

import (
	"strings"
	"testing"
)

func TestSelectors_Defaults(t *testing.T) {
	// WHAT: Zero-value Selectors get the production SERP layout.
	// WHY: Callers configure only what differs from the live layout.
	var s Selectors
	s.defaults()

	if s.Primary != "[data-subtree='aimfl']" {
		t.Errorf("Primary = %q", s.Primary)
	}
	if len(s.Fallbacks) == 0 {
		t.Error("expected fallback selectors")
	}
	if s.MinFallbackText != 10 {
		t.Errorf("MinFallbackText = %d, want 10", s.MinFallbackText)
	}
	if s.Bubble == "" || len(s.AskBox) == 0 || len(s.NewSearch) == 0 {
		t.Error("expected bubble, ask box, and new-search defaults")
	}
}

func TestSelectors_OverridesKept(t *testing.T) {
	// WHAT: Explicit values survive defaults().
	s := Selectors{Primary: ".custom", MinFallbackText: 50}
	s.defaults()
	if s.Primary != ".custom" {
		t.Errorf("Primary = %q, want .custom", s.Primary)
	}
	if s.MinFallbackText != 50 {
		t.Errorf("MinFallbackText = %d, want 50", s.MinFallbackText)
	}
}

func TestResponse_Empty(t *testing.T) {
	cases := []struct {
		r    Response
		want bool
	}{
		{Response{}, true},
		{Response{Text: "x"}, false},
		{Response{HTML: "<div/>"}, false},
	}
	for _, tc := range cases {
		if got := tc.r.Empty(); got != tc.want {
			t.Errorf("Empty(%+v) = %v, want %v", tc.r, got, tc.want)
		}
	}
}

func TestLocate_NilPage(t *testing.T) {
	// WHAT: A nil page handle yields an empty Response, never a panic.
	// WHY: The collaborator boundary converts driver loss to "no text".
	l := New(Selectors{}, nil)
	if r := l.Locate(nil); !r.Empty() {
		t.Errorf("Locate(nil) = %+v, want empty", r)
	}
}

func TestTextFromHTML_RecoversFragmentText(t *testing.T) {
	// WHAT: Text is recovered from a captured HTML fragment.
	got := TextFromHTML(`<div><p>hello</p><p>world</p></div>`)
	if !strings.Contains(got, "hello") || !strings.Contains(got, "world") {
		t.Errorf("TextFromHTML = %q, want text of both paragraphs", got)
	}
}

func TestTextFromHTML_DropsCommentsAndScripts(t *testing.T) {
	// WHAT: Renderer comment markers and scripts never leak into the text.
	got := TextFromHTML(`<div>payload<!--Sv6Kpe[]--><script>evil()</script></div>`)
	if !strings.Contains(got, "payload") {
		t.Errorf("TextFromHTML = %q, want payload text", got)
	}
	if strings.Contains(got, "Sv6Kpe") || strings.Contains(got, "evil") {
		t.Errorf("TextFromHTML = %q, comment/script content leaked", got)
	}
}

func TestTextFromHTML_Empty(t *testing.T) {
	if got := TextFromHTML("   "); got != "" {
		t.Errorf("TextFromHTML(blank) = %q, want empty", got)
	}
}

func TestTextContent_SkipsScriptSubtrees(t *testing.T) {
	// WHAT: The parse fallback joins text nodes and skips script/style.
	got := textContent(`<div>a<script>bad()</script><style>.x{}</style>b</div>`)
	if got != "a b" {
		t.Errorf("textContent = %q, want %q", got, "a b")
	}
}

func TestBrowserConfig_Defaults(t *testing.T) {
	var c BrowserConfig
	c.defaults()
	if c.NavTimeout <= 0 {
		t.Error("expected nav timeout default")
	}
}
