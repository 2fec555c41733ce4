package locator

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-rod/rod"
)

// Response holds what was read from the answer node. Both fields are empty
// when no answer was found.
type Response struct {
	Text string `json:"text"`
	HTML string `json:"html"`
}

// Empty reports whether the response carries no content.
func (r Response) Empty() bool {
	return r.Text == "" && r.HTML == ""
}

// Locator reads the AI answer from a live page.
type Locator struct {
	sel    Selectors
	logger *slog.Logger
}

// New creates a Locator. Zero-value Selectors fields get production defaults.
func New(sel Selectors, logger *slog.Logger) *Locator {
	sel.defaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Locator{sel: sel, logger: logger}
}

// Locate tries each strategy in order and returns the first non-empty
// response. A nil page or an all-strategies miss returns an empty Response.
func (l *Locator) Locate(page *rod.Page) Response {
	if page == nil {
		return Response{}
	}
	if r := l.fromPrimary(page); !r.Empty() {
		return r
	}
	if r := l.fromFallbacks(page); !r.Empty() {
		return r
	}
	if r := l.fromScript(page); !r.Empty() {
		return r
	}
	return l.fromBubbles(page)
}

// fromPrimary reads the last primary-selector match through its parent node,
// recombining content the renderer split across sibling elements.
func (l *Locator) fromPrimary(page *rod.Page) Response {
	els, err := page.Elements(l.sel.Primary)
	if err != nil || len(els) == 0 {
		if err != nil {
			l.logger.Debug("locator: primary selector failed", "selector", l.sel.Primary, "error", err)
		}
		return Response{}
	}
	el := els[len(els)-1]

	node := el
	if parent, err := el.Parent(); err == nil && parent != nil {
		node = parent
	}

	text := textContentOf(node)
	html, err := node.HTML()
	if err != nil {
		html = ""
	}
	if text == "" {
		// Parent read failed or is empty; fall back to the element itself.
		text = textContentOf(el)
		if html == "" {
			if h, err := el.HTML(); err == nil {
				html = h
			}
		}
	}
	if text == "" && html == "" {
		return Response{}
	}
	return Response{Text: text, HTML: html}
}

// fromFallbacks tries each fallback selector, requiring a minimum text
// length so broad selectors matching empty shells do not win.
func (l *Locator) fromFallbacks(page *rod.Page) Response {
	for _, sel := range l.sel.Fallbacks {
		els, err := page.Elements(sel)
		if err != nil || len(els) == 0 {
			continue
		}
		text, err := els[0].Text()
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if len(text) <= l.sel.MinFallbackText {
			continue
		}
		html := ""
		if res, err := els[0].Eval(`() => this.innerHTML`); err == nil {
			html = res.Value.Str()
		}
		l.logger.Debug("locator: matched fallback", "selector", sel, "size", len(text))
		return Response{Text: text, HTML: html}
	}
	return Response{}
}

// fromScript re-runs the selector chain inside the page context. Some answer
// subtrees are only reachable once the page's own scripts have settled, so
// this catches nodes the CDP element queries missed.
func (l *Locator) fromScript(page *rod.Page) Response {
	primary, _ := json.Marshal(l.sel.Primary)
	fallbacks, _ := json.Marshal(l.sel.Fallbacks)

	script := fmt.Sprintf(`() => {
		const primary = document.querySelector(%s);
		if (primary) {
			const text = (primary.textContent || '').trim();
			return { text, html: primary.outerHTML || primary.innerHTML || '', source: 'primary' };
		}
		for (const selector of %s) {
			const el = document.querySelector(selector);
			if (el && el.textContent && el.textContent.trim().length > %d) {
				return { text: el.textContent.trim(), html: el.innerHTML || '', source: selector };
			}
		}
		return { text: '', html: '', source: 'none' };
	}`, primary, fallbacks, l.sel.MinFallbackText)

	res, err := page.Eval(script)
	if err != nil {
		l.logger.Debug("locator: page script failed", "error", err)
		return Response{}
	}

	text := strings.TrimSpace(res.Value.Get("text").Str())
	html := res.Value.Get("html").Str()
	source := res.Value.Get("source").Str()
	if text == "" && html == "" {
		return Response{}
	}
	l.logger.Debug("locator: extracted via page script", "source", source, "size", len(text))
	return Response{Text: text, HTML: html}
}

// fromBubbles reads the last assistant message bubble.
func (l *Locator) fromBubbles(page *rod.Page) Response {
	els, err := page.Elements(l.sel.Bubble)
	if err != nil || len(els) == 0 {
		return Response{}
	}
	last := els[len(els)-1]
	text, err := last.Text()
	if err != nil {
		return Response{}
	}
	html, _ := last.HTML()
	return Response{Text: strings.TrimSpace(text), HTML: html}
}

// textContentOf reads a node's raw textContent, which includes text from
// sibling-split fragments that visible-text helpers skip.
func textContentOf(el *rod.Element) string {
	res, err := el.Eval(`() => this.textContent`)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(res.Value.Str())
}
