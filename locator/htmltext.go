package locator

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// markupPolicy drops scripts, styles, comment markers, and event handlers
// from captured fragments before text recovery. The renderer leaves comment
// nodes like <!--Sv6Kpe[]--> inside the answer subtree.
var markupPolicy = bluemonday.UGCPolicy()

var mdConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
	),
)

// TextFromHTML recovers readable text from a captured answer fragment. Used
// when the DOM reported an empty textContent but outer HTML was captured,
// which happens when the answer is still streaming into sibling nodes.
func TextFromHTML(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}

	clean := markupPolicy.Sanitize(fragment)

	if md, err := mdConverter.ConvertString(clean); err == nil {
		if t := strings.TrimSpace(md); t != "" {
			return t
		}
	}
	return textContent(clean)
}

// textContent walks the parsed fragment and joins its text nodes, skipping
// script/style subtrees and comments.
func textContent(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return ""
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			b.WriteByte(' ')
		case html.CommentNode:
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(b.String()), " ")
}
