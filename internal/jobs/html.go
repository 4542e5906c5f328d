package jobs

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const blockElements = "p, li, div, h1, h2, h3, h4, h5, h6, tr, ul, ol"

// CleanDescription strips markup from an aggregator description and keeps
// one line per block element.
func CleanDescription(raw string) string {
	if !strings.ContainsAny(raw, "<&") {
		return normalizeLines(raw)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return normalizeLines(raw)
	}

	doc.Find("script, style, iframe, noscript").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find(blockElements).AppendHtml("\n")

	return normalizeLines(doc.Text())
}

func normalizeLines(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
