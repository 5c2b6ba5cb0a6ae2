package ingest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var blankLines = regexp.MustCompile(`\n{3,}`)

// HTMLToText strips an HTML document down to its visible text. Utility
// bills and contract pages are often exported as HTML email bodies full of
// tracking pixels, scripts and layout tables; the extraction model only
// needs the text.
func HTMLToText(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, iframe, svg").Remove()

	// Rows and cells flattened with separators so tabular amounts stay
	// associated with their labels.
	doc.Find("td, th").Each(func(i int, sel *goquery.Selection) {
		sel.AppendHtml(" | ")
	})
	doc.Find("tr, p, div, br, li, h1, h2, h3, h4").Each(func(i int, sel *goquery.Selection) {
		sel.AppendHtml("\n")
	})

	text := doc.Text()

	// Collapse whitespace noise left by layout markup.
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	text = strings.Join(lines, "\n")
	text = blankLines.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text), nil
}
