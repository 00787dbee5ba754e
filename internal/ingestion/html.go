package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockSelectors end a line in the flattened text.
const blockSelectors = "p, div, tr, li, h1, h2, h3, h4, h5, h6"

// TextFromHTML flattens an HTML rendition of a document (for example pdftohtml
// output) into plain text. Scripts and styles are dropped, every block element
// and <br> ends a line, and spacing inside a block is kept as is.
func TextFromHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find(blockSelectors).AppendHtml("\n")

	text := doc.Find("body").Text()
	if err := RequireText(text, "html"); err != nil {
		return "", err
	}
	return text, nil
}
