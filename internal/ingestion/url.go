package ingestion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/diploma-scanner/internal/fetch"
)

// IngestFromURL downloads a document's text. HTML responses are flattened
// with TextFromHTML; anything else is taken verbatim.
func IngestFromURL(ctx context.Context, urlStr string, opts *fetch.Options) (string, *Metadata, error) {
	result, err := fetch.URL(ctx, urlStr, opts)
	if err != nil {
		return "", nil, fmt.Errorf("failed to fetch document: %w", err)
	}

	text := result.Body
	format := FormatText
	if strings.Contains(strings.ToLower(result.ContentType), "html") {
		text, err = TextFromHTML(result.Body)
		if err != nil {
			var empty *EmptyInputError
			if errors.As(err, &empty) {
				empty.Source = urlStr
			}
			return "", nil, err
		}
		format = FormatHTML
	} else if err := RequireText(text, urlStr); err != nil {
		return "", nil, err
	}

	meta := NewMetadata(text, urlStr)
	meta.Format = format
	return text, meta, nil
}
