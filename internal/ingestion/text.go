// Package ingestion reads diploma text from files, readers, URLs and HTML renditions.
// Text is passed through exactly as supplied; the extractor's patterns depend on
// the source document's spacing.
package ingestion

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// EmptyInputError reports input that holds no text to extract from,
// typically a scanned PDF the upstream converter could not read.
type EmptyInputError struct {
	Source string
}

func (e *EmptyInputError) Error() string {
	if e.Source == "" {
		return "input contains no text"
	}
	return fmt.Sprintf("input contains no text: %s", e.Source)
}

// RequireText returns an *EmptyInputError when text is blank.
func RequireText(text, source string) error {
	if isBlank(text) {
		return &EmptyInputError{Source: source}
	}
	return nil
}

// ReadText reads all of r without normalizing line endings or whitespace.
func ReadText(r io.Reader) (string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	text := string(content)
	if err := RequireText(text, ""); err != nil {
		return "", err
	}
	return text, nil
}

// IngestFromReader reads r and returns its text with metadata naming source.
func IngestFromReader(r io.Reader, source string) (string, *Metadata, error) {
	text, err := ReadText(r)
	if err != nil {
		var empty *EmptyInputError
		if errors.As(err, &empty) {
			empty.Source = source
		}
		return "", nil, err
	}
	return text, NewMetadata(text, source), nil
}

// IngestFromFile reads a text file and returns its content with metadata.
func IngestFromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	text := string(content)
	if err := RequireText(text, path); err != nil {
		return "", nil, err
	}
	return text, NewMetadata(text, path), nil
}

func isBlank(s string) bool {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	}) == ""
}
