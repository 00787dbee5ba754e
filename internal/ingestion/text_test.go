package ingestion

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestReadText_PreservesContentVerbatim(t *testing.T) {
	input := "Domaine :  Physique   Specialization\r\nMention : Bien\u00a0 \n\n\n"
	text, err := ReadText(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, input, text)
}

func TestReadText_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\r\n\t", "\ufeff\u00a0"} {
		_, err := ReadText(strings.NewReader(input))
		require.Error(t, err, "input %q", input)

		var emptyErr *EmptyInputError
		assert.ErrorAs(t, err, &emptyErr)
	}
}

func TestReadText_ReadFailure(t *testing.T) {
	_, err := ReadText(failingReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read input")
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestIngestFromReader(t *testing.T) {
	text, meta, err := IngestFromReader(strings.NewReader("N° DIP-2020-ABCD-001"), "-")
	require.NoError(t, err)
	assert.Equal(t, "N° DIP-2020-ABCD-001", text)
	assert.Equal(t, "-", meta.Source)
	assert.Equal(t, len(text), meta.Bytes)

	_, _, err = IngestFromReader(strings.NewReader(" "), "-")
	var emptyErr *EmptyInputError
	require.ErrorAs(t, err, &emptyErr)
	assert.Equal(t, "-", emptyErr.Source)
}

func TestIngestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "diploma.txt")
	content := "Délivré à Mr./Mme. : Jane Doe\r\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	text, meta, err := IngestFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, text)
	assert.Equal(t, path, meta.Source)
	assert.Equal(t, FormatText, meta.Format)
	assert.Equal(t, computeHash(content), meta.Hash)
}

func TestIngestFromFile_NotFound(t *testing.T) {
	_, _, err := IngestFromFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestIngestFromFile_ReadFailure(t *testing.T) {
	_, _, err := IngestFromFile(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestIngestFromFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n\n"), 0o644))

	_, _, err := IngestFromFile(path)
	var emptyErr *EmptyInputError
	require.ErrorAs(t, err, &emptyErr)
	assert.Equal(t, path, emptyErr.Source)
	assert.Contains(t, err.Error(), "input contains no text")
}

func TestEmptyInputError_Message(t *testing.T) {
	assert.Equal(t, "input contains no text", (&EmptyInputError{}).Error())
	assert.Equal(t, "input contains no text: scan.pdf", (&EmptyInputError{Source: "scan.pdf"}).Error())
}
