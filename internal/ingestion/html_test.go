package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFromHTML_PdftohtmlRendition(t *testing.T) {
	html := `<!DOCTYPE html>
<html>
<head><title>diploma.pdf</title><style>p { margin: 0 }</style></head>
<body>
<script>console.log("ignored")</script>
<p>UNIVERSITÉ DE BERTOUA<br/>THE UNIVERSITY OF BERTOUA</p>
<p>Domaine :&#160;Mathématiques   Specialization : Mathematics</p>
</body>
</html>`

	text, err := TextFromHTML(html)
	require.NoError(t, err)

	assert.Contains(t, text, "UNIVERSITÉ DE BERTOUA\nTHE UNIVERSITY OF BERTOUA\n")
	assert.Contains(t, text, "Domaine :\u00a0Mathématiques   Specialization : Mathematics\n")
	assert.NotContains(t, text, "console.log")
	assert.NotContains(t, text, "margin")
	assert.NotContains(t, text, "diploma.pdf")
}

func TestTextFromHTML_BlockElementsEndLines(t *testing.T) {
	html := `<div>Sexe / Gender : F</div><h2>N° Matricule : 19ENS0042</h2><ul><li>one</li><li>two</li></ul>`

	text, err := TextFromHTML(html)
	require.NoError(t, err)

	assert.Contains(t, text, "Sexe / Gender : F\n")
	assert.Contains(t, text, "N° Matricule : 19ENS0042\n")
	assert.Contains(t, text, "one\n")
	assert.Contains(t, text, "two\n")
}

func TestTextFromHTML_TableRows(t *testing.T) {
	html := `<table><tr><td>Mention :</td><td>Bien</td></tr><tr><td>Grade :</td><td>Good</td></tr></table>`

	text, err := TextFromHTML(html)
	require.NoError(t, err)
	assert.Contains(t, text, "Mention :Bien\n")
	assert.Contains(t, text, "Grade :Good\n")
}

func TestTextFromHTML_NoText(t *testing.T) {
	_, err := TextFromHTML(`<html><body><script>var x = 1;</script><img src="scan.png"></body></html>`)
	require.Error(t, err)

	var emptyErr *EmptyInputError
	assert.ErrorAs(t, err, &emptyErr)
}
