package extract

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBytes_UnsupportedExtension(t *testing.T) {
	e := NewExtractor()

	result := e.ExtractBytes([]byte("hello"), "resume.xlsx")

	assert.False(t, result.Success)
	assert.Empty(t, result.Text)
	assert.Contains(t, result.ErrorMessage, ".xlsx")
}

func TestExtractFile_Missing(t *testing.T) {
	e := NewExtractor()

	result := e.ExtractFile("/nonexistent/path/resume.pdf")

	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "file not found")
}

func TestExtractPlainText_UTF8(t *testing.T) {
	e := NewExtractor()

	result := e.ExtractBytes([]byte("John Doe\nSoftware Engineer"), "resume.txt")

	require.True(t, result.Success)
	assert.Equal(t, "John Doe\nSoftware Engineer", result.Text)
	assert.Equal(t, 1, result.PageCount)
	assert.Equal(t, "utf-8", result.Metadata["encoding"])
}

func TestExtractPlainText_CP1252(t *testing.T) {
	e := NewExtractor()

	// 0x93/0x94 are curly quotes in CP1252, C1 controls in Latin-1.
	data := []byte{0x93, 'h', 'i', 0x94}
	result := e.ExtractBytes(data, "resume.txt")

	require.True(t, result.Success)
	assert.Equal(t, "“hi”", result.Text)
	assert.Equal(t, "cp1252", result.Metadata["encoding"])
}

func TestExtractPlainText_Latin1(t *testing.T) {
	e := NewExtractor()

	// 0xe9 is é in Latin-1 and is not valid UTF-8 on its own.
	result := e.ExtractBytes([]byte{'r', 0xe9, 's', 'u', 'm', 0xe9}, "resume.txt")

	require.True(t, result.Success)
	assert.Equal(t, "résumé", result.Text)
}

func TestExtractPlainText_PageEstimate(t *testing.T) {
	e := NewExtractor()

	result := e.ExtractBytes([]byte(strings.Repeat("a", 9500)), "notes.md")

	require.True(t, result.Success)
	assert.Equal(t, 3, result.PageCount)
}

func TestExtractRTF_StripsControlWords(t *testing.T) {
	e := NewExtractor()

	rtf := `{\rtf1\ansi{\fonttbl{\f0 Arial;}}Hello\par World\tab done}`
	result := e.ExtractBytes([]byte(rtf), "resume.rtf")

	require.True(t, result.Success)
	assert.Contains(t, result.Text, "Hello")
	assert.Contains(t, result.Text, "World")
	assert.NotContains(t, result.Text, "Arial")
	assert.NotContains(t, result.Text, "\\par")
}

func TestExtractDOC_ScrapesReadableRuns(t *testing.T) {
	e := NewExtractor()

	data := append([]byte{0x00, 0x01, 0xd0, 0xcf}, []byte("Senior Developer")...)
	data = append(data, 0x00, 0x05)
	data = append(data, []byte("Acme Corp")...)

	result := e.ExtractBytes(data, "resume.doc")

	require.True(t, result.Success)
	assert.Contains(t, result.Text, "Senior Developer")
	assert.Contains(t, result.Text, "Acme Corp")
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "incomplete")
}

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractDOCX_ParagraphsAndTables(t *testing.T) {
	e := NewExtractor()

	docXML := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane Smith</w:t></w:r></w:p>
    <w:p><w:r><w:t>Data Engineer</w:t></w:r></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Skill</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>Years</w:t></w:r></w:p></w:tc>
      </w:tr>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Python</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>5</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
  </w:body>
</w:document>`

	result := e.ExtractBytes(buildDOCX(t, docXML), "resume.docx")

	require.True(t, result.Success)
	assert.Contains(t, result.Text, "Jane Smith")
	assert.Contains(t, result.Text, "Data Engineer")
	assert.Contains(t, result.Text, "Skill | Years")
	assert.Contains(t, result.Text, "Python | 5")
}

func TestExtractDOCX_Corrupt(t *testing.T) {
	e := NewExtractor()

	result := e.ExtractBytes([]byte("definitely not a zip"), "resume.docx")

	assert.False(t, result.Success)
	assert.Empty(t, result.Text)
	assert.NotEmpty(t, result.ErrorMessage)
}

func TestSupports(t *testing.T) {
	e := NewExtractor()

	assert.True(t, e.Supports("a.PDF"))
	assert.True(t, e.Supports("a.docx"))
	assert.True(t, e.Supports("a.md"))
	assert.False(t, e.Supports("a.png"))
	assert.False(t, e.Supports("noextension"))
}
