package extract

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestDOCX builds a minimal valid DOCX archive in memory.
func createTestDOCX(documentXML string) []byte {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	contentTypes, _ := w.Create("[Content_Types].xml")
	contentTypes.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`))

	if documentXML != "" {
		doc, _ := w.Create("word/document.xml")
		doc.Write([]byte(documentXML))
	}

	w.Close()
	return buf.Bytes()
}

const testDocumentXML = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
<w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
</w:body>
</w:document>`

func TestExtract_DOCX(t *testing.T) {
	extractor := New()

	text, err := extractor.Extract(createTestDOCX(testDocumentXML), ".docx")
	require.NoError(t, err)
	assert.Equal(t, "First paragraph.\nSecond paragraph.", text)
}

func TestExtract_DOCX_MissingBody(t *testing.T) {
	extractor := New()

	text, err := extractor.Extract(createTestDOCX(""), ".docx")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtract_DOCX_InvalidArchive(t *testing.T) {
	extractor := New()

	_, err := extractor.Extract([]byte("not a zip file"), ".docx")
	assert.Error(t, err)
}

func TestExtract_PDF_InvalidFile(t *testing.T) {
	extractor := New()

	_, err := extractor.Extract([]byte("not a pdf"), ".pdf")
	assert.Error(t, err)
}

func TestExtract_UnsupportedFormats(t *testing.T) {
	extractor := New()

	for _, ext := range []string{".txt", ".md", ".exe", "", ".doc"} {
		_, err := extractor.Extract([]byte("data"), ext)
		assert.ErrorIs(t, err, ErrUnsupportedFormat, "extension %q", ext)
	}
}

func TestSupported_ExtensionNormalization(t *testing.T) {
	extractor := New()

	assert.True(t, extractor.Supported(".pdf"))
	assert.True(t, extractor.Supported(".PDF"))
	assert.True(t, extractor.Supported("docx"))
	assert.True(t, extractor.Supported(".DocX"))
	assert.False(t, extractor.Supported(".txt"))
	assert.False(t, extractor.Supported(""))
}

func TestExtract_ExtensionCaseInsensitive(t *testing.T) {
	extractor := New()

	text, err := extractor.Extract(createTestDOCX(testDocumentXML), ".DOCX")
	require.NoError(t, err)
	assert.Contains(t, text, "First paragraph.")
}
