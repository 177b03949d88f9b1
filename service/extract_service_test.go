package service_test

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geeta-ai/geeta-be/service"
	"github.com/geeta-ai/geeta-be/types"
)

func TestExtractRejectsUnsupportedFormat(t *testing.T) {
	extractor := service.NewExtractService()

	_, err := extractor.Extract("image.png", []byte{1, 2, 3})
	require.ErrorIs(t, err, types.ErrUnsupportedFormat)

	_, err = extractor.Extract("noextension", []byte("text"))
	require.ErrorIs(t, err, types.ErrUnsupportedFormat)
}

func TestExtractPlainTextPassthrough(t *testing.T) {
	extractor := service.NewExtractService()

	text, err := extractor.Extract("notes.txt", []byte("plain contents"))
	require.NoError(t, err)
	require.Equal(t, "plain contents", text)

	text, err = extractor.Extract("README.md", []byte("# Heading\n\nbody"))
	require.NoError(t, err)
	require.Equal(t, "# Heading\n\nbody", text)
}

func TestExtractUppercaseExtension(t *testing.T) {
	extractor := service.NewExtractService()

	text, err := extractor.Extract("NOTES.TXT", []byte("upper"))
	require.NoError(t, err)
	require.Equal(t, "upper", text)
}

func TestExtractDocx(t *testing.T) {
	extractor := service.NewExtractService()

	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(docXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	text, err := extractor.Extract("report.docx", buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, "First paragraph.\nSecond paragraph.", text)
}

func TestExtractDocxInvalidContainer(t *testing.T) {
	extractor := service.NewExtractService()

	_, err := extractor.Extract("broken.docx", []byte("not a zip"))
	require.Error(t, err)
}

func TestExtractDocxMissingDocumentPart(t *testing.T) {
	extractor := service.NewExtractService()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/other.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = extractor.Extract("empty.docx", buf.Bytes())
	require.Error(t, err)
}
