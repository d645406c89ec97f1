package extract_test

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/extract"
)

func writeArchive(t *testing.T, path, member, body string) {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create(member)
	require.NoError(t, err)
	_, err = f.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestRegistry(t *testing.T) {
	reg := extract.NewRegistry()

	t.Run("Should cover the four supported extensions", func(t *testing.T) {
		assert.Equal(t, []string{".docx", ".odt", ".pdf", ".txt"}, reg.Supported())
	})
	t.Run("Should read plain text files verbatim", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("Paris is the capital of France.\n"), 0o644))
		text, err := reg.Extract(path)
		require.NoError(t, err)
		assert.Equal(t, "Paris is the capital of France.\n", text)
	})
	t.Run("Should dispatch by extension case-insensitively", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "NOTES.TXT")
		require.NoError(t, os.WriteFile(path, []byte("upper"), 0o644))
		text, err := reg.Extract(path)
		require.NoError(t, err)
		assert.Equal(t, "upper", text)
	})
	t.Run("Should report unknown extensions through ErrUnsupported", func(t *testing.T) {
		text, err := reg.Extract("whatever.xyz")
		assert.ErrorIs(t, err, extract.ErrUnsupported)
		assert.Empty(t, text)
	})
	t.Run("Should return an error for a missing file instead of panicking", func(t *testing.T) {
		text, err := reg.Extract(filepath.Join(t.TempDir(), "gone.txt"))
		assert.Error(t, err)
		assert.NotErrorIs(t, err, extract.ErrUnsupported)
		assert.Empty(t, text)
	})
}

func TestPDF(t *testing.T) {
	t.Run("Should degrade a corrupt document to an error without panicking", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.pdf")
		require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0o644))
		text, err := extract.PDF{}.Extract(path)
		assert.Error(t, err)
		assert.Empty(t, text)
	})
	t.Run("Should report a missing file as an error", func(t *testing.T) {
		_, err := extract.PDF{}.Extract(filepath.Join(t.TempDir(), "gone.pdf"))
		assert.Error(t, err)
	})
}

func TestWordDocument(t *testing.T) {
	t.Run("Should join paragraph text runs with newlines", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "doc.docx")
		writeArchive(t, path, "word/document.xml",
			`<?xml version="1.0"?>`+
				`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`+
				`<w:body>`+
				`<w:p><w:r><w:t>Hello from docx</w:t></w:r></w:p>`+
				`<w:p><w:r><w:t>Second</w:t></w:r><w:r><w:t> paragraph</w:t></w:r></w:p>`+
				`</w:body></w:document>`)
		text, err := extract.WordDocument{}.Extract(path)
		require.NoError(t, err)
		assert.Equal(t, "Hello from docx\nSecond paragraph", text)
	})
	t.Run("Should ignore character data outside text runs", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "doc.docx")
		writeArchive(t, path, "word/document.xml",
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`+
				"<w:body>\n  "+
				`<w:p><w:r><w:t>only this</w:t></w:r></w:p>`+
				"\n</w:body></w:document>")
		text, err := extract.WordDocument{}.Extract(path)
		require.NoError(t, err)
		assert.Equal(t, "only this", text)
	})
	t.Run("Should fail on an archive without a document body", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "doc.docx")
		writeArchive(t, path, "other.xml", `<x/>`)
		_, err := extract.WordDocument{}.Extract(path)
		assert.Error(t, err)
	})
	t.Run("Should fail on a file that is not a zip archive", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "doc.docx")
		require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))
		_, err := extract.WordDocument{}.Extract(path)
		assert.Error(t, err)
	})
}

func TestOpenDocumentText(t *testing.T) {
	t.Run("Should join paragraphs and headings with newlines", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "doc.odt")
		writeArchive(t, path, "content.xml",
			`<office:document-content`+
				` xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"`+
				` xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0">`+
				`<office:body><office:text>`+
				`<text:h>Heading</text:h>`+
				`<text:p>Hello from odt</text:p>`+
				`<text:p>With<text:s/>a space</text:p>`+
				`</office:text></office:body></office:document-content>`)
		text, err := extract.OpenDocumentText{}.Extract(path)
		require.NoError(t, err)
		assert.Equal(t, "Heading\nHello from odt\nWith a space", text)
	})
	t.Run("Should fail on an archive without content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "doc.odt")
		writeArchive(t, path, "meta.xml", `<x/>`)
		_, err := extract.OpenDocumentText{}.Extract(path)
		assert.Error(t, err)
	})
}
