package extract

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DOCX and ODT are both zip archives holding the document body as XML. The
// two extractors share one paragraph walker and differ only in the archive
// member they read and in where character data lives: WordprocessingML keeps
// text inside <w:t> runs, OpenDocument keeps it directly inside <text:p>.

// WordDocument extracts the paragraph text of a .docx file.
type WordDocument struct{}

func (WordDocument) Extract(path string) (string, error) {
	return zipXMLText(path, "word/document.xml", true)
}

// OpenDocumentText extracts the paragraph text of a .odt file.
type OpenDocumentText struct{}

func (OpenDocumentText) Extract(path string) (string, error) {
	return zipXMLText(path, "content.xml", false)
}

func zipXMLText(path, member string, textRunsOnly bool) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", err
	}
	defer archive.Close()

	for _, entry := range archive.File {
		if entry.Name != member {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()
		return paragraphText(rc, textRunsOnly)
	}
	return "", fmt.Errorf("no %s entry in archive", member)
}

// paragraphText streams the XML body and joins paragraphs with newlines.
// With textRunsOnly set, character data counts only inside <t> elements.
func paragraphText(r io.Reader, textRunsOnly bool) (string, error) {
	dec := xml.NewDecoder(r)
	var out strings.Builder
	inRun := 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inRun++
			case "tab":
				out.WriteByte('\t')
			case "s":
				if !textRunsOnly {
					out.WriteByte(' ')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				if inRun > 0 {
					inRun--
				}
			case "p", "h":
				out.WriteByte('\n')
			}
		case xml.CharData:
			if !textRunsOnly || inRun > 0 {
				out.Write(t)
			}
		}
	}
	return strings.TrimRight(out.String(), "\n"), nil
}
