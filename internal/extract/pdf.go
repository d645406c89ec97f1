package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDF extracts the text of every page of a PDF document. Pages whose text
// cannot be decoded contribute an empty line so the rest of the document
// still gets indexed.
type PDF struct{}

func (PDF) Extract(path string) (text string, err error) {
	// The parser panics on some malformed files; turn that into an error so
	// one bad document cannot take down a whole indexing run.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var pages []string
	for n := 1; n <= reader.NumPage(); n++ {
		page := reader.Page(n)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, content)
	}
	return strings.Join(pages, "\n"), nil
}
