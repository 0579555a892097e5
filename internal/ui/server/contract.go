package server

import (
	"bytes"
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"

	"github.com/plantdoc/plantdoc-ui/internal/ui/model"
)

// missingContractIDs parses an HTML page and returns the page-contract
// element IDs it lacks, in contract order.
func missingContractIDs(page io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	var missing []string
	for _, id := range model.PageContractIDs {
		if doc.Find("#"+id).Length() == 0 {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// checkPageContract renders the index page and warns about every element the
// client script expects but will not find. Missing elements only disable
// their feature in the browser, so this never fails startup.
func (s *server) checkPageContract() {
	tmpl, ok := s.templates["index"]
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "index", s.indexData()); err != nil {
		s.logger.Error("general", "render index for contract check", err, nil)
		return
	}
	missing, err := missingContractIDs(&buf)
	if err != nil {
		s.logger.Error("general", "page contract check", err, nil)
		return
	}
	for _, id := range missing {
		s.logger.Warn("general", "index page missing client element", map[string]any{"id": id})
	}
}
