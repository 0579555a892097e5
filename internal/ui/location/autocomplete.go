// Package location implements the place-name autocomplete used by the upload
// form's location field.
package location

import (
	"html"
	"strings"

	"github.com/plantdoc/plantdoc-ui/internal/ui/model"
)

// Suggester filters a fixed list of place names.
type Suggester struct {
	places   []string
	lowered  []string
	minQuery int
	limit    int
}

// NewSuggester copies the place list out of cfg so later edits to the config
// cannot change suggestions.
func NewSuggester(cfg model.ClientConfig) *Suggester {
	cfg = cfg.Normalize()
	s := &Suggester{
		places:   append([]string(nil), cfg.Places...),
		lowered:  make([]string, len(cfg.Places)),
		minQuery: cfg.MinQueryLength,
		limit:    cfg.MaxSuggestions,
	}
	for i, p := range s.places {
		s.lowered[i] = strings.ToLower(p)
	}
	return s
}

// Active reports whether a query is long enough to trigger suggestions.
func (s *Suggester) Active(query string) bool {
	return len([]rune(query)) >= s.minQuery
}

// Suggest returns up to the configured limit of places containing query,
// case-insensitively, in list order. Inactive queries yield nil.
func (s *Suggester) Suggest(query string) []string {
	if !s.Active(query) {
		return nil
	}
	needle := strings.ToLower(query)
	var out []string
	for i, lowered := range s.lowered {
		if !strings.Contains(lowered, needle) {
			continue
		}
		out = append(out, s.places[i])
		if len(out) == s.limit {
			break
		}
	}
	return out
}

// OverlayClass is the class list of the suggestion dropdown.
const OverlayClass = "location-suggestions list-group position-absolute w-100"

// ItemClass is the class list of each suggestion button.
const ItemClass = "list-group-item list-group-item-action"

// OverlayMarkup renders the dropdown's inner HTML. Each button carries its
// place in data-place so the click handler does not need closures per item.
func OverlayMarkup(suggestions []string) string {
	var b strings.Builder
	for _, place := range suggestions {
		escaped := html.EscapeString(place)
		b.WriteString(`<button type="button" class="` + ItemClass + `" data-place="` + escaped + `">`)
		b.WriteString(escaped)
		b.WriteString(`</button>`)
	}
	return b.String()
}
