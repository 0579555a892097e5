// Package toast renders transient notification banners.
package toast

import (
	"html"
	"strings"

	"github.com/google/uuid"

	"github.com/plantdoc/plantdoc-ui/internal/ui/model"
)

// Toast is a rendered notification ready to be attached to the page.
type Toast struct {
	ID        string
	ClassName string
	Markup    string
}

// Style holds the inline style applied to every toast element.
var Style = map[string]string{
	"top":      "20px",
	"right":    "20px",
	"zIndex":   "9999",
	"minWidth": "300px",
}

// New builds a toast for msg. An empty severity falls back to info.
func New(msg model.ToastMessage) Toast {
	severity := msg.Severity
	if strings.TrimSpace(string(severity)) == "" {
		severity = model.SeverityInfo
	}
	return Toast{
		ID:        "toast-" + uuid.NewString(),
		ClassName: "alert alert-" + string(severity) + " alert-dismissible fade show position-fixed",
		Markup:    html.EscapeString(msg.Text) + `<button type="button" class="btn-close" data-bs-dismiss="alert"></button>`,
	}
}

// Info is shorthand for an info-level toast.
func Info(text string) Toast {
	return New(model.ToastMessage{Text: text, Severity: model.SeverityInfo})
}

// Success is shorthand for a success-level toast.
func Success(text string) Toast {
	return New(model.ToastMessage{Text: text, Severity: model.SeveritySuccess})
}
