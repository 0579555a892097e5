// Package upload holds the pure logic behind the image picker: file checks,
// the file-info line and the cosmetic progress indicator.
package upload

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/plantdoc/plantdoc-ui/internal/ui/model"
)

var (
	// ErrFileTooLarge is returned for files over the configured size cap.
	ErrFileTooLarge = errors.New("file too large")
	// ErrInvalidType is returned for MIME types outside the allowed image set.
	ErrInvalidType = errors.New("invalid file type")
	// ErrNoFile is returned when the form is submitted without a selection.
	ErrNoFile = errors.New("no file selected")
)

var alertText = map[error]string{
	ErrFileTooLarge: "File size too large. Please select a file under 16MB.",
	ErrInvalidType:  "Invalid file type. Please select a JPG, PNG, or GIF image.",
	ErrNoFile:       "Please select an image file.",
}

// AlertText returns the user-facing alert for a validation error.
func AlertText(err error) string {
	for sentinel, text := range alertText {
		if errors.Is(err, sentinel) {
			return text
		}
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// Validator checks picker selections against the client configuration.
type Validator struct {
	maxBytes int64
	allowed  map[string]struct{}
}

// NewValidator builds a Validator from cfg, applying defaults for unset fields.
func NewValidator(cfg model.ClientConfig) *Validator {
	cfg = cfg.Normalize()
	allowed := make(map[string]struct{}, len(cfg.AllowedTypes))
	for _, t := range cfg.AllowedTypes {
		allowed[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}
	return &Validator{maxBytes: cfg.MaxUploadBytes, allowed: allowed}
}

// Validate reports why file cannot be uploaded, or nil when it is acceptable.
// Size is checked before type.
func (v *Validator) Validate(file model.SelectedFile) error {
	if file.SizeBytes > v.maxBytes {
		return ErrFileTooLarge
	}
	if _, ok := v.allowed[strings.ToLower(file.MimeType)]; !ok {
		return ErrInvalidType
	}
	return nil
}

// CheckSubmission gates the upload form on a selected file.
func CheckSubmission(hasFile bool) error {
	if !hasFile {
		return ErrNoFile
	}
	return nil
}

// FormatSizeMB renders a byte count in MiB with two decimals, e.g. "2.50 MB".
func FormatSizeMB(sizeBytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(sizeBytes)/1024/1024)
}

// FileInfoClass is the class list of the info line shown under the picker.
const FileInfoClass = "text-muted file-info d-block mt-1"

// FileInfoMarkup renders the inner HTML of the file-info line.
func FileInfoMarkup(file model.SelectedFile) string {
	return `<i class="fas fa-file-image"></i> ` + html.EscapeString(file.Name) + " (" + FormatSizeMB(file.SizeBytes) + ")"
}
