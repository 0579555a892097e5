package model

import "time"

// SelectedFile describes the file currently chosen in the upload picker.
type SelectedFile struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size"`
	MimeType  string `json:"type"`
}

// Severity selects the alert style of a toast notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// ToastMessage is a transient notification shown in the page corner.
type ToastMessage struct {
	Text     string   `json:"text"`
	Severity Severity `json:"severity"`
}

// DarkModeStorageKey identifies the localStorage entry for the dark-mode preference.
const DarkModeStorageKey = "darkMode"

// Element identifiers the upload page must expose for each feature to activate.
const (
	FileInputID      = "file"
	UploadFormID     = "uploadForm"
	SubmitButtonID   = "submitBtn"
	LoadingID        = "loadingDiv"
	LocationInputID  = "location"
	PreviewImageID   = "preview"
	PreviewWrapperID = "imagePreview"
)

// PageContractIDs lists every element identifier the client script looks up.
var PageContractIDs = []string{
	FileInputID,
	UploadFormID,
	SubmitButtonID,
	LoadingID,
	LocationInputID,
	PreviewImageID,
	PreviewWrapperID,
}

// ClientConfig carries the tunables the browser client needs. The page server
// publishes it at /ui-config.json; the client falls back to DefaultClientConfig.
type ClientConfig struct {
	MaxUploadBytes  int64    `json:"maxUploadBytes" yaml:"max_upload_bytes"`
	AllowedTypes    []string `json:"allowedTypes" yaml:"allowed_types"`
	Places          []string `json:"places" yaml:"places"`
	MinQueryLength  int      `json:"minQueryLength" yaml:"min_query_length"`
	MaxSuggestions  int      `json:"maxSuggestions" yaml:"max_suggestions"`
	ShareText       string   `json:"shareText" yaml:"share_text"`
	ToastLifetimeMS int      `json:"toastLifetimeMs" yaml:"toast_lifetime_ms"`
}

// MaxUploadBytes mirrors the server's 16 MiB request cap.
const MaxUploadBytes int64 = 16 * 1024 * 1024

// AllowedImageTypes are the MIME types the picker accepts.
var AllowedImageTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/gif"}

// CommonPlaces seeds the location autocomplete.
var CommonPlaces = []string{
	"New York", "Los Angeles", "Chicago", "Houston", "Phoenix",
	"Philadelphia", "San Antonio", "San Diego", "Dallas", "San Jose",
	"Austin", "Jacksonville", "Fort Worth", "Columbus", "Charlotte",
	"London", "Paris", "Tokyo", "Mumbai", "Delhi", "Sydney", "Toronto",
}

// DefaultShareText accompanies shared result links.
const DefaultShareText = "Check out my plant disease analysis result!"

// DefaultToastLifetime is how long a toast stays attached.
const DefaultToastLifetime = 3 * time.Second

// DefaultClientConfig returns a fresh copy of the built-in client settings.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		MaxUploadBytes:  MaxUploadBytes,
		AllowedTypes:    append([]string(nil), AllowedImageTypes...),
		Places:          append([]string(nil), CommonPlaces...),
		MinQueryLength:  2,
		MaxSuggestions:  5,
		ShareText:       DefaultShareText,
		ToastLifetimeMS: int(DefaultToastLifetime / time.Millisecond),
	}
}

// Normalize fills zero-valued fields from DefaultClientConfig.
func (c ClientConfig) Normalize() ClientConfig {
	def := DefaultClientConfig()
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = def.MaxUploadBytes
	}
	if len(c.AllowedTypes) == 0 {
		c.AllowedTypes = def.AllowedTypes
	}
	if len(c.Places) == 0 {
		c.Places = def.Places
	}
	if c.MinQueryLength <= 0 {
		c.MinQueryLength = def.MinQueryLength
	}
	if c.MaxSuggestions <= 0 {
		c.MaxSuggestions = def.MaxSuggestions
	}
	if c.ShareText == "" {
		c.ShareText = def.ShareText
	}
	if c.ToastLifetimeMS <= 0 {
		c.ToastLifetimeMS = def.ToastLifetimeMS
	}
	return c
}

// ToastLifetime converts ToastLifetimeMS to a duration.
func (c ClientConfig) ToastLifetime() time.Duration {
	return time.Duration(c.ToastLifetimeMS) * time.Millisecond
}

// AnalysisResult is the JSON object returned by the analysis backend. Only a
// handful of keys are interpreted by the client; the rest is passed through.
type AnalysisResult map[string]any

// PredictedClass returns the predicted_class field, if present.
func (r AnalysisResult) PredictedClass() string {
	v, _ := r["predicted_class"].(string)
	return v
}

// Confidence returns the confidence field, or 0 when missing.
func (r AnalysisResult) Confidence() float64 {
	v, _ := r["confidence"].(float64)
	return v
}

// Location returns the location the backend echoed back.
func (r AnalysisResult) Location() string {
	v, _ := r["location"].(string)
	return v
}

// ErrorResponse is the JSON error body written by the page server.
type ErrorResponse struct {
	Error string `json:"error"`
}
