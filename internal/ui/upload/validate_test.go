package upload

import (
	"errors"
	"strings"
	"testing"

	"github.com/plantdoc/plantdoc-ui/internal/ui/model"
)

func TestValidateRejectsOversizedFiles(t *testing.T) {
	v := NewValidator(model.DefaultClientConfig())
	for _, size := range []int64{model.MaxUploadBytes + 1, 20 * 1024 * 1024, 1 << 40} {
		err := v.Validate(model.SelectedFile{Name: "leaf.jpg", SizeBytes: size, MimeType: "image/jpeg"})
		if !errors.Is(err, ErrFileTooLarge) {
			t.Fatalf("size %d: expected ErrFileTooLarge, got %v", size, err)
		}
	}
}

func TestValidateAcceptsExactLimit(t *testing.T) {
	v := NewValidator(model.DefaultClientConfig())
	err := v.Validate(model.SelectedFile{Name: "leaf.png", SizeBytes: model.MaxUploadBytes, MimeType: "image/png"})
	if err != nil {
		t.Fatalf("expected file at the limit to pass, got %v", err)
	}
}

func TestValidateRejectsUnknownTypes(t *testing.T) {
	v := NewValidator(model.DefaultClientConfig())
	for _, mime := range []string{"", "image/webp", "application/pdf", "text/plain", "image/svg+xml"} {
		err := v.Validate(model.SelectedFile{Name: "x", SizeBytes: 10, MimeType: mime})
		if !errors.Is(err, ErrInvalidType) {
			t.Fatalf("mime %q: expected ErrInvalidType, got %v", mime, err)
		}
	}
}

func TestValidateAcceptsImageTypes(t *testing.T) {
	v := NewValidator(model.DefaultClientConfig())
	for _, mime := range []string{"image/jpeg", "image/jpg", "image/png", "image/gif"} {
		if err := v.Validate(model.SelectedFile{Name: "x", SizeBytes: 10, MimeType: mime}); err != nil {
			t.Fatalf("mime %q: unexpected error %v", mime, err)
		}
	}
}

func TestValidateChecksSizeBeforeType(t *testing.T) {
	v := NewValidator(model.DefaultClientConfig())
	err := v.Validate(model.SelectedFile{SizeBytes: model.MaxUploadBytes * 2, MimeType: "text/plain"})
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected size error first, got %v", err)
	}
}

func TestValidateHonoursConfiguredLimits(t *testing.T) {
	v := NewValidator(model.ClientConfig{MaxUploadBytes: 100, AllowedTypes: []string{"image/webp"}})
	if err := v.Validate(model.SelectedFile{SizeBytes: 101, MimeType: "image/webp"}); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected configured cap to apply, got %v", err)
	}
	if err := v.Validate(model.SelectedFile{SizeBytes: 50, MimeType: "image/webp"}); err != nil {
		t.Fatalf("expected configured type to pass, got %v", err)
	}
}

func TestFormatSizeMB(t *testing.T) {
	cases := []struct {
		in  int64
		out string
	}{
		{in: 0, out: "0.00 MB"},
		{in: 2621440, out: "2.50 MB"},
		{in: 1024 * 1024, out: "1.00 MB"},
		{in: 16 * 1024 * 1024, out: "16.00 MB"},
	}
	for _, tc := range cases {
		if got := FormatSizeMB(tc.in); got != tc.out {
			t.Fatalf("FormatSizeMB(%d): expected %q got %q", tc.in, tc.out, got)
		}
	}
}

func TestFileInfoMarkupEscapesName(t *testing.T) {
	got := FileInfoMarkup(model.SelectedFile{Name: "<b>leaf</b>.jpg", SizeBytes: 2621440})
	if strings.Contains(got, "<b>") {
		t.Fatalf("expected file name to be escaped, got %q", got)
	}
	if !strings.HasSuffix(got, "(2.50 MB)") {
		t.Fatalf("expected size suffix, got %q", got)
	}
}

func TestCheckSubmission(t *testing.T) {
	if err := CheckSubmission(false); !errors.Is(err, ErrNoFile) {
		t.Fatalf("expected ErrNoFile, got %v", err)
	}
	if err := CheckSubmission(true); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got := AlertText(CheckSubmission(false)); got != "Please select an image file." {
		t.Fatalf("unexpected alert text %q", got)
	}
}
