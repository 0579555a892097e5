package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantdoc/plantdoc-ui/internal/config"
	"github.com/plantdoc/plantdoc-ui/internal/ui/model"
	"github.com/plantdoc/plantdoc-ui/logging"
)

var templatesDir = filepath.Join("..", "..", "..", "ui", "templates")

func newTestServer(t *testing.T, backendURL string) (*server, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.App.Templates = templatesDir
	cfg.App.Assets = t.TempDir()
	cfg.Backend.URL = backendURL

	var logs bytes.Buffer
	srv, err := newServer(Options{Config: cfg, Logger: logging.New("test", logging.DEBUG, &logs)})
	require.NoError(t, err)
	return srv, &logs
}

func multipartUpload(t *testing.T, name string, content []byte, location string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, _ = part.Write(content)
	require.NoError(t, writer.WriteField("location", location))
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestIndexSatisfiesPageContract(t *testing.T) {
	srv, _ := newTestServer(t, "")
	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	missing, err := missingContractIDs(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	assert.Empty(t, missing)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	accept, _ := doc.Find("#file").Attr("accept")
	assert.Equal(t, "image/jpeg,image/jpg,image/png,image/gif", accept)
	assert.Equal(t, 1, doc.Find("#loadingDiv .progress-bar").Length())
	assert.Contains(t, doc.Find(".card-body p.text-muted").First().Text(), "16.00 MB")
}

func TestMissingContractIDs(t *testing.T) {
	page := `<html><body><form id="uploadForm"><input id="file"></form></body></html>`
	missing, err := missingContractIDs(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, []string{"submitBtn", "loadingDiv", "location", "preview", "imagePreview"}, missing)
}

func TestCheckPageContractLogsNothingForIndex(t *testing.T) {
	srv, logs := newTestServer(t, "")
	srv.checkPageContract()
	assert.NotContains(t, logs.String(), "missing client element")
}

func TestAboutPage(t *testing.T) {
	srv, _ := newTestServer(t, "")
	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/about", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "not configured")
}

func TestClientConfigEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, "")
	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ui-config.json", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var got model.ClientConfig
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, model.DefaultClientConfig(), got)
}

func TestAnalyzeWithoutBackend(t *testing.T) {
	srv, _ := newTestServer(t, "")
	body, ct := multipartUpload(t, "leaf.jpg", []byte("x"), "")
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "not configured")
}

func TestAnalyzeIsProxiedToBackend(t *testing.T) {
	var forwardedID, location string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		forwardedID = r.Header.Get(logging.RequestIDHeader)
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		location = r.FormValue("location")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"predicted_class":"Apple___healthy","confidence":0.97}`)
	}))
	defer backend.Close()

	srv, _ := newTestServer(t, backend.URL)
	body, ct := multipartUpload(t, "leaf.jpg", []byte("jpeg"), "Tokyo")
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Apple___healthy")
	assert.Equal(t, "Tokyo", location)
	assert.NotEmpty(t, forwardedID)
	assert.Equal(t, forwardedID, rr.Header().Get(logging.RequestIDHeader))
}

func TestResultsAreProxied(t *testing.T) {
	var path string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = io.WriteString(w, "<html>result</html>")
	}))
	defer backend.Close()

	srv, _ := newTestServer(t, backend.URL)
	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/results/42", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "/results/42", path)
}

func TestOversizedUploadRejected(t *testing.T) {
	called := false
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer backend.Close()

	srv, _ := newTestServer(t, backend.URL)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader("x"))
	req.ContentLength = model.MaxUploadBytes * 2
	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.False(t, called)
}

func TestBackendDownReturnsBadGateway(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := backend.URL
	backend.Close()

	srv, logs := newTestServer(t, url)
	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/history", nil))

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, logs.String(), "backend request failed")
}

func TestAssetHandler(t *testing.T) {
	srv, _ := newTestServer(t, "")
	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/main.wasm", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	require.NoError(t, os.WriteFile(filepath.Join(srv.assetsDir, "main.wasm"), []byte("\x00asm"), 0o644))
	rr = httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/main.wasm", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/wasm", rr.Header().Get("Content-Type"))
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t, "http://127.0.0.1:5000")
	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok","backend":true}`, rr.Body.String())
}

func TestTypeLabel(t *testing.T) {
	assert.Equal(t, "JPEG", typeLabel("image/jpeg"))
	assert.Equal(t, "PNG", typeLabel("png"))
}
