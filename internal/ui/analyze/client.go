// Package analyze wraps the single multipart call to the analysis backend.
package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/plantdoc/plantdoc-ui/internal/ui/model"
)

// Endpoint is the backend path images are posted to.
const Endpoint = "/api/analyze"

// HTTPError reports a non-2xx response from the backend.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.Status)
}

// ErrorLogger receives failures before they are returned to the caller.
// *logging.Logger satisfies it, as does the browser console adapter.
type ErrorLogger interface {
	Error(category, message string, err error, fields map[string]any)
}

// Client posts images to the analysis backend.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     ErrorLogger
}

// Upload is the image being analysed.
type Upload struct {
	Name string
	Body io.Reader
}

// Analyze sends file and location as multipart fields "file" and "location"
// and returns the decoded JSON body. It does not retry or impose a timeout
// beyond what ctx carries.
func (c *Client) Analyze(ctx context.Context, file Upload, location string) (model.AnalysisResult, error) {
	result, err := c.analyze(ctx, file, location)
	if err != nil && c.Logger != nil {
		c.Logger.Error("analyze", "Analysis API error", err, map[string]any{
			"file":     file.Name,
			"location": location,
		})
	}
	return result, err
}

func (c *Client) analyze(ctx context.Context, file Upload, location string) (model.AnalysisResult, error) {
	if file.Body == nil {
		return nil, fmt.Errorf("analyze: no file provided")
	}
	body, contentType := multipartBody(file, location)

	endpoint := strings.TrimSuffix(strings.TrimSpace(c.BaseURL), "/") + Endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		body.Close()
		return nil, fmt.Errorf("analyze: build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		return nil, &HTTPError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var result model.AnalysisResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("analyze: decode response: %w", err)
	}
	return result, nil
}

// multipartBody streams the form through a pipe so large images are not
// buffered twice.
func multipartBody(file Upload, location string) (*io.PipeReader, string) {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)
	go func() {
		part, err := writer.CreateFormFile("file", file.Name)
		if err == nil {
			_, err = io.Copy(part, file.Body)
		}
		if err == nil {
			err = writer.WriteField("location", location)
		}
		if err == nil {
			err = writer.Close()
		}
		pw.CloseWithError(err)
	}()
	return pr, writer.FormDataContentType()
}
