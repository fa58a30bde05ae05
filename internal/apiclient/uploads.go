package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// UploadResult is the stored location of an uploaded file.
type UploadResult struct {
	URL string `json:"url"`
}

// UploadImage sends a file as multipart form data and returns its public
// URL. The multipart body is buffered up front so the upload goes through
// the same authenticated send path - and the same refresh-and-replay flow -
// as every JSON request.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (*UploadResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("creating multipart field: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("buffering upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalizing multipart body: %w", err)
	}

	var result UploadResult
	if err := c.doAttempt(ctx, http.MethodPost, "/upload/image", buf.Bytes(), writer.FormDataContentType(), &result, 0); err != nil {
		return nil, fmt.Errorf("uploading %s: %w", filename, err)
	}
	return &result, nil
}
