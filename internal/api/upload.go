package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// File is a named file part for a multipart upload (audio files, cover art).
type File struct {
	Field    string
	Filename string
	Reader   io.Reader
}

// Upload performs a multipart/form-data POST with the given form fields and
// file parts, decoding the JSON response into result.
func (c *Client) Upload(ctx context.Context, path string, fields map[string]string, files []File, result any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", key, err)
		}
	}

	for _, file := range files {
		part, err := writer.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return fmt.Errorf("failed to create form file %s: %w", file.Field, err)
		}
		if _, err := io.Copy(part, file.Reader); err != nil {
			return fmt.Errorf("failed to copy file %s: %w", file.Filename, err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return c.do(ctx, http.MethodPost, path, &buf, writer.FormDataContentType(), result)
}
