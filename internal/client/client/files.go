package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"

	"github.com/dmitrijs2005/dessertcatalog/internal/client/models"
)

// UploadImage posts r as the multipart field "file". Size and type checks
// are the caller's job; the facade sends whatever it is given.
func (c *HTTPClient) UploadImage(ctx context.Context, filename string, r io.Reader) (*models.UploadedImage, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filepath.Base(filename)))
	ct := mime.TypeByExtension(filepath.Ext(filename))
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)

	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}

	resp, err := c.send(ctx, http.MethodPost, "/upload/image", nil, &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out models.UploadedImage
	if err := decodeJSON(resp.Body, &out); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	return &out, nil
}

func (c *HTTPClient) DeleteImage(ctx context.Context, filename string) error {
	return c.doJSON(ctx, http.MethodDelete, "/upload/image/"+url.PathEscape(filename), nil, nil, nil)
}

// ExportPDF returns the generated document exactly as the service sent it.
func (c *HTTPClient) ExportPDF(ctx context.Context, req models.ExportRequest) ([]byte, error) {
	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, http.MethodPost, "/pdf/export", nil, body, "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read pdf: %w", ErrUnavailable, err)
	}
	return data, nil
}
