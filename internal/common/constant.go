// Package common contains shared constants used across the catalog client.
package common

// Outbound HTTP header names attached by the API client.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	BearerPrefix            = "Bearer "
)

// Session keys in the local metadata store. Both are cleared together.
const (
	AccessTokenKey = "access_token"
	UserKey        = "user"
)

// MaxImageSize is the client-side ceiling for image uploads (10 MiB).
const MaxImageSize int64 = 10 * 1024 * 1024

// DefaultExportFileName is used when the caller does not name the PDF.
const DefaultExportFileName = "catalog.pdf"
