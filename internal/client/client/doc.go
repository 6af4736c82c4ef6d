// Package client talks to the dessert catalog REST service.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering
//     desserts, authentication and profile, admin users, activity logs,
//     image upload and PDF export.
//  2. An HTTP implementation (see HTTPClient) that attaches the bearer token
//     from an injected session.Store, tags every request with an
//     X-Request-ID, traces through an otelhttp transport, and maps error
//     responses to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     CLI's session database, applying embedded goose migrations.
//
// # Sessions
//
// A successful Login saves the token and user; Logout and every 401
// response clear both. There is no token refresh: after a 401 the caller
// must log in again.
//
// # Error Handling
//
// Match with errors.Is: ErrUnauthorized, ErrForbidden, ErrNotFound,
// ErrUnavailable. Other failures surface as *APIError carrying the HTTP
// status and the server's detail message.
package client
