package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/dessertcatalog/internal/client/models"
	"github.com/dmitrijs2005/dessertcatalog/internal/client/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*HTTPClient, *session.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	store := session.NewMemoryStore()
	return NewHTTPClient(srv.URL+"/api/", store), store
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestSend_AttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotID string
	c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotID = r.Header.Get("X-Request-ID")
		writeJSON(w, http.StatusOK, []string{})
	})
	require.NoError(t, store.Save(context.Background(), "tok-1", models.User{ID: 1}))

	_, err := c.ListCategories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-1", gotAuth)
	_, err = uuid.Parse(gotID)
	assert.NoError(t, err, "request id must be a uuid")
}

func TestSend_AnonymousHasNoAuthorization(t *testing.T) {
	var hadAuth bool
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		writeJSON(w, http.StatusOK, []models.Dessert{})
	})

	_, err := c.ListDesserts(context.Background(), models.DessertQuery{})
	require.NoError(t, err)
	assert.False(t, hadAuth)
}

func TestSend_UnauthorizedClearsSessionAndDropsHeader(t *testing.T) {
	var calls atomic.Int32
	var secondAuth atomic.Value
	c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
			return
		}
		secondAuth.Store(r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, []string{"Cakes"})
	})
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "stale", models.User{ID: 1, Username: "anna"}))

	_, err := c.Me(ctx)
	require.ErrorIs(t, err, ErrUnauthorized)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Could not validate credentials", apiErr.Detail)

	tok, _ := store.Token(ctx)
	assert.Empty(t, tok)
	u, _ := store.User(ctx)
	assert.Nil(t, u)

	cats, err := c.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cakes"}, cats)
	assert.Equal(t, "", secondAuth.Load())
}

func TestSend_StatusMapping(t *testing.T) {
	cases := []struct {
		status int
		body   string
		want   error
		detail string
	}{
		{http.StatusForbidden, `{"detail":"Not enough permissions"}`, ErrForbidden, "Not enough permissions"},
		{http.StatusNotFound, `{"detail":"Dessert not found"}`, ErrNotFound, "Dessert not found"},
		{http.StatusServiceUnavailable, ``, ErrUnavailable, ""},
		{http.StatusBadRequest, `{"detail":[{"loc":["body","title"],"msg":"field required"},{"loc":["body","price"],"msg":"must be >= 0"}]}`, nil, "title: field required; price: must be >= 0"},
		{http.StatusInternalServerError, `<html>boom</html>`, nil, ""},
	}

	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			})

			_, err := c.GetDessert(context.Background(), 1)
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, tc.detail, apiErr.Detail)
			if tc.want != nil {
				assert.ErrorIs(t, err, tc.want)
			} else {
				assert.False(t, errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrForbidden))
			}
			if tc.detail == "" {
				assert.Equal(t, http.StatusText(tc.status), apiErr.Message())
			} else {
				assert.Equal(t, tc.detail, apiErr.Message())
			}
		})
	}
}

func TestSend_TransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, session.NewMemoryStore())
	_, err := c.ListCategories(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestSend_TimeoutIsUnavailable(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := NewHTTPClient(srv.URL, session.NewMemoryStore(), WithTimeout(50*time.Millisecond))
	_, err := c.ListCategories(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

// stalledBody sends headers and the start of a JSON document, then hangs.
func stalledBody(t *testing.T, partial string) *httptest.Server {
	t.Helper()
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, partial)
		w.(http.Flusher).Flush()
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })
	return srv
}

func TestDoJSON_TimeoutWhileReadingBodyIsUnavailable(t *testing.T) {
	srv := stalledBody(t, `[{"id":1,`)

	c := NewHTTPClient(srv.URL, session.NewMemoryStore(), WithTimeout(50*time.Millisecond))
	_, err := c.ListDesserts(context.Background(), models.DessertQuery{})
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestUploadImage_TimeoutWhileReadingBodyIsUnavailable(t *testing.T) {
	srv := stalledBody(t, `{"url":`)

	c := NewHTTPClient(srv.URL, session.NewMemoryStore(), WithTimeout(50*time.Millisecond))
	_, err := c.UploadImage(context.Background(), "cake.png", strings.NewReader("png-bytes"))
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestDoJSON_MalformedBodyIsNotUnavailable(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":`)
	})

	_, err := c.ListCategories(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestListDesserts_QueryParameters(t *testing.T) {
	var got []string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/desserts/", r.URL.Path)
		got = append(got, r.URL.RawQuery)
		_, _ = io.WriteString(w, `null`)
	})
	ctx := context.Background()

	active := true
	out, err := c.ListDesserts(ctx, models.DessertQuery{IsActive: &active, Category: "Cakes", Search: "honey"})
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)

	_, err = c.ListDesserts(ctx, models.DessertQuery{})
	require.NoError(t, err)

	assert.Equal(t, []string{"category=Cakes&is_active=true&search=honey", ""}, got)
}

func TestUpdateDessert_SendsOnlySetFields(t *testing.T) {
	var body map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/desserts/42", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusOK, models.Dessert{ID: 42, Title: "Renamed", Category: "Cakes"})
	})

	title := "Renamed"
	inactive := false
	d, err := c.UpdateDessert(context.Background(), 42, models.DessertPatch{Title: &title, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", d.Title)
	assert.Equal(t, map[string]any{"title": "Renamed", "is_active": false}, body)
}

func TestDeleteDessert_NoContent(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})
	require.NoError(t, c.DeleteDessert(context.Background(), 3))
}

func TestLogin_SavesSession(t *testing.T) {
	c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login-json", r.URL.Path)
		var creds models.Credentials
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, models.Credentials{Username: "anna", Password: "secret1"}, creds)
		writeJSON(w, http.StatusOK, models.AuthResponse{AccessToken: "tok", TokenType: "bearer", User: models.User{ID: 5, Username: "anna"}})
	})
	ctx := context.Background()

	resp, err := c.Login(ctx, models.Credentials{Username: "anna", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "tok", resp.AccessToken)

	tok, _ := store.Token(ctx)
	assert.Equal(t, "tok", tok)
	u, _ := store.User(ctx)
	require.NotNil(t, u)
	assert.Equal(t, "anna", u.Username)

	require.NoError(t, c.Logout(ctx))
	tok, _ = store.Token(ctx)
	assert.Empty(t, tok)
}

func TestUpdateEmail_StoresReturnedUser(t *testing.T) {
	c, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/profile/email", r.URL.Path)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusOK, models.ProfileResponse{Message: "ok", User: models.User{ID: 5, Email: body["email"]}})
	})
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "tok", models.User{ID: 5, Email: "old@example.com"}))

	_, err := c.UpdateEmail(ctx, "new@example.com")
	require.NoError(t, err)

	u, _ := store.User(ctx)
	assert.Equal(t, "new@example.com", u.Email)
}

func TestListUsersAndLogs_QueryParameters(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch r.URL.Path {
		case "/api/users/":
			assert.Equal(t, "20", q.Get("skip"))
			assert.Equal(t, "10", q.Get("limit"))
			assert.Equal(t, "sweet", q.Get("search"))
			writeJSON(w, http.StatusOK, models.UserList{Users: []models.User{{ID: 1}}, Total: 21})
		case "/api/logs/":
			assert.Equal(t, "0", q.Get("skip"))
			assert.Equal(t, "7", q.Get("days"))
			assert.Equal(t, "create", q.Get("action"))
			assert.Equal(t, "dessert", q.Get("entity_type"))
			assert.False(t, q.Has("limit"))
			assert.False(t, q.Has("username"))
			writeJSON(w, http.StatusOK, map[string]any{"logs": []any{}, "total": 0})
		case "/api/logs/12":
			writeJSON(w, http.StatusOK, map[string]any{"id": 12, "action": "export", "username": "anna", "created_at": "2024-05-01T10:00:00"})
		case "/api/logs/stats/summary":
			assert.Equal(t, "30", q.Get("days"))
			writeJSON(w, http.StatusOK, models.LogSummary{PeriodDays: 30, TotalLogs: 4, Actions: map[string]int{"login": 4}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	ctx := context.Background()

	users, err := c.ListUsers(ctx, models.UserQuery{Skip: 20, Limit: 10, Search: "sweet"})
	require.NoError(t, err)
	assert.Equal(t, 21, users.Total)

	page, err := c.ListLogs(ctx, models.LogFilter{Days: 7, Action: "create", EntityType: "dessert"})
	require.NoError(t, err)
	assert.Zero(t, page.Total)

	entry, err := c.GetLog(ctx, 12)
	require.NoError(t, err)
	assert.Equal(t, int64(12), entry.ID)
	assert.Equal(t, "anna", *entry.Username)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), entry.CreatedAt.Time)

	sum, err := c.LogSummary(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Actions["login"])
}

func TestUploadImage_Multipart(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/upload/image", r.URL.Path)
		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)

		assert.Equal(t, "cake.png", hdr.Filename)
		assert.Equal(t, "image/png", hdr.Header.Get("Content-Type"))
		assert.Equal(t, "png-bytes", string(data))
		writeJSON(w, http.StatusOK, map[string]string{"url": "/static/images/abc.png", "filename": "abc.png", "original_filename": "cake.png"})
	})

	img, err := c.UploadImage(context.Background(), "/tmp/photos/cake.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, models.UploadedImage{URL: "/static/images/abc.png", Filename: "abc.png"}, *img)
}

func TestDeleteImage_EscapesName(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/upload/image/a%20b.png", r.URL.EscapedPath())
		writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
	})
	require.NoError(t, c.DeleteImage(context.Background(), "a b.png"))
}

func TestExportPDF_ReturnsBytesVerbatim(t *testing.T) {
	pdf := []byte("%PDF-1.4\x00\x01\xff binary")
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req models.ExportRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []int64{1, 2}, req.DessertIDs)
		assert.Equal(t, models.TemplateModern, req.Template)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(pdf)
	})

	got, err := c.ExportPDF(context.Background(), models.ExportRequest{DessertIDs: []int64{1, 2}, Template: models.TemplateModern})
	require.NoError(t, err)
	assert.Equal(t, pdf, got)
}

func TestReadDetail(t *testing.T) {
	for body, want := range map[string]string{
		``:                                  "",
		`not json`:                          "",
		`{"other":1}`:                       "",
		`{"detail":"plain"}`:                "plain",
		`{"detail":[{"loc":[],"msg":"x"}]}`: "x",
		`{"detail":{"code":7}}`:             `{"code":7}`,
	} {
		assert.Equal(t, want, readDetail(strings.NewReader(body)), body)
	}
}
