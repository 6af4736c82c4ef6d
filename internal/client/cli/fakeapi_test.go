package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/dessertcatalog/internal/client/config"
	"github.com/dmitrijs2005/dessertcatalog/internal/client/models"
	"github.com/dmitrijs2005/dessertcatalog/internal/client/session"
	"github.com/dmitrijs2005/dessertcatalog/internal/logging"
)

const (
	fakeToken    = "tok-anna"
	fakePassword = "secret1"
)

func ptr[T any](v T) *T { return &v }

var annaUser = models.User{
	ID:             7,
	Username:       "anna",
	Email:          "anna@example.com",
	IsActive:       true,
	IsAdmin:        true,
	CompanyName:    ptr("Sweet Co"),
	ManagerContact: ptr("+1 555 0100"),
}

// fakeAPI is an in-memory stand-in for the catalog REST service.
type fakeAPI struct {
	mu       sync.Mutex
	desserts []models.Dessert
	requests []string
	bodies   map[string][]byte
	exports  []models.ExportRequest
	// expired answers 401 to everything except login.
	expired bool
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	api := &fakeAPI{
		bodies: map[string][]byte{},
		desserts: []models.Dessert{
			{ID: 1, Title: "Chocolate Cake", Category: "Cakes, Chocolate", Price: ptr(4.5), Weight: ptr("120 g"), IsActive: true},
			{ID: 2, Title: "Oat Cookie", Category: "Cookies", Price: ptr(1.2), IsActive: true},
			{ID: 3, Title: "Lemon Tart", Category: "Tarts", Description: ptr("with chocolate glaze"), ImageURL: ptr("uploads/tart.png")},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login-json", api.login)
	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var reg models.Registration
		_ = json.NewDecoder(r.Body).Decode(&reg)
		writeJSON(w, http.StatusCreated, models.User{ID: 8, Username: reg.Username, Email: reg.Email, IsActive: true})
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, annaUser)
	})
	mux.HandleFunc("PUT /api/auth/profile/company", func(w http.ResponseWriter, r *http.Request) {
		var p models.CompanyProfile
		_ = json.Unmarshal(api.body(r), &p)
		u := annaUser
		if p.CompanyName != nil {
			u.CompanyName = p.CompanyName
		}
		writeJSON(w, http.StatusOK, models.ProfileResponse{Message: "ok", User: u})
	})
	mux.HandleFunc("GET /api/desserts/{$}", func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		defer api.mu.Unlock()
		writeJSON(w, http.StatusOK, api.desserts)
	})
	mux.HandleFunc("GET /api/desserts/categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []string{"Cakes", "Chocolate", "Cookies", "Tarts"})
	})
	mux.HandleFunc("GET /api/desserts/{id}", func(w http.ResponseWriter, r *http.Request) {
		d, ok := api.find(r.PathValue("id"))
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Dessert not found"})
			return
		}
		writeJSON(w, http.StatusOK, d)
	})
	mux.HandleFunc("POST /api/desserts/{$}", func(w http.ResponseWriter, r *http.Request) {
		var in models.DessertInput
		_ = json.Unmarshal(api.body(r), &in)
		writeJSON(w, http.StatusCreated, models.Dessert{ID: 100, Title: in.Title, Category: in.Category, IsActive: in.IsActive})
	})
	mux.HandleFunc("PUT /api/desserts/{id}", func(w http.ResponseWriter, r *http.Request) {
		d, ok := api.find(r.PathValue("id"))
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Dessert not found"})
			return
		}
		var p models.DessertPatch
		_ = json.Unmarshal(api.body(r), &p)
		if p.IsActive != nil {
			d.IsActive = *p.IsActive
		}
		writeJSON(w, http.StatusOK, d)
	})
	mux.HandleFunc("DELETE /api/desserts/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /api/pdf/export", func(w http.ResponseWriter, r *http.Request) {
		var req models.ExportRequest
		_ = json.Unmarshal(api.body(r), &req)
		api.mu.Lock()
		api.exports = append(api.exports, req)
		api.mu.Unlock()
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 fake"))
	})
	mux.HandleFunc("GET /api/users/{$}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.UserList{Users: []models.User{annaUser}, Total: 1})
	})
	mux.HandleFunc("GET /api/logs/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "12" {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Log not found"})
			return
		}
		writeJSON(w, http.StatusOK, models.ActivityLog{
			ID:         12,
			Username:   ptr("anna"),
			Action:     "export",
			EntityType: ptr("dessert"),
			EntityID:   ptr(int64(3)),
			IPAddress:  ptr("10.0.0.5"),
		})
	})
	mux.HandleFunc("GET /api/logs/stats/summary", func(w http.ResponseWriter, r *http.Request) {
		days, _ := strconv.Atoi(r.URL.Query().Get("days"))
		writeJSON(w, http.StatusOK, models.LogSummary{
			PeriodDays: days,
			TotalLogs:  5,
			Actions:    map[string]int{"login": 3, "export": 2},
			Entities:   map[string]int{"dessert": 2},
			TopUsers:   []models.UserActivity{{Username: "anna", Count: 5}},
		})
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		api.requests = append(api.requests, r.Method+" "+r.URL.Path+queryPart(r))
		expired := api.expired
		api.mu.Unlock()

		if r.URL.Path != "/api/auth/login-json" {
			if expired || (r.Header.Get("Authorization") != "" && r.Header.Get("Authorization") != "Bearer "+fakeToken) {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
				return
			}
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return api, srv
}

func queryPart(r *http.Request) string {
	if r.URL.RawQuery == "" {
		return ""
	}
	return "?" + r.URL.RawQuery
}

func (api *fakeAPI) login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	_ = json.NewDecoder(r.Body).Decode(&creds)
	if creds.Username != "anna" || creds.Password != fakePassword {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect username or password"})
		return
	}
	writeJSON(w, http.StatusOK, models.AuthResponse{AccessToken: fakeToken, TokenType: "bearer", User: annaUser})
}

func (api *fakeAPI) find(id string) (models.Dessert, bool) {
	api.mu.Lock()
	defer api.mu.Unlock()
	for _, d := range api.desserts {
		if strconv.FormatInt(d.ID, 10) == id {
			return d, true
		}
	}
	return models.Dessert{}, false
}

func (api *fakeAPI) body(r *http.Request) []byte {
	b, _ := io.ReadAll(r.Body)
	api.mu.Lock()
	api.bodies[r.Method+" "+r.URL.Path] = b
	api.mu.Unlock()
	return b
}

func (api *fakeAPI) sent(prefix string) []string {
	api.mu.Lock()
	defer api.mu.Unlock()
	var out []string
	for _, r := range api.requests {
		if strings.HasPrefix(r, prefix) {
			out = append(out, r)
		}
	}
	return out
}

func (api *fakeAPI) bodyOf(key string) string {
	api.mu.Lock()
	defer api.mu.Unlock()
	return string(api.bodies[key])
}

func (api *fakeAPI) expire() {
	api.mu.Lock()
	api.expired = true
	api.mu.Unlock()
}

func (api *fakeAPI) lastExport() (models.ExportRequest, bool) {
	api.mu.Lock()
	defer api.mu.Unlock()
	if len(api.exports) == 0 {
		return models.ExportRequest{}, false
	}
	return api.exports[len(api.exports)-1], true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type testApp struct {
	*App
	store  *session.MemoryStore
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestApp wires an App to srv with an in-memory session. Passwords are
// read from input like any other line.
func newTestApp(t *testing.T, srv *httptest.Server, input string) *testApp {
	t.Helper()
	old := isTerminal
	t.Cleanup(func() { isTerminal = old })
	isTerminal = func(int) bool { return false }

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.BaseURL = srv.URL + "/api"
	cfg.ExportDir = t.TempDir()
	cfg.CategoriesCacheTTL = 0

	store := session.NewMemoryStore()
	app := newApp(cfg, store, logging.NewDiscardLogger())

	ta := &testApp{App: app, store: store, stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	app.out = ta.stdout
	app.errOut = ta.stderr
	app.reader = bufio.NewReader(strings.NewReader(input))
	return ta
}

func (ta *testApp) loginAsAnna(t *testing.T) {
	t.Helper()
	if err := ta.store.Save(context.Background(), fakeToken, annaUser); err != nil {
		t.Fatal(err)
	}
}
