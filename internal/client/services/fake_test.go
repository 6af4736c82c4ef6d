package services

import (
	"context"
	"io"
	"sync"

	"github.com/dmitrijs2005/dessertcatalog/internal/client/client"
	"github.com/dmitrijs2005/dessertcatalog/internal/client/models"
	"github.com/dmitrijs2005/dessertcatalog/internal/client/session"
)

// fakeClient implements client.Client. Each method records its call and
// returns the configured result; Login and Logout drive the session store
// the way HTTPClient does.
type fakeClient struct {
	mu    sync.Mutex
	calls map[string]int
	store session.Store

	desserts   []models.Dessert
	dessert    *models.Dessert
	categories []string
	user       *models.User
	auth       *models.AuthResponse
	profile    *models.ProfileResponse
	users      *models.UserList
	logs       *models.ActivityLogPage
	logEntry   *models.ActivityLog
	summary    *models.LogSummary
	uploaded   *models.UploadedImage
	pdf        []byte
	err        error
	errFor     map[string]error

	lastCreds    models.Credentials
	lastReg      models.Registration
	lastPatch    models.DessertPatch
	lastExport   models.ExportRequest
	lastUpload   []byte
	lastFilename string
	lastLogs     models.LogFilter
}

var _ client.Client = (*fakeClient)(nil)

func newFakeClient() *fakeClient {
	return &fakeClient{calls: map[string]int{}, errFor: map[string]error{}, store: session.NewMemoryStore()}
}

func (f *fakeClient) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	if err, ok := f.errFor[name]; ok {
		return err
	}
	return f.err
}

func (f *fakeClient) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeClient) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeClient) ListDesserts(context.Context, models.DessertQuery) ([]models.Dessert, error) {
	return f.desserts, f.record("ListDesserts")
}

func (f *fakeClient) GetDessert(context.Context, int64) (*models.Dessert, error) {
	return f.dessert, f.record("GetDessert")
}

func (f *fakeClient) ListCategories(context.Context) ([]string, error) {
	return f.categories, f.record("ListCategories")
}

func (f *fakeClient) CreateDessert(context.Context, models.DessertInput) (*models.Dessert, error) {
	return f.dessert, f.record("CreateDessert")
}

func (f *fakeClient) UpdateDessert(_ context.Context, _ int64, p models.DessertPatch) (*models.Dessert, error) {
	f.lastPatch = p
	return f.dessert, f.record("UpdateDessert")
}

func (f *fakeClient) DeleteDessert(context.Context, int64) error {
	return f.record("DeleteDessert")
}

func (f *fakeClient) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	f.lastCreds = creds
	if err := f.record("Login"); err != nil {
		return nil, err
	}
	if err := f.store.Save(ctx, f.auth.AccessToken, f.auth.User); err != nil {
		return nil, err
	}
	return f.auth, nil
}

func (f *fakeClient) Register(_ context.Context, reg models.Registration) (*models.User, error) {
	f.lastReg = reg
	return f.user, f.record("Register")
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.record("Logout")
	return f.store.Clear(ctx)
}

func (f *fakeClient) Me(context.Context) (*models.User, error) {
	if err := f.record("Me"); err != nil {
		return nil, err
	}
	return f.user, nil
}

func (f *fakeClient) UpdateEmail(context.Context, string) (*models.ProfileResponse, error) {
	return f.profile, f.record("UpdateEmail")
}

func (f *fakeClient) UpdatePassword(context.Context, models.PasswordChange) (*models.ProfileResponse, error) {
	return f.profile, f.record("UpdatePassword")
}

func (f *fakeClient) UpdateCompanyProfile(context.Context, models.CompanyProfile) (*models.ProfileResponse, error) {
	return f.profile, f.record("UpdateCompanyProfile")
}

func (f *fakeClient) ListUsers(context.Context, models.UserQuery) (*models.UserList, error) {
	return f.users, f.record("ListUsers")
}

func (f *fakeClient) GetUser(context.Context, int64) (*models.User, error) {
	return f.user, f.record("GetUser")
}

func (f *fakeClient) UpdateUser(context.Context, int64, models.UserUpdate) (*models.User, error) {
	return f.user, f.record("UpdateUser")
}

func (f *fakeClient) DeleteUser(context.Context, int64) error {
	return f.record("DeleteUser")
}

func (f *fakeClient) ListLogs(_ context.Context, flt models.LogFilter) (*models.ActivityLogPage, error) {
	f.lastLogs = flt
	return f.logs, f.record("ListLogs")
}

func (f *fakeClient) GetLog(context.Context, int64) (*models.ActivityLog, error) {
	return f.logEntry, f.record("GetLog")
}

func (f *fakeClient) LogSummary(context.Context, int) (*models.LogSummary, error) {
	return f.summary, f.record("LogSummary")
}

func (f *fakeClient) UploadImage(_ context.Context, filename string, r io.Reader) (*models.UploadedImage, error) {
	f.lastFilename = filename
	f.lastUpload, _ = io.ReadAll(r)
	return f.uploaded, f.record("UploadImage")
}

func (f *fakeClient) DeleteImage(_ context.Context, filename string) error {
	f.lastFilename = filename
	return f.record("DeleteImage")
}

func (f *fakeClient) ExportPDF(_ context.Context, req models.ExportRequest) ([]byte, error) {
	f.lastExport = req
	return f.pdf, f.record("ExportPDF")
}
