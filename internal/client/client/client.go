package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/dessertcatalog/internal/client/models"
)

// Client is the transport-agnostic contract of the catalog service.
type Client interface {
	ListDesserts(ctx context.Context, q models.DessertQuery) ([]models.Dessert, error)
	GetDessert(ctx context.Context, id int64) (*models.Dessert, error)
	ListCategories(ctx context.Context) ([]string, error)
	CreateDessert(ctx context.Context, in models.DessertInput) (*models.Dessert, error)
	UpdateDessert(ctx context.Context, id int64, patch models.DessertPatch) (*models.Dessert, error)
	DeleteDessert(ctx context.Context, id int64) error

	Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	Register(ctx context.Context, reg models.Registration) (*models.User, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.User, error)
	UpdateEmail(ctx context.Context, email string) (*models.ProfileResponse, error)
	UpdatePassword(ctx context.Context, change models.PasswordChange) (*models.ProfileResponse, error)
	UpdateCompanyProfile(ctx context.Context, profile models.CompanyProfile) (*models.ProfileResponse, error)

	ListUsers(ctx context.Context, q models.UserQuery) (*models.UserList, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error

	ListLogs(ctx context.Context, f models.LogFilter) (*models.ActivityLogPage, error)
	GetLog(ctx context.Context, id int64) (*models.ActivityLog, error)
	LogSummary(ctx context.Context, days int) (*models.LogSummary, error)

	UploadImage(ctx context.Context, filename string, r io.Reader) (*models.UploadedImage, error)
	DeleteImage(ctx context.Context, filename string) error

	ExportPDF(ctx context.Context, req models.ExportRequest) ([]byte, error)
}
