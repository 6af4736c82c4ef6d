package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/dessertcatalog/internal/client/client"
	"github.com/dmitrijs2005/dessertcatalog/internal/client/models"
)

// UserService manages accounts. Every call needs an admin session; the
// server enforces that, not the client.
type UserService interface {
	List(ctx context.Context, q models.UserQuery) (*models.UserList, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	client client.Client
}

func NewUserService(c client.Client) UserService {
	return &userService{client: c}
}

func (s *userService) List(ctx context.Context, q models.UserQuery) (*models.UserList, error) {
	if err := models.Validate(q); err != nil {
		return nil, err
	}
	out, err := s.client.ListUsers(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.client.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

func (s *userService) Update(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error) {
	if err := models.Validate(upd); err != nil {
		return nil, err
	}
	u, err := s.client.UpdateUser(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	return u, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if err := s.client.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

// LogService reads the activity log (admin only).
type LogService interface {
	List(ctx context.Context, f models.LogFilter) (*models.ActivityLogPage, error)
	Get(ctx context.Context, id int64) (*models.ActivityLog, error)
	Summary(ctx context.Context, days int) (*models.LogSummary, error)
}

type logService struct {
	client client.Client
}

func NewLogService(c client.Client) LogService {
	return &logService{client: c}
}

func (s *logService) List(ctx context.Context, f models.LogFilter) (*models.ActivityLogPage, error) {
	if err := models.Validate(f); err != nil {
		return nil, err
	}
	out, err := s.client.ListLogs(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	return out, nil
}

func (s *logService) Get(ctx context.Context, id int64) (*models.ActivityLog, error) {
	out, err := s.client.GetLog(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get log %d: %w", id, err)
	}
	return out, nil
}

func (s *logService) Summary(ctx context.Context, days int) (*models.LogSummary, error) {
	if err := models.Validate(models.LogFilter{Days: days}); err != nil {
		return nil, err
	}
	out, err := s.client.LogSummary(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("log summary: %w", err)
	}
	return out, nil
}
