package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/dessertcatalog/internal/client/models"
)

func userPath(id int64) string {
	return "/users/" + strconv.FormatInt(id, 10)
}

func (c *HTTPClient) ListUsers(ctx context.Context, q models.UserQuery) (*models.UserList, error) {
	params := url.Values{}
	params.Set("skip", strconv.Itoa(q.Skip))
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}

	var out models.UserList
	if err := c.doJSON(ctx, http.MethodGet, "/users/", params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var out models.User
	if err := c.doJSON(ctx, http.MethodGet, userPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error) {
	var out models.User
	if err := c.doJSON(ctx, http.MethodPut, userPath(id), nil, upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, userPath(id), nil, nil, nil)
}

func (c *HTTPClient) ListLogs(ctx context.Context, f models.LogFilter) (*models.ActivityLogPage, error) {
	params := url.Values{}
	params.Set("skip", strconv.Itoa(f.Skip))
	if f.Limit > 0 {
		params.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Days > 0 {
		params.Set("days", strconv.Itoa(f.Days))
	}
	for key, v := range map[string]string{
		"action":      f.Action,
		"entity_type": f.EntityType,
		"username":    f.Username,
		"search":      f.Search,
	} {
		if v != "" {
			params.Set(key, v)
		}
	}

	var out models.ActivityLogPage
	if err := c.doJSON(ctx, http.MethodGet, "/logs/", params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetLog(ctx context.Context, id int64) (*models.ActivityLog, error) {
	var out models.ActivityLog
	if err := c.doJSON(ctx, http.MethodGet, "/logs/"+strconv.FormatInt(id, 10), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) LogSummary(ctx context.Context, days int) (*models.LogSummary, error) {
	params := url.Values{}
	if days > 0 {
		params.Set("days", strconv.Itoa(days))
	}

	var out models.LogSummary
	if err := c.doJSON(ctx, http.MethodGet, "/logs/stats/summary", params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
