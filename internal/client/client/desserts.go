package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/dessertcatalog/internal/client/models"
)

func dessertPath(id int64) string {
	return "/desserts/" + strconv.FormatInt(id, 10)
}

func (c *HTTPClient) ListDesserts(ctx context.Context, q models.DessertQuery) ([]models.Dessert, error) {
	params := url.Values{}
	if q.IsActive != nil {
		params.Set("is_active", strconv.FormatBool(*q.IsActive))
	}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}

	var out []models.Dessert
	if err := c.doJSON(ctx, http.MethodGet, "/desserts/", params, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Dessert{}
	}
	return out, nil
}

func (c *HTTPClient) GetDessert(ctx context.Context, id int64) (*models.Dessert, error) {
	var out models.Dessert
	if err := c.doJSON(ctx, http.MethodGet, dessertPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListCategories(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.doJSON(ctx, http.MethodGet, "/desserts/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateDessert(ctx context.Context, in models.DessertInput) (*models.Dessert, error) {
	var out models.Dessert
	if err := c.doJSON(ctx, http.MethodPost, "/desserts/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateDessert sends only the non-nil fields of patch.
func (c *HTTPClient) UpdateDessert(ctx context.Context, id int64, patch models.DessertPatch) (*models.Dessert, error) {
	var out models.Dessert
	if err := c.doJSON(ctx, http.MethodPut, dessertPath(id), nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteDessert(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, dessertPath(id), nil, nil, nil)
}
