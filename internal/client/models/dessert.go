// Package models defines the client-side data models of the dessert catalog:
// catalog entries, user accounts, export requests and activity log records,
// in the JSON shape the REST service speaks.
package models

import "strings"

// Dessert is a single catalog entry.
type Dessert struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	ImageURL    *string  `json:"image_url"`
	Description *string  `json:"description"`
	Ingredients *string  `json:"ingredients"`
	Calories    *float64 `json:"calories"`
	Proteins    *float64 `json:"proteins"`
	Fats        *float64 `json:"fats"`
	Carbs       *float64 `json:"carbs"`
	Weight      *string  `json:"weight"`
	Price       *float64 `json:"price"`
	IsActive    bool     `json:"is_active"`
}

// Tags splits the comma-joined Category into trimmed, lowercased tags.
// Empty fragments are dropped.
func (d Dessert) Tags() []string {
	parts := strings.Split(d.Category, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// HasTag reports whether any tag equals category, ignoring case and
// surrounding whitespace. It is an exact match, not a substring match.
func (d Dessert) HasTag(category string) bool {
	want := strings.ToLower(strings.TrimSpace(category))
	for _, tag := range d.Tags() {
		if tag == want {
			return true
		}
	}
	return false
}

// DessertInput is the body of a create request.
type DessertInput struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Category    string   `json:"category" validate:"required,max=100"`
	ImageURL    *string  `json:"image_url,omitempty"`
	Description *string  `json:"description,omitempty"`
	Ingredients *string  `json:"ingredients,omitempty"`
	Calories    *float64 `json:"calories,omitempty" validate:"omitnil,gte=0"`
	Proteins    *float64 `json:"proteins,omitempty" validate:"omitnil,gte=0"`
	Fats        *float64 `json:"fats,omitempty" validate:"omitnil,gte=0"`
	Carbs       *float64 `json:"carbs,omitempty" validate:"omitnil,gte=0"`
	Weight      *string  `json:"weight,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitnil,gte=0"`
	IsActive    bool     `json:"is_active"`
}

// DessertPatch is the body of a partial update; nil fields are left as-is
// on the server.
type DessertPatch struct {
	Title       *string  `json:"title,omitempty" validate:"omitnil,min=1,max=200"`
	Category    *string  `json:"category,omitempty" validate:"omitnil,min=1,max=100"`
	ImageURL    *string  `json:"image_url,omitempty"`
	Description *string  `json:"description,omitempty"`
	Ingredients *string  `json:"ingredients,omitempty"`
	Calories    *float64 `json:"calories,omitempty" validate:"omitnil,gte=0"`
	Proteins    *float64 `json:"proteins,omitempty" validate:"omitnil,gte=0"`
	Fats        *float64 `json:"fats,omitempty" validate:"omitnil,gte=0"`
	Carbs       *float64 `json:"carbs,omitempty" validate:"omitnil,gte=0"`
	Weight      *string  `json:"weight,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitnil,gte=0"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

// DessertQuery holds the server-side list filters. Zero values are omitted.
type DessertQuery struct {
	IsActive *bool
	Category string
	Search   string
}

// UploadedImage is the server's answer to an image upload.
type UploadedImage struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}
