// Package export turns a selection of catalog entries and the user's
// formatting choices into a single models.ExportRequest.
package export

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/dessertcatalog/internal/client/models"
)

var (
	ErrEmptySelection  = errors.New("no desserts selected")
	ErrUnknownTemplate = errors.New("unknown template")
)

// ParseTemplate maps user input (case-insensitive) onto a known template.
func ParseTemplate(s string) (models.Template, error) {
	t := models.Template(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, s)
	}
	return t, nil
}

// Builder accumulates export options. The zero value is not useful; use
// NewBuilder.
type Builder struct {
	includeIngredients bool
	includeNutrition   bool
	includeTitlePage   bool
	template           models.Template
	companyName        string
	managerContact     string
	logoURL            string
}

// NewBuilder returns a builder with every section enabled and the minimal
// template. When user is non-nil its company name, manager contact and logo
// become the title-page defaults. Later edits on the builder never touch
// the user record.
func NewBuilder(user *models.User) *Builder {
	b := &Builder{
		includeIngredients: true,
		includeNutrition:   true,
		includeTitlePage:   true,
		template:           models.TemplateMinimal,
	}
	if user != nil {
		b.companyName = deref(user.CompanyName)
		b.managerContact = deref(user.ManagerContact)
		b.logoURL = deref(user.LogoURL)
	}
	return b
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// WithTemplate sets the layout. An unknown template is rejected here so a
// typo never reaches the network.
func (b *Builder) WithTemplate(t models.Template) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, t)
	}
	b.template = t
	return nil
}

func (b *Builder) IncludeIngredients(v bool) *Builder {
	b.includeIngredients = v
	return b
}

func (b *Builder) IncludeNutrition(v bool) *Builder {
	b.includeNutrition = v
	return b
}

func (b *Builder) IncludeTitlePage(v bool) *Builder {
	b.includeTitlePage = v
	return b
}

func (b *Builder) WithCompanyName(v string) *Builder {
	b.companyName = v
	return b
}

func (b *Builder) WithManagerContact(v string) *Builder {
	b.managerContact = v
	return b
}

func (b *Builder) WithLogoURL(v string) *Builder {
	b.logoURL = v
	return b
}

func (b *Builder) Template() models.Template {
	return b.template
}

// Build composes the request for ids. Ids are de-duplicated and sorted
// since the selection is a set. An empty id list yields ErrEmptySelection.
func (b *Builder) Build(ids []int64) (models.ExportRequest, error) {
	if len(ids) == 0 {
		return models.ExportRequest{}, ErrEmptySelection
	}
	if !b.template.Valid() {
		return models.ExportRequest{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, b.template)
	}

	set := slices.Clone(ids)
	slices.Sort(set)
	set = slices.Compact(set)

	req := models.ExportRequest{
		DessertIDs:         set,
		IncludeIngredients: b.includeIngredients,
		IncludeNutrition:   b.includeNutrition,
		IncludeTitlePage:   b.includeTitlePage,
		CompanyName:        optional(b.companyName),
		ManagerContact:     optional(b.managerContact),
		LogoURL:            optional(b.logoURL),
		Template:           b.template,
	}

	if err := models.Validate(req); err != nil {
		return models.ExportRequest{}, err
	}
	return req, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
