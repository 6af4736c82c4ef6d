package models

// Template is a named PDF layout.
type Template string

const (
	TemplateMinimal Template = "minimal"
	TemplateClassic Template = "classic"
	TemplateModern  Template = "modern"
	TemplateLuxury  Template = "luxury"
)

// TemplateInfo describes a template for pickers and help output.
type TemplateInfo struct {
	ID          Template
	Name        string
	Description string
}

var templates = []TemplateInfo{
	{ID: TemplateMinimal, Name: "Minimalist", Description: "Clean and simple design, focus on content"},
	{ID: TemplateClassic, Name: "Classic", Description: "Elegant style with decorative elements"},
	{ID: TemplateModern, Name: "Modern", Description: "Bright design with colorful accents"},
	{ID: TemplateLuxury, Name: "Luxury", Description: "Luxurious style with gold accents"},
}

// Templates returns the fixed template catalogue in display order.
func Templates() []TemplateInfo {
	out := make([]TemplateInfo, len(templates))
	copy(out, templates)
	return out
}

// Valid reports whether t is one of the known templates.
func (t Template) Valid() bool {
	for _, info := range templates {
		if info.ID == t {
			return true
		}
	}
	return false
}

// ExportRequest is the body of POST /pdf/export.
type ExportRequest struct {
	DessertIDs         []int64  `json:"dessert_ids" validate:"min=1,max=1000,unique"`
	IncludeIngredients bool     `json:"include_ingredients"`
	IncludeNutrition   bool     `json:"include_nutrition"`
	IncludeTitlePage   bool     `json:"include_title_page"`
	CompanyName        *string  `json:"company_name,omitempty"`
	ManagerContact     *string  `json:"manager_contact,omitempty"`
	LogoURL            *string  `json:"logo_url,omitempty"`
	Template           Template `json:"template" validate:"oneof=minimal classic modern luxury"`
}
