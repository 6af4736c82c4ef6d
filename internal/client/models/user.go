package models

// User is an account as returned by the auth and users endpoints.
type User struct {
	ID                 int64      `json:"id"`
	Username           string     `json:"username"`
	Email              string     `json:"email"`
	IsActive           bool       `json:"is_active"`
	IsAdmin            bool       `json:"is_admin"`
	IsModerator        bool       `json:"is_moderator"`
	LogoURL            *string    `json:"logo_url,omitempty"`
	CompanyName        *string    `json:"company_name,omitempty"`
	ManagerContact     *string    `json:"manager_contact,omitempty"`
	CatalogDescription *string    `json:"catalog_description,omitempty"`
	CreatedAt          *Timestamp `json:"created_at,omitempty"`
}

type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type Registration struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// AuthResponse is returned by a successful login.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// ProfileResponse is returned by the /auth/profile/* endpoints.
type ProfileResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

type PasswordChange struct {
	CurrentPassword string `json:"current_password" validate:"required,min=6"`
	NewPassword     string `json:"new_password" validate:"required,min=6,nefield=CurrentPassword"`
}

// CompanyProfile carries the title-page defaults stored on the account.
type CompanyProfile struct {
	LogoURL            *string `json:"logo_url,omitempty"`
	CompanyName        *string `json:"company_name,omitempty"`
	ManagerContact     *string `json:"manager_contact,omitempty"`
	CatalogDescription *string `json:"catalog_description,omitempty"`
}

// UserUpdate is the admin-side partial update of an account.
type UserUpdate struct {
	Email              *string `json:"email,omitempty" validate:"omitnil,email"`
	IsActive           *bool   `json:"is_active,omitempty"`
	IsAdmin            *bool   `json:"is_admin,omitempty"`
	IsModerator        *bool   `json:"is_moderator,omitempty"`
	CompanyName        *string `json:"company_name,omitempty"`
	ManagerContact     *string `json:"manager_contact,omitempty"`
	CatalogDescription *string `json:"catalog_description,omitempty"`
}

type UserList struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}

type UserQuery struct {
	Skip   int    `validate:"gte=0"`
	Limit  int    `validate:"omitempty,min=1,max=1000"`
	Search string
}
