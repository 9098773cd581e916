package tenant

import "time"

type Tenant struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Branding is the white-label presentation of a tenant.
type Branding struct {
	TenantID       string
	TenantSlug     string
	DisplayName    string
	LogoURL        string
	PrimaryColor   string
	SecondaryColor string
	CustomDomain   *string
	EmailSender    string
	UpdatedAt      time.Time
}

const (
	DefaultPrimaryColor   = "#1F2937"
	DefaultSecondaryColor = "#2563EB"
)
