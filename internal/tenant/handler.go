package tenant

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/pkg/message"
	"github.com/ferdiebergado/hireloop/internal/pkg/web"
	"github.com/ferdiebergado/hireloop/internal/user"
)

const maskChar = "*"

type TenantService interface {
	Signup(ctx context.Context, params SignupParams) (*SignupResult, error)
	Current(ctx context.Context, tenantID string) (*Tenant, *Branding, error)
	Branding(ctx context.Context, slug string) (*Branding, error)
	UpdateBranding(ctx context.Context, tenantID string, params BrandingParams) (*Branding, error)
}

type Handler struct {
	svc TenantService
}

func NewHandler(svc TenantService) *Handler {
	return &Handler{svc: svc}
}

type SignupRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	Slug          string `json:"slug" validate:"required,min=3,max=63,slug"`
	AdminEmail    string `json:"admin_email" validate:"required,email"`
	AdminPassword string `json:"admin_password" validate:"required,min=8,max=128"`
}

func (r SignupRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", r.Name),
		slog.String("slug", r.Slug),
		slog.String("admin_email", maskChar),
		slog.String("admin_password", maskChar),
	)
}

type TenantData struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

type AdminData struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type SignupResponse struct {
	Tenant TenantData `json:"tenant"`
	Admin  AdminData  `json:"admin"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[SignupRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	res, err := h.svc.Signup(r.Context(), SignupParams(req))
	if err != nil {
		if errors.Is(err, ErrDuplicateSlug) {
			web.RespondConflict(w, err, "Tenant slug is already taken.", map[string]string{"slug": "slug is already taken"})
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	msg := "Tenant created. A verification link was sent to the admin email."
	web.RespondCreated(w, &msg, &SignupResponse{
		Tenant: toTenantData(&res.Tenant),
		Admin:  toAdminData(&res.Admin),
	})
}

type BrandingData struct {
	TenantSlug     string    `json:"tenant_slug"`
	DisplayName    string    `json:"display_name"`
	LogoURL        string    `json:"logo_url,omitempty"`
	PrimaryColor   string    `json:"primary_color"`
	SecondaryColor string    `json:"secondary_color"`
	CustomDomain   *string   `json:"custom_domain,omitempty"`
	EmailSender    string    `json:"email_sender,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CurrentResponse struct {
	Tenant   TenantData    `json:"tenant"`
	Branding *BrandingData `json:"branding"`
}

func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	p, err := identity.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	t, b, err := h.svc.Current(r.Context(), p.TenantID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			web.RespondNotFound(w, err, message.NotFound, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	web.RespondOK(w, nil, &CurrentResponse{
		Tenant:   toTenantData(t),
		Branding: toBrandingData(b),
	})
}

func (h *Handler) Branding(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Branding(r.Context(), r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			web.RespondNotFound(w, err, message.NotFound, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	web.RespondOK(w, nil, toBrandingData(b))
}

type BrandingRequest struct {
	DisplayName    string `json:"display_name" validate:"required,max=200"`
	LogoURL        string `json:"logo_url" validate:"omitempty,url,max=2048"`
	PrimaryColor   string `json:"primary_color" validate:"omitempty,len=7,hexcolor"`
	SecondaryColor string `json:"secondary_color" validate:"omitempty,len=7,hexcolor"`
	CustomDomain   string `json:"custom_domain" validate:"omitempty,fqdn,max=253"`
	EmailSender    string `json:"email_sender" validate:"omitempty,email"`
}

func (h *Handler) UpdateBranding(w http.ResponseWriter, r *http.Request) {
	p, err := identity.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	req, err := web.ParamsFromContext[BrandingRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	b, err := h.svc.UpdateBranding(r.Context(), p.TenantID, BrandingParams(req))
	if err != nil {
		switch {
		case errors.Is(err, ErrDomainTaken):
			web.RespondConflict(w, err, "Custom domain is already in use.", map[string]string{"custom_domain": "custom_domain is already in use"})
		case errors.Is(err, ErrNotFound):
			web.RespondNotFound(w, err, message.NotFound, nil)
		default:
			web.RespondInternalServerError(w, err)
		}
		return
	}

	msg := "Branding updated."
	web.RespondOK(w, &msg, toBrandingData(b))
}

func toTenantData(t *Tenant) TenantData {
	return TenantData{ID: t.ID, Name: t.Name, Slug: t.Slug, CreatedAt: t.CreatedAt}
}

func toAdminData(u *user.User) AdminData {
	return AdminData{ID: u.ID, Email: u.Email}
}

func toBrandingData(b *Branding) *BrandingData {
	return &BrandingData{
		TenantSlug:     b.TenantSlug,
		DisplayName:    b.DisplayName,
		LogoURL:        b.LogoURL,
		PrimaryColor:   b.PrimaryColor,
		SecondaryColor: b.SecondaryColor,
		CustomDomain:   b.CustomDomain,
		EmailSender:    b.EmailSender,
		UpdatedAt:      b.UpdatedAt,
	}
}
