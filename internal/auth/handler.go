package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ferdiebergado/hireloop/internal/config"
	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/pkg/message"
	"github.com/ferdiebergado/hireloop/internal/pkg/security"
	"github.com/ferdiebergado/hireloop/internal/pkg/web"
	"github.com/ferdiebergado/hireloop/internal/user"
)

const maskChar = "*"

type AuthService interface {
	Register(ctx context.Context, params RegisterParams) (user.User, error)
	Verify(ctx context.Context, userID string) error
	Login(ctx context.Context, params LoginParams) (*Session, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	SendPasswordReset(ctx context.Context, tenantSlug, email string)
	ResetPassword(ctx context.Context, userID, newPassword string) error
}

type Handler struct {
	svc   AuthService
	cfg   *config.Config
	baker web.Baker
}

func NewHandler(svc AuthService, provider *Provider) *Handler {
	return &Handler{
		svc:   svc,
		cfg:   provider.Cfg,
		baker: provider.Baker,
	}
}

type RegisterRequest struct {
	TenantSlug      string `json:"tenant_slug" validate:"required,slug"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8,max=128"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	Role            string `json:"role" validate:"omitempty,oneof=candidate recruiter"`
}

func (r RegisterRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("tenant_slug", r.TenantSlug),
		slog.String("email", maskChar),
		slog.String("password", maskChar),
		slog.String("password_confirm", maskChar),
		slog.String("role", r.Role),
	)
}

type RegisterResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[RegisterRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	params := RegisterParams{
		TenantSlug: req.TenantSlug,
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
	}
	u, err := h.svc.Register(r.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserExists):
			web.RespondConflict(w, err, MsgUserExists, nil)
		case errors.Is(err, ErrTenantNotFound):
			web.RespondNotFound(w, err, MsgUnknownTenant, nil)
		case errors.Is(err, ErrRoleNotAllowed):
			web.RespondUnprocessableEntity(w, err, message.InvalidInput, map[string]string{"role": "role must be one of: candidate, recruiter"})
		default:
			web.RespondInternalServerError(w, err)
		}
		return
	}

	msg := MsgRegisterSuccess
	data := &RegisterResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
	web.RespondCreated(w, &msg, data)
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	p, err := identity.FromContext(r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	if err := h.svc.Verify(r.Context(), p.UserID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			web.RespondNotFound(w, err, message.NotFound, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	msg := MsgVerifySuccess
	web.RespondOK(w, &msg, struct{}{})
}

type LoginRequest struct {
	TenantSlug string `json:"tenant_slug" validate:"required,slug"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
}

func (r LoginRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("tenant_slug", r.TenantSlug),
		slog.String("email", maskChar),
		slog.String("password", maskChar),
	)
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[LoginRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	session, err := h.svc.Login(r.Context(), LoginParams(req))
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrUserNotVerified) {
			web.RespondUnauthorized(w, err, message.InvalidUser, nil)
			return
		}

		web.RespondInternalServerError(w, err)
		return
	}

	refreshCookie := security.NewSecureCookie(h.cfg.Cookie.Name, session.RefreshToken, h.cfg.Cookie.MaxAge.Duration)
	http.SetCookie(w, refreshCookie)

	csrfCookie, err := h.baker.Bake()
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}
	http.SetCookie(w, csrfCookie)

	msg := MsgLoggedIn
	web.RespondOK(w, &msg, h.tokenResponse(session.AccessToken))
}

// Refresh expects the CSRF double-submit check to have passed already.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshCookie, err := r.Cookie(h.cfg.Cookie.Name)
	if err != nil || refreshCookie.Value == "" {
		web.RespondUnauthorized(w, ErrInvalidToken, message.InvalidUser, nil)
		return
	}

	accessToken, err := h.svc.Refresh(r.Context(), refreshCookie.Value)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			web.RespondUnauthorized(w, err, message.InvalidUser, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	msg := MsgRefreshed
	web.RespondOK(w, &msg, h.tokenResponse(accessToken))
}

func (h *Handler) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, security.NewSecureCookie(h.cfg.Cookie.Name, "", -1))

	msg := MsgLoggedOut
	web.RespondOK(w, &msg, struct{}{})
}

type ForgotPasswordRequest struct {
	TenantSlug string `json:"tenant_slug" validate:"required,slug"`
	Email      string `json:"email" validate:"required,email"`
}

func (r ForgotPasswordRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("tenant_slug", r.TenantSlug),
		slog.String("email", maskChar),
	)
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[ForgotPasswordRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	h.svc.SendPasswordReset(r.Context(), req.TenantSlug, req.Email)
	msg := message.ResetSent
	web.RespondOK(w, &msg, struct{}{})
}

type ResetPasswordRequest struct {
	Password        string `json:"password" validate:"required,min=8,max=128"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (r ResetPasswordRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("password", maskChar),
		slog.String("password_confirm", maskChar),
	)
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	p, err := identity.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	req, err := web.ParamsFromContext[ResetPasswordRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	if err := h.svc.ResetPassword(r.Context(), p.UserID, req.Password); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			web.RespondUnauthorized(w, err, message.InvalidUser, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	msg := message.ResetSuccess
	web.RespondOK(w, &msg, struct{}{})
}

func (h *Handler) tokenResponse(accessToken string) *TokenResponse {
	return &TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.cfg.JWT.TTL.Seconds()),
	}
}
