package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/pkg/message"
	"github.com/ferdiebergado/hireloop/internal/pkg/web"
)

type UserService interface {
	Create(ctx context.Context, params CreateParams) (User, error)
	List(ctx context.Context, tenantID string) ([]User, error)
	FindByEmail(ctx context.Context, tenantID, email string) (*User, error)
	Find(ctx context.Context, tenantID, userID string) (*User, error)
}

type Handler struct {
	svc UserService
}

func NewHandler(svc UserService) *Handler {
	return &Handler{svc: svc}
}

type UserData struct {
	ID         string          `json:"id"`
	TenantID   string          `json:"tenant_id"`
	Email      string          `json:"email"`
	Role       string          `json:"role"`
	Metadata   json.RawMessage `json:"metadata,omitempty"`
	VerifiedAt *time.Time      `json:"verified_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type ListResponse struct {
	Users []UserData `json:"users"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p, err := identity.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	users, err := h.svc.List(r.Context(), p.TenantID)
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	res := &ListResponse{Users: make([]UserData, 0, len(users))}
	for _, u := range users {
		res.Users = append(res.Users, *toData(&u))
	}
	web.RespondOK(w, nil, res)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	p, err := identity.FromContext(r.Context())
	if err != nil || p.UserID == "" {
		web.RespondUnauthorized(w, identity.ErrNoPrincipal, message.InvalidUser, nil)
		return
	}

	u, err := h.svc.Find(r.Context(), p.TenantID, p.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			web.RespondNotFound(w, err, message.NotFound, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	web.RespondOK(w, nil, toData(u))
}

func toData(u *User) *UserData {
	return &UserData{
		ID:         u.ID,
		TenantID:   u.TenantID,
		Email:      u.Email,
		Role:       u.Role,
		Metadata:   u.Metadata,
		VerifiedAt: u.VerifiedAt,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
