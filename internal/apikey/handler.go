package apikey

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/pkg/message"
	"github.com/ferdiebergado/hireloop/internal/pkg/web"
)

type APIKeyService interface {
	Create(ctx context.Context, tenantID, name string, scopes []string) (*Issued, error)
	List(ctx context.Context, tenantID string) ([]APIKey, error)
	Revoke(ctx context.Context, tenantID, keyID string) error
}

type Handler struct {
	svc APIKeyService
}

func NewHandler(svc APIKeyService) *Handler {
	return &Handler{svc: svc}
}

type CreateRequest struct {
	Name   string   `json:"name" validate:"required,max=100"`
	Scopes []string `json:"scopes" validate:"required,min=1,dive,oneof=jobs:read jobs:write candidates:read candidates:write applications:read applications:write"`
}

type KeyData struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Prefix     string     `json:"prefix"`
	Scopes     []string   `json:"scopes"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type CreateResponse struct {
	KeyData
	Key string `json:"key"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := identity.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	req, err := web.ParamsFromContext[CreateRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	issued, err := h.svc.Create(r.Context(), p.TenantID, req.Name, req.Scopes)
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	msg := "API key created. Store the key now, it will not be shown again."
	web.RespondCreated(w, &msg, &CreateResponse{
		KeyData: toData(issued.Key),
		Key:     issued.Plaintext,
	})
}

type ListResponse struct {
	Keys []KeyData `json:"keys"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p, err := identity.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	keys, err := h.svc.List(r.Context(), p.TenantID)
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	res := &ListResponse{Keys: make([]KeyData, 0, len(keys))}
	for i := range keys {
		res.Keys = append(res.Keys, toData(&keys[i]))
	}
	web.RespondOK(w, nil, res)
}

func (h *Handler) Revoke(w http.ResponseWriter, r *http.Request) {
	p, err := identity.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	keyID, err := web.PathID(r, "id")
	if err != nil {
		web.RespondNotFound(w, err, message.NotFound, nil)
		return
	}

	if err := h.svc.Revoke(r.Context(), p.TenantID, keyID); err != nil {
		if errors.Is(err, ErrNotFound) {
			web.RespondNotFound(w, err, message.NotFound, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	web.RespondNoContent(w)
}

func toData(k *APIKey) KeyData {
	return KeyData{
		ID:         k.ID,
		Name:       k.Name,
		Prefix:     k.Prefix,
		Scopes:     k.Scopes,
		LastUsedAt: k.LastUsedAt,
		RevokedAt:  k.RevokedAt,
		CreatedAt:  k.CreatedAt,
	}
}
