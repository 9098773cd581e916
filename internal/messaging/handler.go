package messaging

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ferdiebergado/hireloop/internal/application"
	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/pkg/message"
	"github.com/ferdiebergado/hireloop/internal/pkg/web"
)

type MessageService interface {
	Send(ctx context.Context, actor identity.Principal, appID, body string) (*Message, error)
	List(ctx context.Context, actor identity.Principal, appID string) ([]Message, error)
	MarkRead(ctx context.Context, actor identity.Principal, appID string) (int64, error)
}

type Handler struct {
	svc MessageService
}

func NewHandler(svc MessageService) *Handler {
	return &Handler{svc: svc}
}

type SendRequest struct {
	Body string `json:"body" validate:"required,min=1,max=5000"`
}

func (r SendRequest) LogValue() slog.Value {
	return slog.GroupValue(slog.Int("body_length", len(r.Body)))
}

type MessageData struct {
	ID         string     `json:"id"`
	SenderID   *string    `json:"sender_id,omitempty"`
	SenderRole string     `json:"sender_role"`
	Body       string     `json:"body"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type ThreadResponse struct {
	Messages []MessageData `json:"messages"`
}

type ReadResponse struct {
	Marked int64 `json:"marked"`
}

func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	p, appID, ok := principalAndID(w, r)
	if !ok {
		return
	}

	req, err := web.ParamsFromContext[SendRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	m, err := h.svc.Send(r.Context(), p, appID, req.Body)
	if err != nil {
		fail(w, err)
		return
	}

	msg := "Message sent."
	web.RespondCreated(w, &msg, toData(m))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p, appID, ok := principalAndID(w, r)
	if !ok {
		return
	}

	msgs, err := h.svc.List(r.Context(), p, appID)
	if err != nil {
		fail(w, err)
		return
	}

	res := &ThreadResponse{Messages: make([]MessageData, 0, len(msgs))}
	for i := range msgs {
		res.Messages = append(res.Messages, *toData(&msgs[i]))
	}
	web.RespondOK(w, nil, res)
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	p, appID, ok := principalAndID(w, r)
	if !ok {
		return
	}

	n, err := h.svc.MarkRead(r.Context(), p, appID)
	if err != nil {
		fail(w, err)
		return
	}
	web.RespondOK(w, nil, &ReadResponse{Marked: n})
}

func fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, application.ErrNotFound):
		web.RespondNotFound(w, err, message.NotFound, nil)
	case errors.Is(err, ErrEmptyBody):
		web.RespondUnprocessableEntity(w, err, message.InvalidInput, map[string]string{"body": "body is required"})
	case errors.Is(err, ErrNoSender):
		web.RespondForbidden(w, err, message.Forbidden, nil)
	default:
		web.RespondInternalServerError(w, err)
	}
}

func principalAndID(w http.ResponseWriter, r *http.Request) (identity.Principal, string, bool) {
	p, err := identity.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return p, "", false
	}

	id, err := web.PathID(r, "id")
	if err != nil {
		web.RespondNotFound(w, err, message.NotFound, nil)
		return p, "", false
	}

	return p, id, true
}

func toData(m *Message) *MessageData {
	return &MessageData{
		ID:         m.ID,
		SenderID:   m.SenderID,
		SenderRole: m.SenderRole,
		Body:       m.Body,
		ReadAt:     m.ReadAt,
		CreatedAt:  m.CreatedAt,
	}
}
