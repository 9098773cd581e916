package webhook

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/ferdiebergado/gopherkit/http/response"

	"github.com/ferdiebergado/hireloop/internal/application"
	"github.com/ferdiebergado/hireloop/internal/candidate"
	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/job"
	"github.com/ferdiebergado/hireloop/internal/pkg/message"
	"github.com/ferdiebergado/hireloop/internal/pkg/web"
)

const (
	defaultDeliveryPage = 50
	maxDeliveryPage     = 200
)

type WebhookService interface {
	CreateEndpoint(ctx context.Context, tenantID, rawURL string, events []string) (*Endpoint, error)
	ListEndpoints(ctx context.Context, tenantID string) ([]Endpoint, error)
	DeleteEndpoint(ctx context.Context, tenantID, endpointID string) error
	Deliveries(ctx context.Context, tenantID, endpointID string, limit int) ([]Delivery, error)
	Redeliver(ctx context.Context, tenantID, deliveryID string) (*Delivery, error)
	RotateSource(ctx context.Context, tenantID, source string) (string, error)
}

type InboundReceiver interface {
	Receive(ctx context.Context, req InboundRequest) (*InboundResult, error)
}

type Handler struct {
	svc             WebhookService
	receiver        InboundReceiver
	maxPayloadBytes int64
}

func NewHandler(svc WebhookService, receiver InboundReceiver, maxPayloadBytes int64) *Handler {
	return &Handler{svc: svc, receiver: receiver, maxPayloadBytes: maxPayloadBytes}
}

type CreateEndpointRequest struct {
	URL    string   `json:"url" validate:"required,url,max=2000"`
	Events []string `json:"events" validate:"required,min=1,max=20,dive,required"`
}

type EndpointData struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Events    []string  `json:"events"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatedEndpointData is only returned on creation; the secret is not shown again.
type CreatedEndpointData struct {
	EndpointData
	Secret string `json:"secret"`
}

type EndpointsResponse struct {
	Endpoints []EndpointData `json:"endpoints"`
}

type DeliveryData struct {
	ID             string     `json:"id"`
	EventID        string     `json:"event_id"`
	EventType      string     `json:"event_type"`
	Status         string     `json:"status"`
	Attempts       int        `json:"attempts"`
	NextAttemptAt  time.Time  `json:"next_attempt_at"`
	LastStatusCode *int       `json:"last_status_code,omitempty"`
	LastError      *string    `json:"last_error,omitempty"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type DeliveriesResponse struct {
	Deliveries []DeliveryData `json:"deliveries"`
}

type SourceData struct {
	Source string `json:"source"`
	Secret string `json:"secret"`
}

// InboundResponse is written without the usual envelope since its readers are machines.
type InboundResponse struct {
	Duplicate     bool   `json:"duplicate"`
	CandidateID   string `json:"candidate_id,omitempty"`
	ApplicationID string `json:"application_id,omitempty"`
}

func (h *Handler) CreateEndpoint(w http.ResponseWriter, r *http.Request) {
	p, err := identity.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	req, err := web.ParamsFromContext[CreateEndpointRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	e, err := h.svc.CreateEndpoint(r.Context(), p.TenantID, req.URL, req.Events)
	if err != nil {
		fail(w, err)
		return
	}

	msg := "Webhook endpoint created. Store the secret now, it will not be shown again."
	web.RespondCreated(w, &msg, &CreatedEndpointData{EndpointData: *toEndpointData(e), Secret: e.Secret})
}

func (h *Handler) ListEndpoints(w http.ResponseWriter, r *http.Request) {
	p, err := identity.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	endpoints, err := h.svc.ListEndpoints(r.Context(), p.TenantID)
	if err != nil {
		fail(w, err)
		return
	}

	res := &EndpointsResponse{Endpoints: make([]EndpointData, 0, len(endpoints))}
	for i := range endpoints {
		res.Endpoints = append(res.Endpoints, *toEndpointData(&endpoints[i]))
	}
	web.RespondOK(w, nil, res)
}

func (h *Handler) DeleteEndpoint(w http.ResponseWriter, r *http.Request) {
	p, id, ok := principalAndID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteEndpoint(r.Context(), p.TenantID, id); err != nil {
		fail(w, err)
		return
	}
	web.RespondNoContent(w)
}

func (h *Handler) Deliveries(w http.ResponseWriter, r *http.Request) {
	p, id, ok := principalAndID(w, r)
	if !ok {
		return
	}

	page, errs := web.ParsePage(r.URL.Query(), defaultDeliveryPage, maxDeliveryPage)
	if errs != nil {
		web.RespondUnprocessableEntity(w, errors.New("invalid page"), message.InvalidInput, errs)
		return
	}

	deliveries, err := h.svc.Deliveries(r.Context(), p.TenantID, id, page.Limit)
	if err != nil {
		fail(w, err)
		return
	}

	res := &DeliveriesResponse{Deliveries: make([]DeliveryData, 0, len(deliveries))}
	for i := range deliveries {
		res.Deliveries = append(res.Deliveries, *toDeliveryData(&deliveries[i]))
	}
	web.RespondOK(w, nil, res)
}

func (h *Handler) Redeliver(w http.ResponseWriter, r *http.Request) {
	p, id, ok := principalAndID(w, r)
	if !ok {
		return
	}

	d, err := h.svc.Redeliver(r.Context(), p.TenantID, id)
	if err != nil {
		fail(w, err)
		return
	}

	msg := "Delivery queued."
	web.RespondOK(w, &msg, toDeliveryData(d))
}

func (h *Handler) RotateSource(w http.ResponseWriter, r *http.Request) {
	p, err := identity.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	source := r.PathValue("source")
	secret, err := h.svc.RotateSource(r.Context(), p.TenantID, source)
	if err != nil {
		fail(w, err)
		return
	}

	msg := "Webhook source secret generated. Store it now, it will not be shown again."
	web.RespondOK(w, &msg, &SourceData{Source: source, Secret: secret})
}

// Inbound receives an event pushed by an external system. It is not
// authenticated by token: the signature proves the sender.
func (h *Handler) Inbound(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxPayloadBytes))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			web.RespondRequestEntityTooLarge(w, err)
			return
		}
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	res, err := h.receiver.Receive(r.Context(), InboundRequest{
		TenantSlug: r.PathValue("tenant_slug"),
		Source:     r.PathValue("source"),
		Timestamp:  r.Header.Get(HeaderTimestamp),
		Signature:  r.Header.Get(HeaderSignature),
		Body:       body,
	})
	if err != nil {
		failInbound(w, err)
		return
	}

	response.JSON(w, http.StatusOK, &InboundResponse{
		Duplicate:     res.Duplicate,
		CandidateID:   res.CandidateID,
		ApplicationID: res.ApplicationID,
	})
}

func failInbound(w http.ResponseWriter, err error) {
	var payloadErr *PayloadError
	switch {
	case errors.Is(err, ErrSourceNotFound):
		web.RespondNotFound(w, err, message.NotFound, nil)
	case errors.Is(err, ErrInvalidSignature), errors.Is(err, ErrStaleTimestamp):
		web.RespondUnauthorized(w, err, "Invalid webhook signature.", nil)
	case errors.As(err, &payloadErr):
		web.RespondUnprocessableEntity(w, err, message.InvalidInput, payloadErr.Errors)
	case errors.Is(err, job.ErrNotFound):
		web.RespondUnprocessableEntity(w, err, message.InvalidInput, map[string]string{"job_id": "job does not exist"})
	case errors.Is(err, application.ErrJobNotOpen), errors.Is(err, application.ErrDuplicate), errors.Is(err, candidate.ErrProfileTaken):
		web.RespondConflict(w, err, err.Error(), nil)
	default:
		web.RespondInternalServerError(w, err)
	}
}

func fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrDeliveryNotFound):
		web.RespondNotFound(w, err, message.NotFound, nil)
	case errors.Is(err, ErrNotFailed):
		web.RespondConflict(w, err, ErrNotFailed.Error(), nil)
	case errors.Is(err, ErrInactive):
		web.RespondConflict(w, err, ErrInactive.Error(), nil)
	case errors.Is(err, ErrInvalidURL):
		web.RespondUnprocessableEntity(w, err, message.InvalidInput, map[string]string{"url": err.Error()})
	case errors.Is(err, ErrInvalidEvents):
		web.RespondUnprocessableEntity(w, err, message.InvalidInput, map[string]string{"events": err.Error()})
	case errors.Is(err, ErrInvalidSource):
		web.RespondUnprocessableEntity(w, err, message.InvalidInput,
			map[string]string{"source": "source must be lowercase letters, digits, - or _"})
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

func toEndpointData(e *Endpoint) *EndpointData {
	return &EndpointData{
		ID:        e.ID,
		URL:       e.URL,
		Events:    e.Events,
		Active:    e.Active,
		CreatedAt: e.CreatedAt,
	}
}

func toDeliveryData(d *Delivery) *DeliveryData {
	return &DeliveryData{
		ID:             d.ID,
		EventID:        d.EventID,
		EventType:      d.EventType,
		Status:         d.Status,
		Attempts:       d.Attempts,
		NextAttemptAt:  d.NextAttemptAt,
		LastStatusCode: d.LastStatusCode,
		LastError:      d.LastError,
		DeliveredAt:    d.DeliveredAt,
		CreatedAt:      d.CreatedAt,
	}
}
