package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ferdiebergado/hireloop/internal/application"
	"github.com/ferdiebergado/hireloop/internal/candidate"
	"github.com/ferdiebergado/hireloop/internal/event"
	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/platform/db"
	"github.com/ferdiebergado/hireloop/internal/platform/email"
)

var (
	ErrEmptyBody = errors.New("message body is empty")
	ErrNoSender  = errors.New("messages need a user as sender")
)

const (
	notifyTimeout = 30 * time.Second
	previewLength = 200
)

type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Message, error)
	List(ctx context.Context, tenantID, appID string) ([]Message, error)
	MarkRead(ctx context.Context, tenantID, appID, readerID string) (int64, error)
}

type ApplicationAuthorizer interface {
	Authorize(ctx context.Context, actor identity.Principal, appID string) (*application.Application, error)
}

type CandidateFinder interface {
	Find(ctx context.Context, tenantID, candidateID string) (*candidate.Candidate, error)
}

type Service struct {
	repo       Repository
	apps       ApplicationAuthorizer
	candidates CandidateFinder
	txMgr      db.TxManager
	publisher  event.Publisher
	mailer     email.Mailer
	baseURL    string
}

var _ MessageService = (*Service)(nil)

func NewService(repo Repository, apps ApplicationAuthorizer, candidates CandidateFinder, txMgr db.TxManager,
	publisher event.Publisher, mailer email.Mailer, baseURL string) *Service {
	return &Service{
		repo:       repo,
		apps:       apps,
		candidates: candidates,
		txMgr:      txMgr,
		publisher:  publisher,
		mailer:     mailer,
		baseURL:    baseURL,
	}
}

// EventData is the payload of message.created.
type EventData struct {
	MessageID     string    `json:"message_id"`
	ApplicationID string    `json:"application_id"`
	SenderRole    string    `json:"sender_role"`
	CreatedAt     time.Time `json:"created_at"`
}

// Send posts a message to the thread of an application. Messages from staff
// are also emailed to the candidate.
func (s *Service) Send(ctx context.Context, actor identity.Principal, appID, body string) (*Message, error) {
	if actor.UserID == "" {
		return nil, ErrNoSender
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyBody
	}

	a, err := s.apps.Authorize(ctx, actor, appID)
	if err != nil {
		return nil, fmt.Errorf("messaging service: %w", err)
	}

	var m *Message
	err = s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		m, err = s.repo.Create(txCtx, CreateParams{
			TenantID:      actor.TenantID,
			ApplicationID: a.ID,
			SenderID:      &actor.UserID,
			SenderRole:    actor.Role,
			Body:          body,
		})
		if err != nil {
			return err
		}

		return s.publisher.Publish(txCtx, actor.TenantID, event.MessageCreated, &EventData{
			MessageID:     m.ID,
			ApplicationID: m.ApplicationID,
			SenderRole:    m.SenderRole,
			CreatedAt:     m.CreatedAt,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("messaging service: %w", err)
	}

	if actor.IsStaff() {
		go s.notify(context.WithoutCancel(ctx), a, m)
	}

	return m, nil
}

func (s *Service) notify(ctx context.Context, a *application.Application, m *Message) {
	ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	c, err := s.candidates.Find(ctx, a.TenantID, a.CandidateID)
	if err != nil {
		slog.Error("failed to find message recipient", "application_id", a.ID, "reason", err)
		return
	}

	preview := m.Body
	if r := []rune(preview); len(r) > previewLength {
		preview = string(r[:previewLength]) + "..."
	}

	const subject = "New message about your application"
	data := map[string]string{
		"Title":   subject,
		"Header":  "Hi " + c.FullName + ", you have a new message",
		"Message": preview,
		"Link":    s.baseURL + "/applications/" + a.ID + "/messages",
	}
	if err := s.mailer.SendHTML([]string{c.Email}, subject, "new_message", data); err != nil {
		slog.Error("failed to send message notification", "application_id", a.ID, "reason", err)
	}
}

func (s *Service) List(ctx context.Context, actor identity.Principal, appID string) ([]Message, error) {
	a, err := s.apps.Authorize(ctx, actor, appID)
	if err != nil {
		return nil, fmt.Errorf("messaging service: %w", err)
	}

	msgs, err := s.repo.List(ctx, actor.TenantID, a.ID)
	if err != nil {
		return nil, fmt.Errorf("messaging service: %w", err)
	}
	return msgs, nil
}

// MarkRead marks every message in the thread not sent by the caller as read
// and returns how many changed.
func (s *Service) MarkRead(ctx context.Context, actor identity.Principal, appID string) (int64, error) {
	if actor.UserID == "" {
		return 0, ErrNoSender
	}

	a, err := s.apps.Authorize(ctx, actor, appID)
	if err != nil {
		return 0, fmt.Errorf("messaging service: %w", err)
	}

	n, err := s.repo.MarkRead(ctx, actor.TenantID, a.ID, actor.UserID)
	if err != nil {
		return 0, fmt.Errorf("messaging service: %w", err)
	}
	return n, nil
}
