package webhook

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/ferdiebergado/hireloop/internal/config"
	"github.com/ferdiebergado/hireloop/internal/platform/db"
	"github.com/ferdiebergado/hireloop/internal/platform/validation"
)

type Observer interface {
	InboundObserver
	DeliveryObserver
}

type Provider struct {
	Cfg          *config.Webhook
	DB           *sql.DB
	TxMgr        db.TxManager
	Validator    validation.Validator
	Candidates   CandidateUpserter
	Applications ApplicationCreator
	Observer     Observer
	Client       *http.Client
}

// Module wires the webhook endpoints, the inbound receiver and the dispatcher.
// The publisher only needs the database, so it can be built before the
// modules that publish events.
type Module struct {
	svc        *Service
	handler    *Handler
	dispatcher *Dispatcher
}

func (m *Module) Handler() *Handler {
	return m.handler
}

func (m *Module) Service() *Service {
	return m.svc
}

// Start runs the dispatcher until ctx is cancelled.
func (m *Module) Start(ctx context.Context) error {
	return m.dispatcher.Run(ctx)
}

func NewPublisherFromDB(dbConn *sql.DB) *Publisher {
	return NewPublisher(NewRepository(dbConn))
}

func NewModule(provider *Provider) *Module {
	repo := NewRepository(provider.DB)
	svc := NewService(repo, provider.Cfg)
	receiver := NewReceiver(repo, provider.Candidates, provider.Applications, provider.TxMgr,
		provider.Validator, provider.Cfg, provider.Observer)

	return &Module{
		svc:        svc,
		handler:    NewHandler(svc, receiver, provider.Cfg.MaxPayloadBytes),
		dispatcher: NewDispatcher(repo, provider.Client, provider.Cfg, provider.Observer),
	}
}
