package messaging

import (
	"database/sql"

	"github.com/ferdiebergado/hireloop/internal/event"
	"github.com/ferdiebergado/hireloop/internal/platform/db"
	"github.com/ferdiebergado/hireloop/internal/platform/email"
)

type Provider struct {
	DB           *sql.DB
	TxMgr        db.TxManager
	Applications ApplicationAuthorizer
	Candidates   CandidateFinder
	Publisher    event.Publisher
	Mailer       email.Mailer
	BaseURL      string
}

type Module struct {
	svc     *Service
	handler *Handler
}

func (m *Module) Handler() *Handler {
	return m.handler
}

func (m *Module) Service() *Service {
	return m.svc
}

func NewModule(provider *Provider) *Module {
	repo := NewRepository(provider.DB)
	svc := NewService(repo, provider.Applications, provider.Candidates, provider.TxMgr,
		provider.Publisher, provider.Mailer, provider.BaseURL)
	return &Module{
		svc:     svc,
		handler: NewHandler(svc),
	}
}
