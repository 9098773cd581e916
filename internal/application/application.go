package application

import (
	"database/sql"

	"github.com/ferdiebergado/hireloop/internal/event"
	"github.com/ferdiebergado/hireloop/internal/platform/db"
)

type Provider struct {
	DB         *sql.DB
	TxMgr      db.TxManager
	Jobs       JobFinder
	Candidates CandidateFinder
	Publisher  event.Publisher
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
	svc := NewService(repo, provider.Jobs, provider.Candidates, provider.TxMgr, provider.Publisher)
	return &Module{
		svc:     svc,
		handler: NewHandler(svc),
	}
}
