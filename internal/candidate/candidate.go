package candidate

import (
	"database/sql"

	"github.com/ferdiebergado/hireloop/internal/config"
	"github.com/ferdiebergado/hireloop/internal/event"
	"github.com/ferdiebergado/hireloop/internal/platform/db"
)

type Provider struct {
	Cfg       *config.Search
	DB        *sql.DB
	TxMgr     db.TxManager
	Jobs      JobFinder
	Publisher event.Publisher
	Observer  SearchObserver
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
	svc := NewService(repo, provider.Jobs, provider.TxMgr, provider.Publisher, provider.Cfg, provider.Observer)
	return &Module{
		svc:     svc,
		handler: NewHandler(svc, provider.Cfg),
	}
}
