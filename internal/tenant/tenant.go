package tenant

import (
	"database/sql"

	"github.com/ferdiebergado/hireloop/internal/platform/db"
	"github.com/ferdiebergado/hireloop/internal/platform/hash"
)

type Provider struct {
	DB       *sql.DB
	TxMgr    db.TxManager
	Hasher   hash.Hasher
	Users    UserCreator
	Verifier Verifier
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
	svc := NewService(repo, provider.Users, provider.Hasher, provider.TxMgr, provider.Verifier)
	return &Module{
		svc:     svc,
		handler: NewHandler(svc),
	}
}
