package auth

import (
	"database/sql"

	"github.com/ferdiebergado/hireloop/internal/config"
	"github.com/ferdiebergado/hireloop/internal/pkg/web"
	"github.com/ferdiebergado/hireloop/internal/platform/email"
	"github.com/ferdiebergado/hireloop/internal/platform/hash"
	"github.com/ferdiebergado/hireloop/internal/platform/jwt"
	"github.com/ferdiebergado/hireloop/internal/user"
)

type Provider struct {
	Cfg     *config.Config
	DB      *sql.DB
	Hasher  hash.Hasher
	Signer  jwt.Signer
	Mailer  email.Mailer
	Users   user.UserService
	Tenants TenantFinder
	Baker   web.Baker
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
	svc := NewService(repo, provider)
	handler := NewHandler(svc, provider)
	return &Module{
		handler: handler,
		svc:     svc,
	}
}
