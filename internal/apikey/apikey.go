package apikey

import (
	"database/sql"
	"net/http"

	"github.com/ferdiebergado/hireloop/internal/config"
	"github.com/ferdiebergado/hireloop/internal/pkg/security"
)

type Provider struct {
	Cfg      *config.APIKey
	DB       *sql.DB
	Hasher   security.ShortHasher
	Observer RateLimitObserver
}

type Module struct {
	svc     *Service
	handler *Handler
	limiter *Limiter
	header  string
}

func (m *Module) Handler() *Handler {
	return m.handler
}

func (m *Module) Service() *Service {
	return m.svc
}

// Require returns middleware that admits requests carrying a key with scope.
func (m *Module) Require(scope string) func(http.Handler) http.Handler {
	return RequireAPIKey(m.svc, m.limiter, m.header, scope)
}

func NewModule(provider *Provider) *Module {
	repo := NewRepository(provider.DB)
	svc := NewService(repo, provider.Hasher, provider.Cfg.SecretLength)
	return &Module{
		svc:     svc,
		handler: NewHandler(svc),
		limiter: NewLimiter(provider.Cfg, provider.Observer),
		header:  provider.Cfg.Header,
	}
}
