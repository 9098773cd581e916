package analytics

import "database/sql"

type Provider struct {
	DB   *sql.DB
	Jobs JobFinder
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
	svc := NewService(NewRepository(provider.DB), provider.Jobs)
	return &Module{
		svc:     svc,
		handler: NewHandler(svc),
	}
}
