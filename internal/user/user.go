package user

import "github.com/ferdiebergado/hireloop/internal/platform/db"

// Module exposes tenant-scoped user accounts. Its service is shared with auth and
// tenant signup.
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

func NewModule(dbExec db.Executor) *Module {
	svc := NewService(NewRepository(dbExec))
	return &Module{
		svc:     svc,
		handler: NewHandler(svc),
	}
}
