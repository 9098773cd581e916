package app

import (
	"github.com/ferdiebergado/hireloop/internal/analytics"
	"github.com/ferdiebergado/hireloop/internal/apikey"
	"github.com/ferdiebergado/hireloop/internal/application"
	"github.com/ferdiebergado/hireloop/internal/assessment"
	"github.com/ferdiebergado/hireloop/internal/auth"
	"github.com/ferdiebergado/hireloop/internal/candidate"
	"github.com/ferdiebergado/hireloop/internal/config"
	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/job"
	"github.com/ferdiebergado/hireloop/internal/messaging"
	"github.com/ferdiebergado/hireloop/internal/middleware"
	"github.com/ferdiebergado/hireloop/internal/pkg/web"
	"github.com/ferdiebergado/hireloop/internal/platform/jwt"
	"github.com/ferdiebergado/hireloop/internal/platform/router"
	"github.com/ferdiebergado/hireloop/internal/platform/validation"
	"github.com/ferdiebergado/hireloop/internal/tenant"
	"github.com/ferdiebergado/hireloop/internal/user"
	"github.com/ferdiebergado/hireloop/internal/webhook"
)

// payload appends the decode and validate middlewares for a JSON body of type T.
func payload[T any](v validation.Validator, maxBodySize int64, mws ...router.Middleware) []router.Middleware {
	return append(mws, middleware.DecodePayload[T](maxBodySize), middleware.ValidateInput[T](v))
}

var (
	staffOnly = auth.RequireRole(identity.RoleAdmin, identity.RoleRecruiter)
	adminOnly = auth.RequireRole(identity.RoleAdmin)
)

func mountAuthRoutes(r router.Router, h *auth.Handler, v validation.Validator, cfg *config.Config, signer jwt.Signer, baker web.Baker) {
	maxBodySize := cfg.Server.MaxBodyBytes
	csrf := middleware.CSRFGuard(cfg.CSRF, baker)

	r.Group("/auth", func(gr router.Router) {
		gr.Post("/register", h.Register, payload[auth.RegisterRequest](v, maxBodySize)...)
		gr.Post("/login", h.Login, payload[auth.LoginRequest](v, maxBodySize)...)
		gr.Get("/verify", h.Verify, auth.VerifyToken(signer, jwt.AudienceVerify))
		gr.Post("/refresh", h.Refresh, csrf)
		gr.Post("/logout", h.Logout, csrf)
		gr.Post("/forgot", h.ForgotPassword, payload[auth.ForgotPasswordRequest](v, maxBodySize)...)
		gr.Post("/reset", h.ResetPassword,
			payload[auth.ResetPasswordRequest](v, maxBodySize, auth.VerifyToken(signer, jwt.AudienceReset))...)
	})
}

func mountUserRoutes(r router.Router, h *user.Handler, requireToken router.Middleware) {
	r.Get("/users", h.List, requireToken, adminOnly)
	r.Get("/users/me", h.Me, requireToken)
}

func mountTenantRoutes(r router.Router, h *tenant.Handler, v validation.Validator, requireToken router.Middleware, maxBodySize int64) {
	r.Post("/tenants", h.Signup, payload[tenant.SignupRequest](v, maxBodySize)...)
	r.Get("/branding/{slug}", h.Branding)

	r.Get("/tenants/current", h.Current, requireToken)
	r.Put("/tenants/current/branding", h.UpdateBranding,
		payload[tenant.BrandingRequest](v, maxBodySize, requireToken, adminOnly)...)
}

func mountAPIKeyRoutes(r router.Router, h *apikey.Handler, v validation.Validator, requireToken router.Middleware, maxBodySize int64) {
	r.Post("/api-keys", h.Create, payload[apikey.CreateRequest](v, maxBodySize, requireToken, adminOnly)...)
	r.Get("/api-keys", h.List, requireToken, adminOnly)
	r.Delete("/api-keys/{id}", h.Revoke, requireToken, adminOnly)
}

func mountJobRoutes(r router.Router, m *modules, v validation.Validator, requireToken router.Middleware, maxBodySize int64) {
	jobs := m.jobs.Handler()
	apps := m.applications.Handler()
	assessments := m.assessments.Handler()

	r.Post("/jobs", jobs.Create, payload[job.CreateRequest](v, maxBodySize, requireToken, staffOnly)...)
	r.Get("/jobs", jobs.List, requireToken)

	r.Group("/jobs", func(gr router.Router) {
		gr.Get("/{id}", jobs.Find)
		gr.Patch("/{id}", jobs.Update, payload[job.UpdateRequest](v, maxBodySize, staffOnly)...)
		gr.Delete("/{id}", jobs.Delete, staffOnly)
		gr.Post("/{id}/publish", jobs.Publish, staffOnly)
		gr.Post("/{id}/close", jobs.Close, staffOnly)

		gr.Post("/{id}/applications", apps.Apply, payload[application.ApplyRequest](v, maxBodySize)...)
		gr.Get("/{id}/applications", apps.ListByJob, staffOnly)

		gr.Post("/{id}/assessments", assessments.Create, payload[assessment.CreateRequest](v, maxBodySize, staffOnly)...)
		gr.Get("/{id}/assessments", assessments.ListByJob, staffOnly)
	}, requireToken)
}

func mountCandidateRoutes(r router.Router, h *candidate.Handler, v validation.Validator, requireToken router.Middleware, maxBodySize int64) {
	r.Post("/candidates", h.Create, payload[candidate.CreateRequest](v, maxBodySize, requireToken)...)

	r.Group("/candidates", func(gr router.Router) {
		gr.Get("/search", h.Search, staffOnly)
		gr.Get("/me", h.Me)
		gr.Get("/{id}", h.Find)
		gr.Patch("/{id}", h.Update, payload[candidate.UpdateRequest](v, maxBodySize)...)
	}, requireToken)
}

func mountApplicationRoutes(r router.Router, m *modules, v validation.Validator, requireToken router.Middleware, maxBodySize int64) {
	apps := m.applications.Handler()
	msgs := m.messaging.Handler()
	assessments := m.assessments.Handler()

	r.Get("/applications", apps.ListMine, requireToken)

	r.Group("/applications", func(gr router.Router) {
		gr.Get("/{id}", apps.Find)
		gr.Post("/{id}/stage", apps.MoveStage, payload[application.MoveRequest](v, maxBodySize)...)
		gr.Get("/{id}/events", apps.Events)

		gr.Post("/{id}/messages", msgs.Send, payload[messaging.SendRequest](v, maxBodySize)...)
		gr.Get("/{id}/messages", msgs.List)
		gr.Post("/{id}/messages/read", msgs.MarkRead)

		gr.Get("/{id}/assessment-results", assessments.Results)
	}, requireToken)

	r.Post("/assessments/{id}/results", assessments.Record,
		payload[assessment.RecordRequest](v, maxBodySize, requireToken, staffOnly)...)
}

func mountWebhookRoutes(r router.Router, h *webhook.Handler, v validation.Validator, requireToken router.Middleware, maxBodySize int64) {
	r.Post("/webhooks/inbound/{tenant_slug}/{source}", h.Inbound)

	r.Group("/webhooks", func(gr router.Router) {
		gr.Post("/endpoints", h.CreateEndpoint, payload[webhook.CreateEndpointRequest](v, maxBodySize)...)
		gr.Get("/endpoints", h.ListEndpoints)
		gr.Delete("/endpoints/{id}", h.DeleteEndpoint)
		gr.Get("/endpoints/{id}/deliveries", h.Deliveries)
		gr.Post("/deliveries/{id}/redeliver", h.Redeliver)
		gr.Put("/sources/{source}", h.RotateSource)
	}, requireToken, adminOnly)
}

func mountAnalyticsRoutes(r router.Router, h *analytics.Handler, requireToken router.Middleware) {
	r.Group("/analytics", func(gr router.Router) {
		gr.Get("/pipeline", h.Pipeline)
		gr.Get("/overview", h.Overview)
		gr.Get("/jobs/{id}/funnel", h.Funnel)
	}, requireToken, staffOnly)
}

// mountPublicAPIRoutes exposes the integration surface authenticated by api keys.
func mountPublicAPIRoutes(r router.Router, m *modules, v validation.Validator, cfg *config.Server) {
	keys := m.apiKeys
	jobs := m.jobs.Handler()
	candidates := m.candidates.Handler()
	apps := m.applications.Handler()
	maxBodySize := cfg.MaxBodyBytes

	r.Group("/api/v1", func(gr router.Router) {
		gr.Get("/jobs", jobs.List, keys.Require(apikey.ScopeJobsRead))
		gr.Get("/jobs/{id}", jobs.Find, keys.Require(apikey.ScopeJobsRead))

		gr.Post("/candidates", candidates.Create,
			payload[candidate.CreateRequest](v, maxBodySize, keys.Require(apikey.ScopeCandidatesWrite))...)
		gr.Get("/candidates/search", candidates.Search, keys.Require(apikey.ScopeCandidatesRead))

		gr.Post("/jobs/{id}/applications", apps.Apply,
			payload[application.ApplyRequest](v, maxBodySize, keys.Require(apikey.ScopeApplicationsWrite))...)
		gr.Get("/jobs/{id}/applications", apps.ListByJob, keys.Require(apikey.ScopeApplicationsRead))
	})
}
