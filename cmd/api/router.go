package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/green-crm/internal/infra/http/handlers"
	"github.com/xavierca1/green-crm/internal/infra/http/middleware"
)

type routes struct {
	Auth       *handlers.AuthHandler
	Leads      *handlers.LeadHandler
	Automation *handlers.AutomationHandler
	Calendar   *handlers.CalendarHandler
	Gateway    *handlers.GatewayHandler
	Snapshot   *handlers.SnapshotHandler
	Health     *handlers.HealthHandler

	Validator   middleware.TokenValidator
	Sessions    middleware.SessionStarter
	CORSOrigins []string
}

func newRouter(rt routes) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", rt.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/auth/signup", rt.Auth.SignUp)
	r.Post("/auth/signin", rt.Auth.SignIn)
	r.Post("/public/{tenantId}/landing/{pageId}/leads", rt.Leads.Capture)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(rt.Validator, rt.Sessions))

		r.Post("/auth/logout", rt.Auth.Logout)
		r.Post("/seed/retry", rt.Auth.RetrySeed)

		r.Get("/snapshot", rt.Snapshot.Get)
		r.Get("/ws", rt.Snapshot.Stream)

		r.Post("/leads", rt.Leads.Create)
		r.Patch("/leads/{id}", rt.Leads.Update)
		r.Delete("/leads", rt.Leads.Delete)
		r.Put("/lead-statuses", rt.Leads.UpdateStatuses)

		r.Post("/templates", rt.Automation.SaveTemplate)
		r.Put("/templates/{id}", rt.Automation.SaveTemplate)
		r.Delete("/templates/{id}", rt.Automation.DeleteTemplate)
		r.Put("/triggers", rt.Automation.UpdateTriggers)
		r.Put("/flow", rt.Automation.UpdateFlow)

		r.Post("/meetings", rt.Calendar.AddMeeting)
		r.Put("/admin", rt.Calendar.UpdateAdmin)

		r.Put("/gateway", rt.Gateway.Connect)
		r.Delete("/gateway", rt.Gateway.Disconnect)
		r.Post("/gateway/test", rt.Gateway.Test)
	})

	return r
}
