package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"organizerdashboard/internal/delivery/http/controllers"
	"organizerdashboard/internal/delivery/http/middleware"
	"organizerdashboard/internal/domain"
)

// RouterDeps are the handlers and collaborators mounted by NewRouter.
type RouterDeps struct {
	Settings *controllers.SettingsController
	Wizard   *controllers.WizardController
	Verifier domain.TokenVerifier
	Metrics  http.Handler
	Logger   *slog.Logger
}

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(d RouterDeps) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(d.Verifier, d.Logger)
	s := d.Settings

	// Settings sessions
	mux.HandleFunc("POST /settings/events/{eventID}/sessions", auth(s.OpenSession))
	mux.HandleFunc("GET /settings/events/{eventID}/history", auth(s.History))
	mux.HandleFunc("GET /settings/sessions/{sessionID}", auth(s.GetSession))
	mux.HandleFunc("DELETE /settings/sessions/{sessionID}", auth(s.CloseSession))
	mux.HandleFunc("PATCH /settings/sessions/{sessionID}/event", auth(s.UpdateEventFields))
	mux.HandleFunc("PUT /settings/sessions/{sessionID}/event/photo", auth(s.StagePhoto))
	mux.HandleFunc("DELETE /settings/sessions/{sessionID}/event/photo", auth(s.ClearPhoto))
	mux.HandleFunc("POST /settings/sessions/{sessionID}/coorganizers", auth(s.AddCoOrganizer))
	mux.HandleFunc("PUT /settings/sessions/{sessionID}/coorganizers/{email}", auth(s.UpdateCoOrganizer))
	mux.HandleFunc("DELETE /settings/sessions/{sessionID}/coorganizers/{email}", auth(s.RemoveCoOrganizer))
	mux.HandleFunc("POST /settings/sessions/{sessionID}/attributes", auth(s.AddAttribute))
	mux.HandleFunc("PUT /settings/sessions/{sessionID}/attributes/{attributeID}", auth(s.UpdateAttribute))
	mux.HandleFunc("DELETE /settings/sessions/{sessionID}/attributes/{attributeID}", auth(s.RemoveAttribute))
	mux.HandleFunc("POST /settings/sessions/{sessionID}/attributes/{attributeID}/move", auth(s.MoveAttribute))
	mux.HandleFunc("POST /settings/sessions/{sessionID}/save", auth(s.Save))

	// Wizard
	mux.HandleFunc("POST /wizard/events", auth(d.Wizard.CreateEvent))

	// Ops
	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics)
	}
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
