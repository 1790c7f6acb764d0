package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/logisticsfuture/identity/internal/identity/service"
	"github.com/logisticsfuture/identity/internal/identity/store"
	"github.com/logisticsfuture/identity/pkg/httpx"
	"github.com/logisticsfuture/identity/pkg/slogx"

	_ "github.com/logisticsfuture/identity/api/identity" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store       store.Store
	AuthService *service.AuthService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			LogisticsFuture Identity Service API
//	@version		0.1.0
//	@description	Credential and session-lifecycle service: registration, login,
//	@description	refresh-token rotation, and single-use password reset.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	r.Mux.Handle("POST /v1/auth/register", http.HandlerFunc(h.HandleRegister))
	r.Mux.Handle("POST /v1/auth/login", http.HandlerFunc(h.HandleLogin))
	r.Mux.Handle("POST /v1/auth/refresh", http.HandlerFunc(h.HandleRefresh))
	r.Mux.Handle("POST /v1/auth/forgot-password", http.HandlerFunc(h.HandleForgotPassword))
	r.Mux.Handle("POST /v1/auth/reset-password", http.HandlerFunc(h.HandleResetPassword))
	r.Mux.Handle("POST /v1/auth/logout", http.HandlerFunc(h.HandleLogout))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
