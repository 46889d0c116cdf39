package server

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/leasehub/go-auth-gateway/auth"
	"github.com/leasehub/go-auth-gateway/internal/config"
	"github.com/leasehub/go-auth-gateway/provider"
	"github.com/leasehub/go-auth-gateway/sessions"
	"github.com/leasehub/go-auth-gateway/tenants"
)

type Server struct {
	env       string // Environment (e.g., "DEV", "PROD")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	lifecycle *auth.LifecycleService
	cookies   *sessions.CookieIssuer
	logger    zerolog.Logger
}

func New(cfg config.Config, tenantRepo tenants.Repo, providerClient provider.Client, logger zerolog.Logger) (*Server, error) {
	lifecycle, err := auth.NewLifecycleService(tenantRepo, providerClient, logger)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create lifecycle service: %w", err)
	}

	s := &Server{
		env:       cfg.GetEnv(),
		mux:       http.NewServeMux(),
		config:    cfg,
		lifecycle: lifecycle,
		cookies:   sessions.NewCookieIssuer(cfg.SecureCookies()),
		logger:    logger,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("POST "+RouteRegister, ChainMiddleware(s.RegisterHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteForgotPassword, ChainMiddleware(s.ForgotPasswordHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteUpdatePassword, ChainMiddleware(s.UpdatePasswordHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteConfirm, ChainMiddleware(s.ConfirmHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteSignIn, ChainMiddleware(s.SignInHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteSignOut, ChainMiddleware(s.SignOutHandler(), s.APIMiddleware()...))

	if s.env == "DEV" {
		s.RegisterRouteFunc("GET "+RouteResetTest, s.ResetTestHandler())
	}
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		s.logger.Debug().Str("route", route).Msg("registered")
	}
}
