package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	s.RegisterRouteHandler("POST "+RouteLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteContext, ChainMiddleware(s.ContextHandler(), s.APIMiddleware(s.RequireBearer())...))
	s.RegisterRouteHandler("GET "+RouteDashboard, ChainMiddleware(s.DashboardHandler(), s.APIMiddleware(s.CompressionMiddleware, s.RequireBearer())...))

	// Browsers send a preflight before the bearer-carrying requests.
	s.RegisterRouteHandler("OPTIONS /api/", ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, s.APIMiddleware()...))
}
