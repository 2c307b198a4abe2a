package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-auth-console/apiclient"
	"github.com/jrsteele09/go-auth-console/internal/config"
	"github.com/jrsteele09/go-auth-console/internal/metrics"
	"github.com/jrsteele09/go-auth-console/sessions"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// Server is the console's backend-for-frontend. It holds no session state; every request
// acts as the bearer token it carries.
type Server struct {
	env        string
	mux        *http.ServeMux
	routes     []string
	config     config.Config
	clientOpts []apiclient.Option
	metrics    *metrics.Metrics
	gatherer   prometheus.Gatherer
}

type Option func(*Server)

// WithAPIClientOptions adds options to the per-request admin API client.
func WithAPIClientOptions(opts ...apiclient.Option) Option {
	return func(s *Server) { s.clientOpts = append(s.clientOpts, opts...) }
}

// WithMetrics records into m and serves gatherer on /metrics.
func WithMetrics(m *metrics.Metrics, gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = gatherer
	}
}

func New(c config.Config, opts ...Option) *Server {
	s := &Server{
		env:      c.GetEnv(),
		mux:      http.NewServeMux(),
		config:   c,
		gatherer: prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.initRoutes()
	s.logRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// apiClient builds the admin API client acting as session.
func (s *Server) apiClient(session *sessions.Session) *apiclient.Client {
	opts := append([]apiclient.Option{
		apiclient.WithTimeout(s.config.GetTimeout()),
		apiclient.WithMetrics(s.metrics),
	}, s.clientOpts...)
	return apiclient.New(s.config.GetAPIURL(), session, opts...)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	displayMethod := Gray + paddedMethod + ResetColor
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}
