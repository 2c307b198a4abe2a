package server

// Route path constants
const (
	RouteHealth    = "/healthz"
	RouteMetrics   = "/metrics"
	RouteContext   = "/api/context"
	RouteDashboard = "/api/dashboard"
	RouteLogin     = "/api/login"

	// LoginPage is where browser views send a user without a valid session.
	LoginPage = "/login"
)
