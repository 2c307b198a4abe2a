package fakeapi

import (
	"github.com/go-chi/chi/v5"
)

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.record)

	r.Get("/.well-known/openid-configuration", s.handleDiscovery)
	r.Get("/.well-known/jwks.json", s.handleJWKS)
	r.Post("/admin/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/me", s.handleMe)
			r.Put("/profile", s.handleUpdateProfile)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)

				r.Get("/clients", s.handleListClients)
				r.Post("/clients", s.handleCreateClient)
				r.Get("/clients/{id}", s.handleGetClient)
				r.Put("/clients/{id}", s.handleUpdateClient)
				r.Delete("/clients/{id}", s.handleDeleteClient)
				r.Post("/clients/{id}/regenerate-secret", s.handleRegenerateSecret)
				r.Get("/clients/{id}/stats", s.handleClientStats)
				r.Post("/clients/{id}/tenants", s.handleAddClientTenants)
				r.Delete("/clients/{id}/tenants", s.handleRemoveClientTenants)

				r.Get("/tenants", s.handleListTenants)
				r.Post("/tenants", s.handleCreateTenant)
				r.Get("/tenants/{id}", s.handleGetTenant)
				r.Put("/tenants/{id}", s.handleUpdateTenant)
				r.Delete("/tenants/{id}", s.handleDeleteTenant)
				r.Get("/tenants/{id}/stats", s.handleTenantStats)

				r.Get("/tenants/{tenantID}/users", s.handleListUsers)
				r.Post("/tenants/{tenantID}/users", s.handleCreateUser)
				r.Get("/tenants/{tenantID}/users/{id}", s.handleGetUser)
				r.Put("/tenants/{tenantID}/users/{id}", s.handleUpdateUser)
				r.Delete("/tenants/{tenantID}/users/{id}", s.handleDeleteUser)
				r.Post("/tenants/{tenantID}/users/{id}/reset-password", s.handleResetUserPassword)

				r.Get("/system-admins", s.handleListAdmins)
				r.Get("/system-admins/{id}", s.handleGetAdmin)
				r.Delete("/system-admins/{id}", s.handleDeleteAdmin)
				r.Post("/system-admins/{id}/reset-password", s.handleResetAdminPassword)

				r.Get("/api-keys", s.handleListAPIKeys)
				r.Post("/api-keys/generate", s.handleGenerateAPIKey)
				r.Get("/api-keys/{id}", s.handleGetAPIKey)
				r.Delete("/api-keys/{id}", s.handleDeleteAPIKey)
				r.Post("/api-keys/{id}/toggle", s.handleToggleAPIKey)

				r.Get("/logs", s.handleListLogs)
				r.Get("/logs/stats", s.handleLogStats)
				r.Get("/logs/{id}", s.handleGetLog)
			})
		})

		r.Route("/tenant", func(r chi.Router) {
			r.Use(requireTenant)

			r.Get("/me", s.handleMe)
			r.Put("/profile", s.handleUpdateProfile)

			r.Get("/clients", s.handleListClients)
			r.Post("/clients", s.handleCreateClient)
			r.Get("/clients/{id}", s.handleGetClient)
			r.Put("/clients/{id}", s.handleUpdateClient)
			r.Delete("/clients/{id}", s.handleDeleteClient)
			r.Post("/clients/{id}/regenerate-secret", s.handleRegenerateSecret)
			r.Get("/clients/{id}/stats", s.handleClientStats)

			r.Get("/tenants", s.handleListTenants)
			r.Get("/tenants/{id}", s.handleGetTenant)
			r.Put("/tenants/{id}", s.handleUpdateTenant)

			r.Get("/users", s.handleListUsers)
			r.Post("/users", s.handleCreateUser)
			r.Get("/users/{id}", s.handleGetUser)
			r.Put("/users/{id}", s.handleUpdateUser)
			r.Delete("/users/{id}", s.handleDeleteUser)
			r.Post("/users/{id}/reset-password", s.handleResetUserPassword)

			r.Get("/logs", s.handleListLogs)
			r.Get("/logs/stats", s.handleLogStats)
			r.Get("/logs/{id}", s.handleGetLog)
		})
	})
	return r
}
