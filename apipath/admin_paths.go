package apipath

import "net/url"

// API keys and system admins exist only on the admin family.

func (r Resolver) APIKeys() string {
	return admin + "/api-keys"
}

func (r Resolver) APIKey(id string) string {
	return r.APIKeys() + "/" + url.PathEscape(id)
}

func (r Resolver) APIKeyGenerate() string {
	return r.APIKeys() + "/generate"
}

func (r Resolver) APIKeyToggle(id string) string {
	return r.APIKey(id) + "/toggle"
}

func (r Resolver) SystemAdmins() string {
	return admin + "/system-admins"
}

func (r Resolver) SystemAdmin(id string) string {
	return r.SystemAdmins() + "/" + url.PathEscape(id)
}

func (r Resolver) SystemAdminResetPassword(id string) string {
	return r.SystemAdmin(id) + "/reset-password"
}
