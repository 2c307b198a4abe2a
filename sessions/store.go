package sessions

// TokenKey is the single fixed name the bearer token is persisted under.
const TokenKey = "auth_token"

// TokenStore persists the bearer token between console invocations.
// Load returns "" with a nil error when no token has been saved.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}
