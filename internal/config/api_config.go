package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type API struct {
	v *viper.Viper
}

var _ APIConfig = API{}

// GetAPIURL returns the identity server base URL without a trailing slash.
func (a API) GetAPIURL() string {
	return strings.TrimRight(a.v.GetString(KeyAPIURL), "/")
}

// GetIssuer returns the OIDC issuer used by whoami --verify. Defaults to the API URL.
func (a API) GetIssuer() string {
	if issuer := a.v.GetString(KeyIssuer); issuer != "" {
		return issuer
	}
	return a.GetAPIURL()
}

// GetTimeout bounds every REST call. Zero or negative falls back to the client default.
func (a API) GetTimeout() time.Duration {
	return a.v.GetDuration(KeyTimeout)
}

func (a API) GetConcurrency() int {
	n := a.v.GetInt(KeyConcurrency)
	if n < 1 {
		return 1
	}
	return n
}
