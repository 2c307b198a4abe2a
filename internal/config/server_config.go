package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type ServerConfig interface {
	GetPort() string
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type Server struct {
	v *viper.Viper
}

var _ ServerConfig = Server{}

type AllowedOrigins map[string]struct{}
type nullValue = struct{}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	_, ok := a[origin]
	return ok
}

func (a AllowedOrigins) String() string {
	var origins []string
	for k := range a {
		origins = append(origins, k)
	}
	return strings.Join(origins, ", ")
}

// GetPort returns the listen address for `console serve`, always prefixed with ':'.
func (s Server) GetPort() string {
	port := s.v.GetString(KeyPort)
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (s Server) GetAllowedOrigins() AllowedOrigins {
	origins := AllowedOrigins{}
	for _, o := range s.v.GetStringSlice(KeyAllowedOrigins) {
		if o = strings.TrimSpace(o); o != "" {
			origins[o] = nullValue{}
		}
	}
	return origins
}

func (Server) GetAllowedMethods() string {
	return "GET, POST, PUT, PATCH, DELETE"
}

func (Server) GetAllowedHeaders() string {
	return "Content-Type, Authorization"
}
