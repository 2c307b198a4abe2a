package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "CONSOLE"

// Config keys, shared by the viper defaults, env bindings and cobra flag bindings.
const (
	KeyAPIURL         = "api_url"
	KeyTimeout        = "timeout"
	KeyConcurrency    = "concurrency"
	KeyTokenStore     = "token_store"
	KeyDataFolder     = "data_folder"
	KeyPort           = "port"
	KeyAppName        = "app_name"
	KeyEnv            = "env"
	KeyDebug          = "debug"
	KeyOutput         = "output"
	KeyAllowedOrigins = "allowed_origins"
	KeyIssuer         = "issuer"
)

type Config interface {
	EnvConfig
	APIConfig
	ServerConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetDataFolder() string
	GetTokenStore() string
	GetOutput() string
	IsDebug() bool
}

type APIConfig interface {
	GetAPIURL() string
	GetIssuer() string
	GetTimeout() time.Duration
	GetConcurrency() int
}

type mainConfig struct {
	EnvVars
	API
	Server
}

// New wraps an already populated viper instance. Defaults are applied to it.
func New(v *viper.Viper) Config {
	setDefaults(v)
	return mainConfig{
		EnvVars: EnvVars{v: v},
		API:     API{v: v},
		Server:  Server{v: v},
	}
}

// Load builds a Config from defaults, an optional YAML file and CONSOLE_* environment variables.
// An empty path falls back to CONSOLE_CONFIG.
func Load(v *viper.Viper, path string) (Config, error) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv(envPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("[config Load] read config file %s: %w", path, err)
		}
	}
	return New(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyAPIURL, "http://localhost:8080")
	v.SetDefault(KeyTimeout, 30*time.Second)
	v.SetDefault(KeyConcurrency, 8)
	v.SetDefault(KeyTokenStore, "file")
	v.SetDefault(KeyDataFolder, defaultDataFolder())
	v.SetDefault(KeyPort, "3000")
	v.SetDefault(KeyAppName, "Auth Console")
	v.SetDefault(KeyEnv, "DEV")
	v.SetDefault(KeyOutput, "table")
	v.SetDefault(KeyAllowedOrigins, []string{"http://localhost:3000"})
}

func defaultDataFolder() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "./data"
	}
	return filepath.Join(dir, "go-auth-console")
}
