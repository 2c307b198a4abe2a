package config

import (
	"strings"

	"github.com/spf13/viper"
)

type EnvVars struct {
	v *viper.Viper
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetAppName() string {
	return e.v.GetString(KeyAppName)
}

func (e EnvVars) GetEnv() string {
	env := strings.ToUpper(e.v.GetString(KeyEnv))
	if env == "" {
		return "DEV"
	}
	return env
}

// GetDataFolder is where the file token store keeps the bearer token.
func (e EnvVars) GetDataFolder() string {
	return e.v.GetString(KeyDataFolder)
}

// GetTokenStore returns "file" or "keyring".
func (e EnvVars) GetTokenStore() string {
	return strings.ToLower(e.v.GetString(KeyTokenStore))
}

// GetOutput returns the CLI output format: table, json or yaml.
func (e EnvVars) GetOutput() string {
	return strings.ToLower(e.v.GetString(KeyOutput))
}

func (e EnvVars) IsDebug() bool {
	return e.v.GetBool(KeyDebug)
}
