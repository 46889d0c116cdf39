package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar     = "PORT"
	appNameVar     = "APP_NAME"
	providerURLVar = "AUTH_PROVIDER_URL"
	providerKeyVar = "AUTH_PROVIDER_KEY"
	errorPageVar   = "ERROR_PAGE_URL"
	databaseURLVar = "DATABASE_URL"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}
var _ ProviderConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Auth Gateway")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func (EnvVars) GetDatabaseURL() string {
	return GetEnv(databaseURLVar, "postgres://localhost:5432/tenants?sslmode=disable")
}

func (EnvVars) GetProviderURL() string {
	return GetEnv(providerURLVar, "http://localhost:9999/auth/v1")
}

func (EnvVars) GetProviderKey() string {
	return GetEnv(providerKeyVar, "")
}

func (EnvVars) GetErrorPageURL() string {
	return GetEnv(errorPageVar, "/error")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
