package config

type Config interface {
	EnvConfig
	ProviderConfig
	SecurityConfig
	CorsConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetDatabaseURL() string
}

type ProviderConfig interface {
	GetProviderURL() string
	GetProviderKey() string
	GetErrorPageURL() string
}

type SecurityConfig interface {
	// SecureCookies reports whether session cookies carry the Secure flag.
	// Derived from the environment, never hardcoded per deployment.
	SecureCookies() bool
	// TrustProxy reports whether X-Forwarded-For may be trusted for client
	// IPs. Set once at startup; the reverse proxy in front of the gateway
	// decides this, not request-time state.
	TrustProxy() bool
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Security
	Cors
}

func New() Config {
	return mainConfig{}
}
