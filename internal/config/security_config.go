package config

import "os"

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) SecureCookies() bool {
	return EnvVars{}.GetEnv() == "PROD"
}

func (Security) TrustProxy() bool {
	return os.Getenv("TRUST_PROXY") == "true"
}
