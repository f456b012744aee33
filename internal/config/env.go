package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Env is the flat runtime configuration of the back-office service.
type Env struct {
	AppAddr       string
	GinMode       string
	UpstreamURL   string
	UpstreamToken string
	JWTSecret     string
	OperatorEmail string
	// OperatorPasswordHash is a bcrypt hash; the service never holds a
	// plaintext credential.
	OperatorPasswordHash string
	CORSOrigins          []string
}

// LoadEnv reads config.yaml when present and lets environment variables
// (prefix BACKOFFICE_) override it.
func LoadEnv() Env {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("BACKOFFICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.addr", ":8080")
	v.SetDefault("app.gin_mode", "")
	v.SetDefault("upstream.url", "http://localhost:5000/api")
	v.SetDefault("upstream.token", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.operator_email", "")
	v.SetDefault("auth.operator_password_hash", "")
	v.SetDefault("cors.origins", []string{"http://localhost:3000", "http://127.0.0.1:3000"})

	if err := v.ReadInConfig(); err != nil {
		log.Printf("config.yaml not found, using defaults and env vars")
	}

	return Env{
		AppAddr:              strings.TrimSpace(v.GetString("app.addr")),
		GinMode:              strings.TrimSpace(v.GetString("app.gin_mode")),
		UpstreamURL:          strings.TrimRight(strings.TrimSpace(v.GetString("upstream.url")), "/"),
		UpstreamToken:        strings.TrimSpace(v.GetString("upstream.token")),
		JWTSecret:            strings.TrimSpace(v.GetString("auth.jwt_secret")),
		OperatorEmail:        strings.TrimSpace(v.GetString("auth.operator_email")),
		OperatorPasswordHash: strings.TrimSpace(v.GetString("auth.operator_password_hash")),
		CORSOrigins:          v.GetStringSlice("cors.origins"),
	}
}
