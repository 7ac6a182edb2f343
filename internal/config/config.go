package config

import (
	"flag"
	"os"
	"time"
)

type Config struct {
	ListenAddr      string
	Provider        string
	UpstreamBaseURL string
	UpstreamAPIKey  string
	UpstreamProxy   string
	Model           string
	FallbackPolicy  string
	RequestTimeout  time.Duration
	AllowedOrigin   string
	SecureCookies   bool
}

func Load() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.ListenAddr, "listen-addr", getEnv("LISTEN_ADDR", ":3000"), "HTTP listen address")
	flag.StringVar(&cfg.Provider, "provider", getEnv("PROVIDER", "deepseek"), "Completion backend: deepseek or gemini")
	flag.StringVar(&cfg.UpstreamBaseURL, "upstream-base-url", getEnv("DEEPSEEK_BASE_URL", "https://api.deepseek.com"), "Upstream base URL or full chat completions URL")
	flag.StringVar(&cfg.UpstreamAPIKey, "upstream-api-key", getEnv("DEEPSEEK_API_KEY", ""), "Default upstream API key (used when the caller supplies none)")
	flag.StringVar(&cfg.UpstreamProxy, "upstream-proxy", getEnv("UPSTREAM_PROXY_URL", ""), "HTTP/HTTPS proxy URL for upstream requests")
	flag.StringVar(&cfg.Model, "model", getEnv("MODEL", "deepseek-chat"), "Upstream model name")
	flag.StringVar(&cfg.FallbackPolicy, "fallback-policy", getEnv("FALLBACK_POLICY", "template"), "Fallback generator policy: template or rules")
	flag.StringVar(&cfg.AllowedOrigin, "allowed-origin", getEnv("ALLOWED_ORIGIN", "*"), "Access-Control-Allow-Origin value")

	timeoutStr := getEnv("REQUEST_TIMEOUT", "120s")
	defaultTimeout, _ := time.ParseDuration(timeoutStr)
	if defaultTimeout == 0 {
		defaultTimeout = 120 * time.Second
	}
	flag.DurationVar(&cfg.RequestTimeout, "request-timeout", defaultTimeout, "Upstream round-trip timeout")

	flag.BoolVar(&cfg.SecureCookies, "secure-cookies", getEnvBool("SECURE_COOKIES", false), "Set the Secure flag on session cookies (enable behind TLS)")

	flag.Parse()
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	switch v {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return fallback
}
