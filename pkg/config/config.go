// Package config loads the server configuration from an optional YAML file,
// a .env file and the environment, in increasing order of precedence.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort            = "8080"
	DefaultOlympicsAPIURL  = "https://apis.codante.io/olympic-games"
	DefaultHTTPTimeout     = 15 * time.Second
	DefaultRefreshInterval = time.Minute
	DefaultUserAgent       = "olympic-feed"
)

type Config struct {
	Port      string   `yaml:"port"`
	CORSHosts []string `yaml:"cors_hosts"`

	Olympics OlympicsConfig `yaml:"olympics"`
	Firebase FirebaseConfig `yaml:"firebase"`
	Digest   DigestConfig   `yaml:"digest"`

	RefreshInterval time.Duration `yaml:"refresh_interval"`
	// IANA zone the feed's calendar day is computed in. Empty means local time.
	Timezone string `yaml:"timezone"`
}

type OlympicsConfig struct {
	BaseURL   string        `yaml:"base_url"`
	PerPage   int           `yaml:"per_page"` // 0 leaves the API default
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

type FirebaseConfig struct {
	ProjectID       string `yaml:"project_id"`
	CredentialsJSON string `yaml:"credentials_json"`
}

type DigestConfig struct {
	ResendKey string `yaml:"resend_key"`
	From      string `yaml:"from"`
}

// ArchiveEnabled reports whether Firebase is configured, which the snapshot
// and digest routes depend on.
func (c Config) ArchiveEnabled() bool {
	return c.Firebase.ProjectID != ""
}

// Load reads CONFIG_FILE when set, then applies environment overrides and
// fills defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Could not load .env: %v\n", err)
	}

	var cfg Config
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		file, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = *file
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func LoadFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, xerrors.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Port, "PORT")
	setString(&cfg.Firebase.ProjectID, "FIREBASE_PROJECT_ID")
	setString(&cfg.Firebase.CredentialsJSON, "FIREBASE_CREDENTIALS_JSON")
	setString(&cfg.Digest.ResendKey, "RESEND_KEY")
	setString(&cfg.Digest.From, "DIGEST_FROM")
	setString(&cfg.Olympics.BaseURL, "OLYMPICS_API_URL")
	setString(&cfg.Olympics.UserAgent, "OLYMPICS_USER_AGENT")
	setString(&cfg.Timezone, "TIMEZONE")

	if hosts := os.Getenv("CORS_HOSTS"); hosts != "" {
		cfg.CORSHosts = splitList(hosts)
	}

	if v := os.Getenv("OLYMPICS_PER_PAGE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return xerrors.Errorf("invalid OLYMPICS_PER_PAGE %q", v)
		}
		cfg.Olympics.PerPage = n
	}
	if err := setDuration(&cfg.Olympics.Timeout, "HTTP_TIMEOUT"); err != nil {
		return err
	}
	return setDuration(&cfg.RefreshInterval, "REFRESH_INTERVAL")
}

func applyDefaults(cfg *Config) {
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.Olympics.BaseURL == "" {
		cfg.Olympics.BaseURL = DefaultOlympicsAPIURL
	}
	if cfg.Olympics.Timeout <= 0 {
		cfg.Olympics.Timeout = DefaultHTTPTimeout
	}
	if cfg.Olympics.UserAgent == "" {
		cfg.Olympics.UserAgent = DefaultUserAgent
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = DefaultRefreshInterval
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return xerrors.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = d
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
