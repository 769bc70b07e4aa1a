package config

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultEnvFile             = ".env"
	defaultPort                = "8080"
	defaultReadTimeout         = 15 * time.Second
	defaultWriteTimeout        = 30 * time.Second
	defaultIdleTimeout         = 60 * time.Second
	defaultPagesDir            = "config/pages"
	defaultFirestoreCollection = "landingPages"
	defaultCommerceTimeout     = 8 * time.Second
	defaultStorefrontURL       = "https://www.pomandi.com"
	defaultSiteURL             = "https://www.premiummenssuits.com"

	// PagesSourceDir reads page configurations from a directory of JSON/YAML files.
	PagesSourceDir = "dir"
	// PagesSourceFirestore reads page configurations from a Firestore collection.
	PagesSourceFirestore = "firestore"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	Pages     PagesConfig
	Firestore FirestoreConfig
	Commerce  CommerceConfig
	Links     LinksConfig
	Dev       bool
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// PagesConfig selects where page configurations are read from.
type PagesConfig struct {
	Source string
	Dir    string
	Watch  bool
}

// FirestoreConfig stores database parameters.
type FirestoreConfig struct {
	ProjectID    string
	Collection   string
	EmulatorHost string
}

// CommerceConfig points at the product catalogue GraphQL endpoint.
// An empty endpoint selects the built-in static catalogue.
type CommerceConfig struct {
	Endpoint string
	Token    string
	Timeout  time.Duration
}

// LinksConfig holds the absolute bases used when building outbound and alternate URLs.
type LinksConfig struct {
	StorefrontURL string
	SiteURL       string
}

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, .env overrides and environment variables.
func Load(_ context.Context, opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	env := &reader{lookup: func(key string) (string, bool) {
		if value, ok := options.envMap[key]; ok {
			return value, true
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		value, ok := dotEnvValues[key]
		return value, ok
	}}

	port := env.str("PORT", defaultPort)
	cfg := Config{
		Server: ServerConfig{
			Addr:         env.str("LANDING_HTTP_ADDR", ":"+port),
			ReadTimeout:  env.duration("LANDING_SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: env.duration("LANDING_SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  env.duration("LANDING_SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		Pages: PagesConfig{
			Source: strings.ToLower(env.str("LANDING_PAGES_SOURCE", PagesSourceDir)),
			Dir:    env.str("LANDING_PAGES_DIR", defaultPagesDir),
			Watch:  env.boolean("LANDING_PAGES_WATCH", false),
		},
		Firestore: FirestoreConfig{
			ProjectID:    env.str("LANDING_FIRESTORE_PROJECT_ID", env.str("GOOGLE_CLOUD_PROJECT", "")),
			Collection:   env.str("LANDING_FIRESTORE_COLLECTION", defaultFirestoreCollection),
			EmulatorHost: env.str("FIRESTORE_EMULATOR_HOST", ""),
		},
		Commerce: CommerceConfig{
			Endpoint: env.str("LANDING_COMMERCE_ENDPOINT", ""),
			Token:    env.str("LANDING_COMMERCE_TOKEN", ""),
			Timeout:  env.duration("LANDING_COMMERCE_TIMEOUT", defaultCommerceTimeout),
		},
		Links: LinksConfig{
			StorefrontURL: strings.TrimRight(env.str("LANDING_STOREFRONT_URL", defaultStorefrontURL), "/"),
			SiteURL:       strings.TrimRight(env.str("LANDING_SITE_URL", defaultSiteURL), "/"),
		},
		Dev: env.boolean("LANDING_DEV", false),
	}

	if err := validateConfig(cfg, env.invalid); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config, invalid []string) error {
	fields := append([]string(nil), invalid...)

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		fields = append(fields, "Server.Addr")
	}
	switch cfg.Pages.Source {
	case PagesSourceDir:
		if strings.TrimSpace(cfg.Pages.Dir) == "" {
			fields = append(fields, "Pages.Dir")
		}
	case PagesSourceFirestore:
		if cfg.Firestore.ProjectID == "" {
			fields = append(fields, "Firestore.ProjectID")
		}
		if cfg.Firestore.Collection == "" {
			fields = append(fields, "Firestore.Collection")
		}
	default:
		fields = append(fields, "Pages.Source")
	}
	if cfg.Commerce.Endpoint != "" && !isAbsoluteURL(cfg.Commerce.Endpoint) {
		fields = append(fields, "Commerce.Endpoint")
	}
	if !isAbsoluteURL(cfg.Links.StorefrontURL) {
		fields = append(fields, "Links.StorefrontURL")
	}
	if !isAbsoluteURL(cfg.Links.SiteURL) {
		fields = append(fields, "Links.SiteURL")
	}

	if len(fields) > 0 {
		return &ValidationError{fields: fields}
	}
	return nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.IsAbs() && u.Host != ""
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}
