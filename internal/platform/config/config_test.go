package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(context.Background(), WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %s", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Pages.Source != PagesSourceDir || cfg.Pages.Dir != "config/pages" {
		t.Errorf("unexpected pages config: %+v", cfg.Pages)
	}
	if cfg.Pages.Watch {
		t.Errorf("watch should default to false")
	}
	if cfg.Commerce.Endpoint != "" || cfg.Commerce.Timeout != 8*time.Second {
		t.Errorf("unexpected commerce config: %+v", cfg.Commerce)
	}
	if cfg.Links.StorefrontURL != "https://www.pomandi.com" {
		t.Errorf("unexpected storefront url: %s", cfg.Links.StorefrontURL)
	}
	if cfg.Links.SiteURL != "https://www.premiummenssuits.com" {
		t.Errorf("unexpected site url: %s", cfg.Links.SiteURL)
	}
	if cfg.Firestore.Collection != "landingPages" {
		t.Errorf("unexpected firestore collection: %s", cfg.Firestore.Collection)
	}
}

func TestLoadOverrides(t *testing.T) {
	env := map[string]string{
		"PORT":                         "9090",
		"LANDING_PAGES_SOURCE":         "Firestore",
		"LANDING_FIRESTORE_PROJECT_ID": "pomandi-dev",
		"LANDING_COMMERCE_ENDPOINT":    "https://api.example.com/graphql/",
		"LANDING_COMMERCE_TIMEOUT":     "3s",
		"LANDING_STOREFRONT_URL":       "https://shop.example.com/",
		"LANDING_DEV":                  "yes",
	}
	cfg, err := Load(context.Background(), WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("expected addr from PORT, got %s", cfg.Server.Addr)
	}
	if cfg.Pages.Source != PagesSourceFirestore || cfg.Firestore.ProjectID != "pomandi-dev" {
		t.Errorf("unexpected source config: %+v %+v", cfg.Pages, cfg.Firestore)
	}
	if cfg.Commerce.Timeout != 3*time.Second {
		t.Errorf("unexpected commerce timeout: %s", cfg.Commerce.Timeout)
	}
	if cfg.Links.StorefrontURL != "https://shop.example.com" {
		t.Errorf("trailing slash should be trimmed, got %s", cfg.Links.StorefrontURL)
	}
	if !cfg.Dev {
		t.Errorf("expected dev mode")
	}
}

func TestLoadValidationErrors(t *testing.T) {
	env := map[string]string{
		"LANDING_PAGES_SOURCE":     "firestore",
		"LANDING_COMMERCE_TIMEOUT": "soon",
		"LANDING_PAGES_WATCH":      "maybe",
		"LANDING_SITE_URL":         "not-a-url",
	}
	_, err := Load(context.Background(), WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{"LANDING_PAGES_WATCH", "LANDING_COMMERCE_TIMEOUT", "Firestore.ProjectID", "Links.SiteURL"}
	if !reflect.DeepEqual(vErr.Fields(), want) {
		t.Errorf("unexpected fields: %v", vErr.Fields())
	}
}

func TestLoadUnknownSource(t *testing.T) {
	_, err := Load(context.Background(), WithEnvMap(map[string]string{"LANDING_PAGES_SOURCE": "s3"}), WithoutSystemEnv(), WithEnvFile(""))
	var vErr *ValidationError
	if !errors.As(err, &vErr) || !reflect.DeepEqual(vErr.Fields(), []string{"Pages.Source"}) {
		t.Fatalf("expected Pages.Source validation error, got %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# local\nexport LANDING_PAGES_DIR=\"/srv/pages\"\nLANDING_PAGES_WATCH=true\nbroken line\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(context.Background(), WithoutSystemEnv(), WithEnvFile(path),
		WithEnvMap(map[string]string{"LANDING_PAGES_WATCH": "false"}))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Pages.Dir != "/srv/pages" {
		t.Errorf("expected dir from .env, got %s", cfg.Pages.Dir)
	}
	if cfg.Pages.Watch {
		t.Errorf("env map should override .env values")
	}
}
