package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Fatalf("expected default ttl 24h, got %s", cfg.JWTTTL)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("addr = %q", cfg.Addr())
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("PET_MARKET_UNUSED=1\nRATE_LIMIT_RPS=7\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("RATE_LIMIT_RPS", "")
	os.Unsetenv("RATE_LIMIT_RPS")
	t.Cleanup(func() { os.Unsetenv("PET_MARKET_UNUSED") })

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RateLimitRPS != 7 {
		t.Fatalf("expected rps from .env, got %d", cfg.RateLimitRPS)
	}
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing file should be ignored: %v", err)
	}
}

func TestLoadParseError(t *testing.T) {
	t.Setenv("JWT_TTL", "forever")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadAdminEmails(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", "root@example.com,ops@example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.AdminEmails) != 2 || cfg.AdminEmails[1] != "ops@example.com" {
		t.Fatalf("unexpected admin emails %v", cfg.AdminEmails)
	}
}

func TestDevAuth(t *testing.T) {
	if !(Config{}).DevAuth() {
		t.Fatal("empty config should be dev auth")
	}
	if (Config{JWTSecret: "s"}).DevAuth() {
		t.Fatal("jwt secret disables dev auth")
	}
}
