package healthcheck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/w3c/specfacts/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.CacheDir = filepath.Join(t.TempDir(), "cache")
	return cfg
}

func checkByName(t *testing.T, result *Result, name string) CheckStatus {
	t.Helper()
	for _, c := range result.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no %q check in result", name)
	return CheckStatus{}
}

func TestCheckWithNilConfig(t *testing.T) {
	_, err := Check(nil, "")
	if err == nil {
		t.Error("Expected error for nil config, got nil")
	}
}

func TestCheckHealthyConfig(t *testing.T) {
	cfg := testConfig(t)

	result, err := Check(cfg, "")
	if err != nil {
		t.Fatalf("Check() failed: %v", err)
	}

	if !result.Healthy() {
		t.Errorf("Healthy() = false, checks: %+v", result.Checks)
	}

	if c := checkByName(t, result, "config"); c.Status != "ok" {
		t.Errorf("config check = %q, want ok (%s)", c.Status, c.Detail)
	}
	if c := checkByName(t, result, "cache dir"); c.Status != "ok" {
		t.Errorf("cache dir check = %q, want ok (%s)", c.Status, c.Detail)
	}
	if c := checkByName(t, result, "cache file"); c.Status != "ok" || c.Detail != "no cache yet" {
		t.Errorf("cache file check = %q/%q, want ok/no cache yet", c.Status, c.Detail)
	}
}

func TestCheckInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.OutputFormat = "xml"

	result, err := Check(cfg, "")
	if err != nil {
		t.Fatalf("Check() failed: %v", err)
	}

	if result.Healthy() {
		t.Error("Healthy() = true, want false for invalid config")
	}
	if c := checkByName(t, result, "config"); c.Status != "error" {
		t.Errorf("config check = %q, want error", c.Status)
	}
}

func TestCheckReportsCacheFile(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(cfg.CacheDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.CacheFile(), []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := Check(cfg, "")
	if err != nil {
		t.Fatalf("Check() failed: %v", err)
	}

	c := checkByName(t, result, "cache file")
	if c.Status != "ok" || c.Detail == "no cache yet" {
		t.Errorf("cache file check = %q/%q, want size detail", c.Status, c.Detail)
	}
}

func TestCheckWarnsOnExcessiveJobs(t *testing.T) {
	cfg := testConfig(t)
	cfg.Jobs = 100000

	result, err := Check(cfg, "")
	if err != nil {
		t.Fatalf("Check() failed: %v", err)
	}

	if c := checkByName(t, result, "jobs"); c.Status != "warn" {
		t.Errorf("jobs check = %q, want warn", c.Status)
	}
	// a warning alone keeps the install healthy
	if !result.Healthy() {
		t.Error("Healthy() = false, want true with only warnings")
	}
}

func TestScopeFromPath(t *testing.T) {
	if got := scopeFromPath(""); got != "" {
		t.Errorf("scopeFromPath(\"\") = %q, want empty", got)
	}
	if got := scopeFromPath(filepath.Join(".specfacts", "config.yaml")); got != "project" {
		t.Errorf("scopeFromPath(project path) = %q, want project", got)
	}
	home, err := os.UserHomeDir()
	if err == nil {
		globalPath := filepath.Join(home, ".specfacts", "config.yaml")
		if got := scopeFromPath(globalPath); got != "global" {
			t.Errorf("scopeFromPath(global path) = %q, want global", got)
		}
	}
}
