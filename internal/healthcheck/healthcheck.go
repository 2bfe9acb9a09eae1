// Package healthcheck verifies that a specfacts installation can actually
// run: the config is valid and the cache location is usable.
package healthcheck

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/w3c/specfacts/internal/config"
)

// CheckStatus is the outcome of a single doctor check.
type CheckStatus struct {
	Name   string // what was checked
	Status string // "ok", "warn" or "error"
	Detail string
}

// Result contains the full doctor output for display.
type Result struct {
	ConfigPath  string
	ConfigScope string // "global" or "project"
	Checks      []CheckStatus
}

// Healthy reports whether no check errored. Warnings do not count.
func (r *Result) Healthy() bool {
	for _, c := range r.Checks {
		if c.Status == "error" {
			return false
		}
	}
	return true
}

// Check runs all doctor checks against the given config.
// configPath is the config file actually in use (may be empty when
// running on defaults only).
func Check(cfg *config.Config, configPath string) (*Result, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	result := &Result{
		ConfigPath:  configPath,
		ConfigScope: scopeFromPath(configPath),
	}

	result.Checks = append(result.Checks, checkConfig(cfg))
	result.Checks = append(result.Checks, checkCacheDir(cfg))
	result.Checks = append(result.Checks, checkCacheFile(cfg))
	result.Checks = append(result.Checks, checkJobs(cfg))

	return result, nil
}

// scopeFromPath determines "global" or "project" scope from a config file path.
// Returns empty string if path is empty.
func scopeFromPath(path string) string {
	if path == "" {
		return ""
	}

	home, err := os.UserHomeDir()
	if err == nil {
		globalDir := filepath.Join(home, ".specfacts")
		if strings.HasPrefix(path, globalDir) {
			return "global"
		}
	}

	return "project"
}

// checkConfig validates the config values themselves.
func checkConfig(cfg *config.Config) CheckStatus {
	status := CheckStatus{Name: "config"}

	if err := cfg.Validate(); err != nil {
		status.Status = "error"
		status.Detail = err.Error()
		return status
	}

	status.Status = "ok"
	status.Detail = fmt.Sprintf("output %s, %d jobs", cfg.OutputFormat, cfg.Jobs)
	return status
}

// checkCacheDir verifies the cache directory exists (or can be created)
// and is writable.
func checkCacheDir(cfg *config.Config) CheckStatus {
	status := CheckStatus{Name: "cache dir"}

	if err := os.MkdirAll(cfg.CacheDir, 0755); err != nil {
		status.Status = "error"
		status.Detail = fmt.Sprintf("cannot create %s: %v", cfg.CacheDir, err)
		return status
	}

	probe, err := os.CreateTemp(cfg.CacheDir, ".doctor-*")
	if err != nil {
		status.Status = "error"
		status.Detail = fmt.Sprintf("%s is not writable: %v", cfg.CacheDir, err)
		return status
	}
	probe.Close()
	os.Remove(probe.Name())

	status.Status = "ok"
	status.Detail = cfg.CacheDir
	return status
}

// checkCacheFile reports on the persisted extract cache, if any.
func checkCacheFile(cfg *config.Config) CheckStatus {
	status := CheckStatus{Name: "cache file"}

	info, err := os.Stat(cfg.CacheFile())
	if err != nil {
		if os.IsNotExist(err) {
			status.Status = "ok"
			status.Detail = "no cache yet"
			return status
		}
		status.Status = "error"
		status.Detail = err.Error()
		return status
	}

	status.Status = "ok"
	status.Detail = fmt.Sprintf("%d bytes, modified %s", info.Size(), info.ModTime().Format("2006-01-02 15:04:05"))
	return status
}

// checkJobs flags worker counts far beyond the machine's parallelism.
func checkJobs(cfg *config.Config) CheckStatus {
	status := CheckStatus{Name: "jobs"}

	cpus := runtime.NumCPU()
	if cfg.Jobs > cpus*4 {
		status.Status = "warn"
		status.Detail = fmt.Sprintf("%d jobs on %d CPUs", cfg.Jobs, cpus)
		return status
	}

	status.Status = "ok"
	status.Detail = fmt.Sprintf("%d", cfg.Jobs)
	return status
}
