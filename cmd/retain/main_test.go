package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/retain/internal/config"
	"github.com/vango-dev/retain/internal/demo"
	"github.com/vango-dev/retain/pkg/component"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRenderToStdout(t *testing.T) {
	dir := t.TempDir()
	out, _, err := run(t, "render", "-c", dir, "--out", "-", "--title", "Hi", "--todo", "milk")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	for _, want := range []string{"<title>Hi</title>", "<h1>Hi</h1>", "milk"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site", "index.html")
	if _, _, err := run(t, "render", "-c", dir, "--out", path); err != nil {
		t.Fatalf("render error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `class="summary"`) {
		t.Errorf("file missing summary:\n%s", data)
	}
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := run(t, "init", "-c", dir); err != nil {
		t.Fatalf("init error = %v", err)
	}
	cfg, err := config.LoadFile(filepath.Join(dir, config.ConfigFileName))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Server.Port != config.DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Server.Port, config.DefaultPort)
	}

	if _, _, err := run(t, "init", "-c", dir); err == nil {
		t.Error("second init succeeded, want error")
	}
	if _, _, err := run(t, "init", "-c", dir, "--force"); err != nil {
		t.Errorf("init --force error = %v", err)
	}
}

func TestBadConfig(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte("{"), 0o644)
	if _, _, err := run(t, "render", "-c", dir, "--out", ""); err == nil {
		t.Error("render with broken config succeeded, want error")
	}
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version", "--short")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version = %q, want %q", out, version)
	}
}

func TestNewServerServesPage(t *testing.T) {
	cfg := config.New()
	var logs bytes.Buffer
	srv := newServer(cfg, "Served", func() component.Prefab { return demo.Page("Served") }, &logs)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<title>Served</title>") {
		t.Errorf("page missing title:\n%s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, cfg.Telemetry.MetricsPath, nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Errorf("metrics status = %d, want 200 with go collector", rec.Code)
	}
}
