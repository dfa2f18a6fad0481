package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".parex.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestManager_Load(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
		wantThreads   int
		wantLimit     int
		wantMaxDepth  int
		wantTimeout   time.Duration
		wantFormat    string
	}{
		{
			name: "full config",
			configContent: `
defaults:
  threads: 3
  limit: 25
  maxDepth: 4
  outputFormat: json
  timeout: 90s
kube:
  context: prod
  namespaces: [default, kube-system]
sql:
  dsn: file:catalogue.db
  table: documents
`,
			wantThreads:  3,
			wantLimit:    25,
			wantMaxDepth: 4,
			wantTimeout:  90 * time.Second,
			wantFormat:   "json",
		},
		{
			name: "explicit zero limit is kept",
			configContent: `
defaults:
  limit: 0
`,
			wantThreads:  runtime.NumCPU(),
			wantLimit:    0,
			wantMaxDepth: -1,
			wantFormat:   "table",
		},
		{
			name:          "empty config",
			configContent: "",
			wantThreads:   runtime.NumCPU(),
			wantLimit:     -1,
			wantMaxDepth:  -1,
			wantFormat:    "table",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := NewManager(writeConfig(t, tt.configContent))
			config, err := manager.Load()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			d := config.Defaults
			if d.Threads != tt.wantThreads {
				t.Errorf("got threads %d, want %d", d.Threads, tt.wantThreads)
			}
			if d.Limit != tt.wantLimit {
				t.Errorf("got limit %d, want %d", d.Limit, tt.wantLimit)
			}
			if d.MaxDepth != tt.wantMaxDepth {
				t.Errorf("got max depth %d, want %d", d.MaxDepth, tt.wantMaxDepth)
			}
			if d.Timeout != tt.wantTimeout {
				t.Errorf("got timeout %v, want %v", d.Timeout, tt.wantTimeout)
			}
			if d.OutputFormat != tt.wantFormat {
				t.Errorf("got format %q, want %q", d.OutputFormat, tt.wantFormat)
			}
			if config.SQL.Driver != "sqlite" || config.SQL.PathColumn != "path" {
				t.Errorf("expected sql defaults, got %+v", config.SQL)
			}
			if manager.GetConfig() != config {
				t.Error("GetConfig should return the loaded config")
			}
		})
	}
}

func TestManager_LoadSections(t *testing.T) {
	manager := NewManager(writeConfig(t, `
kube:
  kubeconfig: /tmp/kubeconfig
  context: prod
  namespaces: [default, kube-system]
sql:
  driver: sqlite
  dsn: file:catalogue.db
  table: documents
  depthColumn: level
`))
	config, err := manager.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.Kube.Context != "prod" || len(config.Kube.Namespaces) != 2 {
		t.Errorf("unexpected kube section %+v", config.Kube)
	}
	if config.SQL.Table != "documents" || config.SQL.DepthColumn != "level" || config.SQL.NameColumn != "name" {
		t.Errorf("unexpected sql section %+v", config.SQL)
	}
}

func TestManager_LoadMissingFile(t *testing.T) {
	manager := NewManager(filepath.Join(t.TempDir(), "missing.yaml"))
	config, err := manager.Load()
	if err != nil {
		t.Fatalf("a missing file should not be an error: %v", err)
	}
	if config.Defaults.Limit != -1 {
		t.Errorf("expected default limit, got %d", config.Defaults.Limit)
	}
}

func TestManager_LoadInvalidFile(t *testing.T) {
	manager := NewManager(writeConfig(t, "defaults: [unclosed"))
	if _, err := manager.Load(); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestManager_Env(t *testing.T) {
	t.Setenv("PAREX_DEFAULTS_THREADS", "7")

	manager := NewManager(writeConfig(t, ""))
	config, err := manager.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Defaults.Threads != 7 {
		t.Errorf("expected threads from env, got %d", config.Defaults.Threads)
	}
}

func TestManager_SetAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	manager := NewManager(path)
	if _, err := manager.Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := manager.Set("defaults.threads", 12); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}
	if err := manager.Set("sql.table", "documents"); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}
	if manager.GetConfig().Defaults.Threads != 12 {
		t.Errorf("expected threads 12 after set, got %d", manager.GetConfig().Defaults.Threads)
	}

	if err := manager.Save(); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	reloaded, err := NewManager(path).Load()
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if reloaded.Defaults.Threads != 12 || reloaded.SQL.Table != "documents" {
		t.Errorf("saved values not reloaded: %+v", reloaded)
	}

	got, err := manager.Path()
	if err != nil || got != path {
		t.Errorf("expected path %s, got %s (%v)", path, got, err)
	}
}

func TestManager_BindFlag(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("threads", 1, "")
	flags.Int("limit", -1, "")
	if err := flags.Parse([]string{"--threads", "9"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	manager := NewManager(writeConfig(t, `
defaults:
  threads: 2
  limit: 5
`))
	if err := manager.BindFlag("defaults.threads", flags.Lookup("threads")); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if err := manager.BindFlag("defaults.limit", flags.Lookup("limit")); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if err := manager.BindFlag("defaults.maxDepth", nil); err == nil {
		t.Error("expected error binding a nil flag")
	}

	config, err := manager.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Defaults.Threads != 9 {
		t.Errorf("expected the set flag to win, got %d", config.Defaults.Threads)
	}
	if config.Defaults.Limit != 5 {
		t.Errorf("expected the file to win over an unset flag, got %d", config.Defaults.Limit)
	}
}
