package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "")

	tests := []struct {
		name    string
		config  string
		noFile  bool
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:   "missing file gives defaults",
			noFile: true,
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				def := Default()
				if cfg.Token != "" {
					t.Errorf("Token = %q, want empty", cfg.Token)
				}
				if cfg.Icons != def.Icons {
					t.Errorf("Icons = %+v, want %+v", cfg.Icons, def.Icons)
				}
				if cfg.AlertsEnabled() {
					t.Error("alerts enabled by default")
				}
			},
		},
		{
			name: "overrides keep other defaults",
			config: `
token = " abc "
guild = "1"
voice = "2"
video = "3"
alerts = "4"

[icons]
used_dir = "icons/used"
max_delay_hours = 6
`,
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				if cfg.Token != "abc" {
					t.Errorf("Token = %q, want trimmed abc", cfg.Token)
				}
				if cfg.Guild != "1" || cfg.Voice != "2" || cfg.Video != "3" || cfg.Alerts != "4" {
					t.Errorf("ids = %q %q %q %q", cfg.Guild, cfg.Voice, cfg.Video, cfg.Alerts)
				}
				if cfg.Icons.Dir != "icons" {
					t.Errorf("Icons.Dir = %q, want default icons", cfg.Icons.Dir)
				}
				if cfg.Icons.MinDelayHours != 12 || cfg.Icons.MaxDelayHours != 6 {
					t.Errorf("delays = %d..%d", cfg.Icons.MinDelayHours, cfg.Icons.MaxDelayHours)
				}
				if !cfg.RotationEnabled() || !cfg.AlertsEnabled() {
					t.Error("rotation and alerts should be enabled")
				}
			},
		},
		{
			name:    "malformed toml",
			config:  "token = [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if !tt.noFile {
				path = writeConfig(t, tt.config)
			}
			cfg, err := Load(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadEnvToken(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "from-env")
	cfg, err := Load(writeConfig(t, `token = "from-file"`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Token != "from-env" {
		t.Errorf("Token = %q, want from-env", cfg.Token)
	}
}

func TestSaveWritesTemplate(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "")
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := Default().Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Icons != Default().Icons || cfg.Alerts != NoRole {
		t.Errorf("template did not keep defaults: %+v", cfg)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("leftover temp files: %d entries", len(entries))
	}
}

func TestResolve(t *testing.T) {
	t.Setenv("VOICEGATE_CONFIG", "")
	if got := Resolve(""); got != DefaultPath {
		t.Errorf("Resolve = %q, want %q", got, DefaultPath)
	}
	t.Setenv("VOICEGATE_CONFIG", "/etc/voicegate.toml")
	if got := Resolve(""); got != "/etc/voicegate.toml" {
		t.Errorf("Resolve = %q", got)
	}
	if got := Resolve("x.toml"); got != "x.toml" {
		t.Errorf("Resolve flag = %q", got)
	}
}

func TestReloadSwapsSnapshot(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "")
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	path := writeConfig(t, "token = \"t\"\nguild = \"g\"\n[icons]\nmax_delay_hours = 5\n")
	first, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	store := NewStore(first)

	if err := os.WriteFile(path, []byte("token = \"other\"\nguild = \"g2\"\n[icons]\nmax_delay_hours = 9\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := Reload(path, store, log); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	got := store.Snapshot()
	if got == first {
		t.Fatal("snapshot not swapped")
	}
	if got.Icons.MaxDelayHours != 9 {
		t.Errorf("MaxDelayHours = %d, want 9", got.Icons.MaxDelayHours)
	}
	if got.Token != "t" || got.Guild != "g" {
		t.Errorf("token/guild changed in place: %q %q", got.Token, got.Guild)
	}
	if first.Icons.MaxDelayHours != 5 {
		t.Error("previous snapshot was mutated")
	}

	if err := os.WriteFile(path, []byte("["), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := Reload(path, store, log); err == nil {
		t.Fatal("expected parse error")
	}
	if store.Snapshot() != got {
		t.Error("bad reload replaced snapshot")
	}
}
