package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/playoff-picture/internal/schedule"
	"github.com/pfrederiksen/playoff-picture/internal/scraper"
	"github.com/pfrederiksen/playoff-picture/internal/standings"
)

// isolate points HOME at an empty directory so the user's real config
// file is never read.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(New(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Sources.StandingsURL != standings.DefaultURL {
		t.Errorf("StandingsURL = %q", cfg.Sources.StandingsURL)
	}
	if cfg.Sources.ScheduleURL != schedule.DefaultURLTemplate {
		t.Errorf("ScheduleURL = %q", cfg.Sources.ScheduleURL)
	}
	if strings.Join(cfg.Sources.Weeks, ",") != "REG15,REG16,REG17,REG18" {
		t.Errorf("Weeks = %v", cfg.Sources.Weeks)
	}
	if cfg.HTTP.Timeout != scraper.Timeout {
		t.Errorf("HTTP.Timeout = %v", cfg.HTTP.Timeout)
	}
	if cfg.Render.SettleTimeout != scraper.DefaultSettleTimeout || cfg.Render.PollInterval != scraper.DefaultPollInterval {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.Log.Level != "info" || cfg.Log.MaxSize != 10 || cfg.Log.MaxBackups != 5 {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
sources:
  playoff_url: testdata/playoff.json
  weeks: [REG17, REG18]
http:
  timeout: 15s
render:
  settle_timeout: 2s
log:
  level: debug
`)

	cfg, err := Load(New(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Sources.PlayoffURL != "testdata/playoff.json" {
		t.Errorf("PlayoffURL = %q", cfg.Sources.PlayoffURL)
	}
	if len(cfg.Sources.Weeks) != 2 || cfg.Sources.Weeks[0] != "REG17" {
		t.Errorf("Weeks = %v", cfg.Sources.Weeks)
	}
	if cfg.HTTP.Timeout != 15*time.Second || cfg.Render.SettleTimeout != 2*time.Second {
		t.Errorf("durations = %v / %v", cfg.HTTP.Timeout, cfg.Render.SettleTimeout)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	// untouched keys keep their defaults
	if cfg.Sources.RankingsURL != DefaultRankingsURL {
		t.Errorf("RankingsURL = %q", cfg.Sources.RankingsURL)
	}
}

func TestLoad_DefaultPath(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".config", "playoff-picture")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("data:\n  dir: /srv/playoff\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(New(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Data.Dir != "/srv/playoff" {
		t.Errorf("Data.Dir = %q", cfg.Data.Dir)
	}
}

func TestLoad_Env(t *testing.T) {
	isolate(t)
	t.Setenv("PLAYOFF_LOG_LEVEL", "warn")
	t.Setenv("PLAYOFF_RENDER_POLL_INTERVAL", "100ms")
	t.Setenv("PLAYOFF_OUTPUT_PATH", "/tmp/out.json")

	path := writeConfig(t, "log:\n  level: debug\n")
	cfg, err := Load(New(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("env should override file: Log.Level = %q", cfg.Log.Level)
	}
	if cfg.Render.PollInterval != 100*time.Millisecond {
		t.Errorf("PollInterval = %v", cfg.Render.PollInterval)
	}
	if cfg.Output.Path != "/tmp/out.json" {
		t.Errorf("Output.Path = %q", cfg.Output.Path)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	if _, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() error = nil, want error for missing explicit file")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "zero settle timeout",
			content: "render:\n  settle_timeout: 0s\n",
			wantErr: KeySettleTimeout,
		},
		{
			name:    "bad week",
			content: "sources:\n  weeks: [WILDCARD]\n",
			wantErr: KeyWeeks,
		},
		{
			name:    "schedule url without week",
			content: "sources:\n  schedule_url: https://example.com/schedule\n",
			wantErr: "%s",
		},
		{
			name:    "empty playoff url",
			content: "sources:\n  playoff_url: \"\"\n",
			wantErr: KeyPlayoffURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, err := Load(New(), writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() error = nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestScraperOptions(t *testing.T) {
	cfg := &Config{
		HTTP:   HTTP{Timeout: time.Second, UserAgent: "ua"},
		Render: Render{SettleTimeout: 2 * time.Second, PollInterval: 50 * time.Millisecond},
	}
	got := cfg.ScraperOptions()
	want := scraper.Options{Timeout: time.Second, UserAgent: "ua", SettleTimeout: 2 * time.Second, PollInterval: 50 * time.Millisecond}
	if got != want {
		t.Errorf("ScraperOptions() = %+v, want %+v", got, want)
	}
}
