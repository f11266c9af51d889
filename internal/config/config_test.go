package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"campana/internal/dates"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[server]
host = "127.0.0.1"
port = 8080

[data]
input = "campana.xlsx"
output_dir = "out"
sheets = ["2023", "2024"]

[dates]
mode = "academic"
split_month = 9
year_before_split = 2024
year_from_split = 2023

[report]
academic = true
decimals = 2
top_n = 5
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Data.Input != "campana.xlsx" || len(cfg.Data.Sheets) != 2 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if !cfg.Report.Format().Academic || cfg.Report.TopN != 5 {
		t.Fatalf("unexpected report config: %+v", cfg.Report)
	}

	p, err := cfg.Dates.Policy()
	if err != nil {
		t.Fatalf("policy: %v", err)
	}
	split, ok := p.(dates.AcademicSplit)
	if !ok || split.SplitMonth != time.September || split.Year(time.October) != 2023 || split.Year(time.January) != 2024 {
		t.Fatalf("unexpected policy: %#v", p)
	}
}

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("CAMPANA_INPUT", "otro.xlsx")
	t.Setenv("CAMPANA_OUTPUT_DIR", "/tmp/salidas")

	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Data.Input != "otro.xlsx" || cfg.Data.OutputDir != "/tmp/salidas" {
		t.Fatalf("env override not applied: %+v", cfg.Data)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Fatalf("dashboard should bind to loopback by default: %s", cfg.Server.Host)
	}
	if _, err := cfg.Dates.Policy(); !errors.Is(err, ErrDatePolicyUnset) {
		t.Fatalf("expected ErrDatePolicyUnset, got %v", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("explicit missing config should fail")
	}
	if _, err := Load(writeConfig(t, "[server\nport = 1")); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := Load(writeConfig(t, "[dates]\nmode = \"lunar\"")); err == nil {
		t.Fatalf("expected validation error for unknown mode")
	}
	if _, err := Load(writeConfig(t, "[report]\ndecimals = 9")); err == nil {
		t.Fatalf("expected validation error for decimals")
	}
}

func TestDatesConfig_Policy(t *testing.T) {
	t.Parallel()

	p, err := DatesConfig{Mode: "FIXED", Year: 2025}.Policy()
	if err != nil || p.Year(time.March) != 2025 {
		t.Fatalf("fixed policy: %v %v", p, err)
	}
	if _, err := (DatesConfig{Mode: DateModeFixed}).Policy(); err == nil {
		t.Fatalf("fixed mode without year should fail")
	}
	if _, err := (DatesConfig{Mode: DateModeAcademic, SplitMonth: 9}).Policy(); err == nil {
		t.Fatalf("academic mode without years should fail")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	cfg.Dates = DatesConfig{Mode: DateModeFixed, Year: 2025}
	if err := Save(cfg, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Dates.Mode != DateModeFixed || loaded.Dates.Year != 2025 {
		t.Fatalf("unexpected dates config: %+v", loaded.Dates)
	}
}
