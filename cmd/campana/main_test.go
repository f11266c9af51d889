package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"campana/internal/config"
	"campana/internal/dates"
	"campana/internal/exporter"
)

func TestPolicyFlags_Apply(t *testing.T) {
	t.Parallel()

	d := config.DatesConfig{Mode: config.DateModeAcademic, SplitMonth: 9, YearBeforeSplit: 2024, YearFromSplit: 2023}
	if err := (&policyFlags{year: 2025}).apply(&d); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if d.Mode != config.DateModeFixed || d.Year != 2025 {
		t.Fatalf("--year should switch to fixed policy: %+v", d)
	}

	d = config.DatesConfig{Mode: config.DateModeAcademic, SplitMonth: 9, YearBeforeSplit: 2024, YearFromSplit: 2023}
	if err := (&policyFlags{splitMonth: 8}).apply(&d); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if d.SplitMonth != 8 || d.YearBeforeSplit != 2024 {
		t.Fatalf("split flags should merge with config: %+v", d)
	}

	d = config.DatesConfig{Mode: config.DateModeFixed, Year: 2025}
	if err := (&policyFlags{splitMonth: 9, yearBeforeSplit: 2024, yearFromSplit: 2023}).apply(&d); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if d.Mode != config.DateModeAcademic || d.Year != 0 {
		t.Fatalf("split flags should replace fixed policy: %+v", d)
	}

	if err := (&policyFlags{year: 2025, splitMonth: 9}).apply(&d); err == nil {
		t.Fatalf("expected error for conflicting flags")
	}
}

func TestParsePolicyArg(t *testing.T) {
	t.Parallel()

	p, err := parsePolicyArg("academic:9:2024:2023")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Year(time.October) != 2023 || p.Year(time.February) != 2024 {
		t.Fatalf("unexpected policy: %v", p)
	}
	if p, err := parsePolicyArg("fixed:2025"); err != nil || p != (dates.FixedYear{Value: 2025}) {
		t.Fatalf("unexpected fixed policy: %v %v", p, err)
	}
	for _, bad := range []string{"", "fixed", "fixed:x", "academic:13:2024:2023", "lunar:1"} {
		if _, err := parsePolicyArg(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestFilterFlags(t *testing.T) {
	t.Parallel()

	f, err := (&filterFlags{candidate: "Ana", from: "2023-10-01"}).filter()
	if err != nil || f.From == nil || f.From.String() != "2023-10-01" || f.To != nil {
		t.Fatalf("unexpected filter: %+v %v", f, err)
	}
	if _, err := (&filterFlags{category: "si"}).filter(); err == nil {
		t.Fatalf("category without variable should fail")
	}
	if _, err := (&filterFlags{to: "ayer"}).filter(); err == nil {
		t.Fatalf("invalid date should fail")
	}
}

func writeInput(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]any{
		{"Nº Publi", "Candidato", "Fecha", "Aparición del líder", "Tipo de propaganda"},
		{"1", "Ana", "12 de octubre", "1", "1-2"},
		{"2", "Luis", "5 de enero", "2", "3"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	path := filepath.Join(dir, "datos.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("campana %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestCLI_RecodeReportDates(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir)
	cfgPath := filepath.Join(dir, "config.toml")
	cfg := config.DefaultConfig()
	cfg.Data.OutputDir = filepath.Join(dir, "salidas")
	cfg.Dates = config.DatesConfig{Mode: config.DateModeAcademic, SplitMonth: 9, YearBeforeSplit: 2024, YearFromSplit: 2023}
	if err := config.Save(cfg, cfgPath); err != nil {
		t.Fatalf("save config: %v", err)
	}

	recoded := filepath.Join(dir, "recodificado.xlsx")
	runCLI(t, "--config", cfgPath, "recode", "-i", input, "-o", recoded)

	f, err := excelize.OpenFile(recoded)
	if err != nil {
		t.Fatalf("open recoded: %v", err)
	}
	rows, err := f.GetRows(exporter.RecodedSheet)
	_ = f.Close()
	if err != nil || len(rows) != 3 {
		t.Fatalf("unexpected recoded rows: %v %v", rows, err)
	}
	if !strings.Contains(strings.Join(rows[0], ","), "Fecha_convertida") {
		t.Fatalf("missing converted date column: %v", rows[0])
	}

	out := runCLI(t, "--config", cfgPath, "report", "-i", input, "--pdf", "--academic", "-q")
	if !strings.Contains(out, "Archivo guardado") {
		t.Fatalf("unexpected report output: %s", out)
	}
	for _, name := range []string{"analisis-de-campana-electoral.xlsx", "analisis-de-campana-electoral.pdf"} {
		if _, err := os.Stat(filepath.Join(cfg.Data.OutputDir, name)); err != nil {
			t.Fatalf("missing output %s: %v", name, err)
		}
	}

	out = runCLI(t, "--config", cfgPath, "dates", "-i", input, "--compare", "fixed:2025")
	if !strings.Contains(out, "2 fechas cambian") {
		t.Fatalf("unexpected dates output: %s", out)
	}
}

func TestCLI_RequiresDatePolicy(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir)
	cfgPath := filepath.Join(dir, "config.toml")
	if err := config.Save(config.DefaultConfig(), cfgPath); err != nil {
		t.Fatalf("save config: %v", err)
	}

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", cfgPath, "dates", "-i", input})
	if err := root.Execute(); err == nil || !strings.Contains(err.Error(), "not configured") {
		t.Fatalf("expected missing policy error, got %v", err)
	}

	runCLI(t, "--config", cfgPath, "dates", "-i", input, "--year", "2025")
}

func TestCLI_DatesSamplesBeyondDefault(t *testing.T) {
	dir := t.TempDir()
	f := excelize.NewFile()
	header := []any{"Candidato", "Fecha", "Aparición del líder", "Tipo de propaganda"}
	if err := f.SetSheetRow("Sheet1", "A1", &header); err != nil {
		t.Fatalf("set header: %v", err)
	}
	for i := 0; i < 15; i++ {
		row := []any{"Ana", fmt.Sprintf("fecha-mal-%02d", i), "1", "1"}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	input := filepath.Join(dir, "datos.xlsx")
	if err := f.SaveAs(input); err != nil {
		t.Fatalf("save: %v", err)
	}
	_ = f.Close()

	cfgPath := filepath.Join(dir, "config.toml")
	if err := config.Save(config.DefaultConfig(), cfgPath); err != nil {
		t.Fatalf("save config: %v", err)
	}

	countRows := func(out string) int {
		n := 0
		for _, line := range strings.Split(out, "\n") {
			if strings.Contains(line, "fecha-mal-") {
				n++
			}
		}
		return n
	}

	out := runCLI(t, "--config", cfgPath, "dates", "-i", input, "--year", "2025", "--samples", "15")
	if got := countRows(out); got != 15 {
		t.Fatalf("expected 15 failure samples, got %d\n%s", got, out)
	}
	out = runCLI(t, "--config", cfgPath, "dates", "-i", input, "--year", "2025", "--samples", "3")
	if got := countRows(out); got != 3 {
		t.Fatalf("expected 3 failure samples, got %d\n%s", got, out)
	}
}
