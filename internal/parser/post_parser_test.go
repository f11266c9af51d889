package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"campana/internal/codebook"
	"campana/internal/dates"
)

func newWorkbook(t *testing.T, sheet string, rows [][]any) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			t.Fatalf("rename sheet: %v", err)
		}
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row %d: %v", i+1, err)
		}
	}
	return f
}

func TestPostParser_CodedSheet(t *testing.T) {
	t.Parallel()

	f := newWorkbook(t, "2023", [][]any{
		{"Nº Publi", "Candidato", "Fecha", "Aparición del líder", "Tipo de propaganda", "Observaciones"},
		{"1", "Ana", "12 de octubre", "1", "1-3", "mitin"},
		{"", "", "", "", "", ""},
		{"2", "Luis", "", "2", "9", ""},
	})

	data, err := NewPostParser(f, codebook.Default()).ParseSheet("2023")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if data.Recognition.SheetType != SheetTypeCoded {
		t.Fatalf("unexpected type: %s", data.Recognition.SheetType)
	}
	if len(data.Posts) != 2 || data.SkippedRows != 1 {
		t.Fatalf("posts=%d skipped=%d", len(data.Posts), data.SkippedRows)
	}

	first := data.Posts[0]
	if first.RowNo != 2 || first.Number != "1" || first.Candidate != "Ana" {
		t.Fatalf("unexpected first post: %+v", first)
	}
	if first.RawDate != dates.Text("12 de octubre") {
		t.Fatalf("unexpected raw date: %+v", first.RawDate)
	}
	if first.Codes["Tipo de propaganda"] != "1-3" {
		t.Fatalf("unexpected codes: %v", first.Codes)
	}
	for col, want := range map[string]int{
		"tipo_de_propaganda__propaganda_de_afirmacion": 1,
		"tipo_de_propaganda__propaganda_de_negacion":   0,
		"tipo_de_propaganda__propaganda_de_reaccion":   1,
		"aparicion_del_lider__si":                      1,
		"aparicion_del_lider__no":                      0,
	} {
		if got := first.Indicator(col); got != want {
			t.Fatalf("indicator %s=%d want=%d", col, got, want)
		}
	}
	if first.Fields["Observaciones"] != "mitin" {
		t.Fatalf("passthrough field lost: %v", first.Fields)
	}

	second := data.Posts[1]
	if second.RowNo != 4 {
		t.Fatalf("row number should follow the sheet, got %d", second.RowNo)
	}
	if second.RawDate != dates.Missing {
		t.Fatalf("blank date should be missing, got %+v", second.RawDate)
	}

	var unknownWarn, missingVarWarn bool
	for _, w := range data.Warnings {
		if strings.HasPrefix(w, "Tipo de propaganda:") {
			unknownWarn = true
		}
		if strings.Contains(w, "Imagen corporativa") {
			missingVarWarn = true
		}
	}
	if !unknownWarn || !missingVarWarn {
		t.Fatalf("missing warnings: %v", data.Warnings)
	}

	// 只包含出现的变量，按编码表顺序展开
	if len(data.DummyColumns) != 3+4 {
		t.Fatalf("unexpected dummy columns: %v", data.DummyColumns)
	}
	if data.DummyColumns[0] != "aparicion_del_lider__si" {
		t.Fatalf("unexpected first dummy column: %s", data.DummyColumns[0])
	}
}

func TestPostParser_RecodedSheet(t *testing.T) {
	t.Parallel()

	f := newWorkbook(t, "Datos", [][]any{
		{"Candidato", "Fecha", "Fecha_convertida", "Aparición del líder", "aparicion_del_lider__si", "aparicion_del_lider__no"},
		{"Ana", "3 nov", "2023-11-03", "1", "1", "0"},
		{"Luis", "5 de enero", "2024-01-05", "2", "0.0", "1.0"},
	})

	data, err := NewPostParser(f, codebook.Default()).ParseSheet("Datos")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if data.Recognition.SheetType != SheetTypeRecoded {
		t.Fatalf("unexpected type: %s", data.Recognition.SheetType)
	}

	want := []string{"aparicion_del_lider__si", "aparicion_del_lider__no"}
	if strings.Join(data.DummyColumns, ",") != strings.Join(want, ",") {
		t.Fatalf("dummy columns=%v want=%v", data.DummyColumns, want)
	}

	p := data.Posts[1]
	if p.Indicator("aparicion_del_lider__si") != 0 || p.Indicator("aparicion_del_lider__no") != 1 {
		t.Fatalf("unexpected indicators: %v", p.Indicators)
	}
	if len(p.Codes) != 0 {
		t.Fatalf("recoded sheet should not expand codes: %v", p.Codes)
	}
	if _, ok := p.Fields["Fecha_convertida"]; ok {
		t.Fatalf("derived column should be dropped: %v", p.Fields)
	}
	if p.Fields["Aparición del líder"] != "2" {
		t.Fatalf("code column should pass through: %v", p.Fields)
	}
}

func TestPostParser_UnknownSheet(t *testing.T) {
	t.Parallel()

	f := newWorkbook(t, "Notas", [][]any{
		{"Autor", "Comentario"},
		{"x", "y"},
	})
	_, err := NewPostParser(f, codebook.Default()).ParseSheet("Notas")
	if !errors.Is(err, ErrUnrecognizedSheet) {
		t.Fatalf("expected ErrUnrecognizedSheet, got %v", err)
	}
}
