package codebook

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestCleanLabel(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"Aparición del líder", "aparicion_del_lider"},
		{"Recursos de propaganda según el Institute for propaganda", "recursos_de_propaganda_segun_el_institute_for_propaganda"},
		{"Candidato/rival", "candidato_rival"},
		{"  Sí ", "si"},
		{"Vía pública", "via_publica"},
		{"Música del partido", "musica_del_partido"},
	}
	for _, c := range cases {
		if got := CleanLabel(c.in); got != c.want {
			t.Fatalf("CleanLabel(%q) want=%q got=%q", c.in, c.want, got)
		}
	}
}

func TestDisplayLabel(t *testing.T) {
	t.Parallel()

	if got := DisplayLabel("formato_del_contenido"); got != "Formato Del Contenido" {
		t.Fatalf("got %q", got)
	}
	if got := DisplayLabel("solo_imagen"); got != "Solo Imagen" {
		t.Fatalf("got %q", got)
	}
}

func TestDummyColumnAndSplit(t *testing.T) {
	t.Parallel()

	col := DummyColumn("Formato del contenido", "Meme")
	if col != "formato_del_contenido__meme" {
		t.Fatalf("col=%q", col)
	}
	v, c, ok := SplitColumn(col)
	if !ok || v != "formato_del_contenido" || c != "meme" {
		t.Fatalf("split=%q %q %v", v, c, ok)
	}
	if _, _, ok := SplitColumn("Candidato"); ok {
		t.Fatalf("plain column should not split")
	}
	if FullLabel(col) != "Formato Del Contenido - Meme" {
		t.Fatalf("full label=%q", FullLabel(col))
	}
}

func TestVariablesAndColumnsOf(t *testing.T) {
	t.Parallel()

	cols := []string{"b__x", "a__y", "b__z", "Candidato"}
	if got := Variables(cols); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("variables=%v", got)
	}
	if got := ColumnsOf(cols, "b"); !reflect.DeepEqual(got, []string{"b__x", "b__z"}) {
		t.Fatalf("columns=%v", got)
	}
}

func TestSplitCodes(t *testing.T) {
	t.Parallel()

	cases := map[string][]string{
		"1-3":     {"1", "3"},
		" 2 - 5 ": {"2", "5"},
		"4.0":     {"4"},
		"1, 2;3":  {"1", "2", "3"},
		"":        nil,
		"nan":     {"nan"},
	}
	for in, want := range cases {
		if got := SplitCodes(in); !reflect.DeepEqual(got, want) {
			t.Fatalf("SplitCodes(%q) want=%v got=%v", in, want, got)
		}
	}
}

func TestVariableExpand(t *testing.T) {
	t.Parallel()

	v, ok := Default().Lookup("aparición DE terceras personas ")
	if !ok {
		t.Fatalf("lookup failed")
	}
	got := v.Expand("2-5")
	if got["aparicion_de_terceras_personas__familiares"] != 1 {
		t.Fatalf("familiares should be 1: %v", got)
	}
	if got["aparicion_de_terceras_personas__votantes"] != 1 {
		t.Fatalf("votantes should be 1: %v", got)
	}
	if got["aparicion_de_terceras_personas__ninguna"] != 0 {
		t.Fatalf("ninguna should be 0: %v", got)
	}
	if len(got) != len(v.Categories) {
		t.Fatalf("every category should be present: %d", len(got))
	}
	if unk := v.Unknown("2-12"); !reflect.DeepEqual(unk, []string{"12"}) {
		t.Fatalf("unknown=%v", unk)
	}
}

func TestDefaultCodebook(t *testing.T) {
	t.Parallel()

	cb := Default()
	if err := cb.Validate(); err != nil {
		t.Fatalf("default codebook invalid: %v", err)
	}
	if len(cb.Variables) != 9 {
		t.Fatalf("variables=%d", len(cb.Variables))
	}
	cols := cb.DummyColumns()
	if len(cols) != 6+7+3+9+6+5+4+7+5 {
		t.Fatalf("dummy columns=%d", len(cols))
	}
	want := "recursos_de_propaganda_segun_el_institute_for_propaganda__plain-folks_(gente_del_pueblo)"
	found := false
	for _, c := range cols {
		if c == want {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing %s", want)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "codebook.toml")
	content := `
[[variables]]
name = "Tono"

  [[variables.categories]]
  code = "1"
  label = "Positivo"

  [[variables.categories]]
  code = "2"
  label = "Negativo"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cb, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := cb.DummyColumns(); !reflect.DeepEqual(got, []string{"tono__positivo", "tono__negativo"}) {
		t.Fatalf("columns=%v", got)
	}
}

func TestValidateRejectsDuplicateCode(t *testing.T) {
	t.Parallel()

	cb := &Codebook{Variables: []Variable{{
		Name:       "Tono",
		Categories: []Category{{Code: "1", Label: "A"}, {Code: "1", Label: "B"}},
	}}}
	if err := cb.Validate(); err == nil {
		t.Fatalf("expected duplicate code error")
	}
}
