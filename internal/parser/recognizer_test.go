package parser

import (
	"testing"

	"campana/internal/codebook"
)

var codedHeaders = []string{
	"Nº Publi", "Candidato", "Fecha",
	"Contenido visual del post", "Formato del contenido", "Aparición del líder",
	"Aparición de terceras personas", "Contexto de la imagen", "Imagen corporativa",
	"Tipo de propaganda", "Recursos de propaganda según el Institute for propaganda",
	"Reglas de la propaganda según Domenach",
}

func TestSheetRecognizer_Coded(t *testing.T) {
	t.Parallel()

	r := NewSheetRecognizer(codebook.Default())
	res := r.Recognize("Hoja1", codedHeaders)
	if res.SheetType != SheetTypeCoded {
		t.Fatalf("type=%s conf=%.2f want coded", res.SheetType, res.Confidence)
	}
	if res.Variables != 9 || res.Confidence < 0.99 {
		t.Fatalf("unexpected recognition: %+v", res)
	}
}

func TestSheetRecognizer_Recoded(t *testing.T) {
	t.Parallel()

	r := NewSheetRecognizer(codebook.Default())
	res := r.Recognize("Datos", []string{
		"Candidato", "Fecha", "Fecha_convertida",
		"aparicion_del_lider__si", "aparicion_del_lider__no",
	})
	if res.SheetType != SheetTypeRecoded {
		t.Fatalf("type=%s want recoded", res.SheetType)
	}
	if res.Indicators != 2 || res.Confidence < 0.99 {
		t.Fatalf("unexpected recognition: %+v", res)
	}
}

func TestSheetRecognizer_Unknown(t *testing.T) {
	t.Parallel()

	r := NewSheetRecognizer(codebook.Default())
	cases := map[string][]string{
		"Notas":   {"Autor", "Comentario"},
		"Resumen": {"Tipo de propaganda", "Total"},
		"Vacía":   nil,
	}
	for name, headers := range cases {
		if res := r.Recognize(name, headers); res.SheetType != SheetTypeUnknown {
			t.Fatalf("sheet %s type=%s conf=%.2f want unknown", name, res.SheetType, res.Confidence)
		}
	}
}
