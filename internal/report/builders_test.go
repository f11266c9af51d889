package report

import (
	"strings"
	"testing"

	"campana/internal/analysis"
	"campana/internal/codebook"
	"campana/internal/dates"
	"campana/internal/model"
)

func newPost(candidate, date string, on ...string) *model.Post {
	p := model.NewPost("test", 0)
	p.Candidate = candidate
	for _, col := range on {
		p.Indicators[col] = 1
	}
	if date != "" {
		d, err := dates.ParseISO(date)
		if err != nil {
			panic(err)
		}
		p.SetDate(d, nil)
	}
	return p
}

func TestTopPerCandidateTable_Separators(t *testing.T) {
	t.Parallel()

	tops := []analysis.CandidateRanking{
		{Candidate: "Ana", Rankings: []analysis.Ranking{{Variable: "V", Category: "A", Uses: 2, Percent: 50}, {Variable: "V", Category: "B", Uses: 1, Percent: 25}}},
		{Candidate: "Luis", Rankings: []analysis.Ranking{{Variable: "V", Category: "A", Uses: 1, Percent: 100}}},
	}
	tbl := TopPerCandidateTable(tops)
	if tbl.Len() != 4 {
		t.Fatalf("unexpected rows: %d", tbl.Len())
	}
	rows := tbl.Strings(DefaultFormat())
	if rows[0][0] != "Ana" || rows[1][0] != "" || rows[2][0] != separator || rows[3][0] != "Luis" {
		t.Fatalf("unexpected candidate column: %v", rows)
	}
}

func TestCrosstabTable_Margins(t *testing.T) {
	t.Parallel()

	col := "aparicion_del_lider__si"
	posts := []*model.Post{
		newPost("Ana", "", col), newPost("Ana", "", col), newPost("Ana", ""),
		newPost("Luis", "", col), newPost("Luis", ""), newPost("Luis", ""),
	}
	res := analysis.Crosstab(posts, analysis.IndicatorField(col), analysis.CandidateField())
	tbl := CrosstabTable(res, "Líder", "Candidato")

	if strings.Join(tbl.Columns, ",") != "Líder,Ana,Luis,Total" {
		t.Fatalf("unexpected columns: %v", tbl.Columns)
	}
	rows := tbl.Strings(DefaultFormat())
	last := rows[len(rows)-1]
	if strings.Join(last, ",") != "Total,3,3,6" {
		t.Fatalf("unexpected total row: %v", last)
	}
	if !strings.Contains(tbl.Note, "Yates") || !strings.HasPrefix(tbl.Note, "Chi-cuadrado(1)") {
		t.Fatalf("unexpected note: %q", tbl.Note)
	}

	pct := CrosstabPercentTable(res, "Líder", "Candidato")
	if pct.Strings(DefaultFormat())[1][1] != "33.33" {
		t.Fatalf("unexpected percent table: %v", pct.Strings(DefaultFormat()))
	}
}

func TestDateTables(t *testing.T) {
	t.Parallel()

	raws := []dates.Raw{dates.Text("12 de octubre"), dates.Text("sin fecha"), dates.Missing}
	policy := dates.FixedYear{Value: 2023}
	summary := dates.Summarize(dates.NormalizeAll(raws, policy), 5)

	tbl := DateSummaryTable(summary, policy.String())
	rows := tbl.Strings(DefaultFormat())
	if rows[1][1] != "1" || rows[2][1] != "2" {
		t.Fatalf("unexpected summary rows: %v", rows)
	}
	if len(rows) != 5 {
		t.Fatalf("expected one row per failing kind: %v", rows)
	}

	fails := DateFailuresTable(summary.Samples)
	if fails.Len() != 2 || fails.Strings(DefaultFormat())[0][0] != "2" {
		t.Fatalf("unexpected failures: %v", fails.Strings(DefaultFormat()))
	}

	from := dates.AcademicSplit{SplitMonth: 9, YearBeforeSplit: 2024, YearFromSplit: 2023}
	shifts := dates.Compare([]dates.Raw{dates.Text("5 de enero"), dates.Text("12 de octubre")}, policy, from)
	st := ShiftTable(shifts, "fijo", "académico")
	if st.Len() != 1 || st.Strings(DefaultFormat())[0][3] != "2024-01-05" {
		t.Fatalf("unexpected shift table: %v", st.Strings(DefaultFormat()))
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	book := codebook.Default()
	cols := book.DummyColumns()
	si := "aparicion_del_lider__si"
	logo := "imagen_corporativa__logotipo_del_partido"
	meme := "formato_del_contenido__meme"
	plain := "recursos_de_propaganda_segun_el_institute_for_propaganda__plain-folks_(gente_del_pueblo)"

	var posts []*model.Post
	for i := 0; i < 12; i++ {
		cand := "Ana"
		if i%2 == 1 {
			cand = "Luis"
		}
		on := []string{meme}
		if i%3 == 0 {
			on = append(on, si, logo)
		}
		if i%4 == 0 {
			on = append(on, plain)
		}
		posts = append(posts, newPost(cand, "2023-10-0"+string(rune('1'+i%5)), on...))
	}

	tables := Build(posts, cols, BuildOptions{})
	names := map[string]bool{}
	for _, tbl := range tables {
		if tbl.Len() == 0 {
			t.Fatalf("empty table %s should be dropped", tbl.Name)
		}
		names[tbl.Name] = true
	}
	for _, want := range []string{
		"Ranking general", "Top por candidato", "Evolucion temporal", "Estadisticas temporales",
		"Cruces aparicion imagen", "Propaganda por candidato", "Plain-folks por candidato",
	} {
		if !names[want] {
			t.Fatalf("missing table %s, got %v", want, names)
		}
	}
	if !names["Ranking Aparicion Del Lider"] {
		t.Fatalf("missing per-variable ranking, got %v", names)
	}

	focused := Build(posts, cols, BuildOptions{Variable: "aparicion_del_lider", TopN: 3})
	if focused[0].Len() != 3 {
		t.Fatalf("top n not applied: %d", focused[0].Len())
	}
	var hasComparison bool
	for _, tbl := range focused {
		if tbl.Name == "Top por candidato" {
			t.Fatalf("focused report should not include the general top table")
		}
		if strings.HasPrefix(tbl.Name, "Comparativa") {
			hasComparison = true
		}
	}
	if !hasComparison {
		t.Fatalf("missing comparison table")
	}
}
