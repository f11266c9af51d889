package analysis

import "testing"

func TestRankByVariable_KeepsZeroUse(t *testing.T) {
	t.Parallel()

	posts := samplePosts()[:3] // 只有 Ana
	got := RankByVariable(posts, testCols, "aparicion_del_lider")
	if len(got) != 2 {
		t.Fatalf("unexpected rankings: %+v", got)
	}
	if got[0].Column != colSi || got[0].Uses != 2 {
		t.Fatalf("unexpected first: %+v", got[0])
	}
	if got[1].Column != colNo || got[1].Uses != 1 {
		t.Fatalf("unexpected second: %+v", got[1])
	}

	got = RankByVariable(posts[:2], testCols, "aparicion_del_lider")
	if len(got) != 2 || got[1].Uses != 0 {
		t.Fatalf("zero-use category should be kept: %+v", got)
	}
}

func TestGeneralRanking(t *testing.T) {
	t.Parallel()

	posts := samplePosts()
	got := GeneralRanking(posts, testCols, 3)
	if len(got) != 3 {
		t.Fatalf("unexpected length: %d", len(got))
	}
	if got[0].Column != colFoto || got[0].Uses != 4 {
		t.Fatalf("unexpected top: %+v", got[0])
	}
	if got[0].Percent < 66.66 || got[0].Percent > 66.67 {
		t.Fatalf("unexpected percent: %v", got[0].Percent)
	}
	if got[0].Label != "Formato Del Contenido - Fotografia" {
		t.Fatalf("unexpected label: %q", got[0].Label)
	}

	none := GeneralRanking(posts[:1], []string{colNo, colFoto}, 0)
	if len(none) != 0 {
		t.Fatalf("zero-use categories should be dropped: %+v", none)
	}
}

func TestTopPerCandidate(t *testing.T) {
	t.Parallel()

	got := TopPerCandidate(samplePosts(), testCols, 2)
	if len(got) != 2 || got[0].Candidate != "Ana" || got[1].Candidate != "Luis" {
		t.Fatalf("unexpected candidates: %+v", got)
	}
	ana := got[0]
	if ana.Posts != 3 || len(ana.Rankings) != 2 {
		t.Fatalf("unexpected ana: %+v", ana)
	}
	if ana.Rankings[0].Column != colSi || ana.Rankings[1].Column != colMeme {
		t.Fatalf("unexpected ana order: %s %s", ana.Rankings[0].Column, ana.Rankings[1].Column)
	}
	luis := got[1]
	if luis.Rankings[0].Column != colFoto || luis.Rankings[0].Percent != 100 {
		t.Fatalf("unexpected luis top: %+v", luis.Rankings[0])
	}
}
