package analysis

import (
	"math"
	"testing"

	"campana/internal/model"
)

func fieldOf(name string) Field {
	return Field{Name: name, Label: name, Value: func(p *model.Post) string { return p.Fields[name] }}
}

// table 按观测频数构造帖子
func table(obs map[[2]string]int) []*model.Post {
	var posts []*model.Post
	for cell, n := range obs {
		for i := 0; i < n; i++ {
			p := model.NewPost("test", 0)
			p.Fields["r"] = cell[0]
			p.Fields["c"] = cell[1]
			posts = append(posts, p)
		}
	}
	return posts
}

func TestCrosstab_IndicatorByCandidate(t *testing.T) {
	t.Parallel()

	res := Crosstab(samplePosts(), IndicatorField(colSi), CandidateField())
	if len(res.RowLevels) != 2 || res.RowLevels[0] != "0" || res.RowLevels[1] != "1" {
		t.Fatalf("unexpected row levels: %v", res.RowLevels)
	}
	if res.Count("1", "Ana") != 2 || res.Count("0", "Luis") != 2 || res.Total != 6 {
		t.Fatalf("unexpected counts: %v", res.Counts)
	}
	if res.RowTotals[1] != 3 || res.ColTotals[0] != 3 {
		t.Fatalf("unexpected margins: rows=%v cols=%v", res.RowTotals, res.ColTotals)
	}
	if math.Abs(res.Percent[1][0]-100.0/3) > 1e-9 {
		t.Fatalf("unexpected percent: %v", res.Percent)
	}
	if res.Test == nil || !res.Test.Corrected || res.Test.DF != 1 {
		t.Fatalf("expected corrected 1-df test: %+v", res.Test)
	}
	// |O-E| = 0.5 全部被校正掉
	if res.Test.Statistic != 0 || math.Abs(res.Test.PValue-1) > 1e-9 {
		t.Fatalf("unexpected test: %+v", res.Test)
	}
}

func TestCrosstab_YatesCorrection(t *testing.T) {
	t.Parallel()

	posts := table(map[[2]string]int{
		{"a", "x"}: 10, {"a", "y"}: 20,
		{"b", "x"}: 30, {"b", "y"}: 40,
	})
	res := Crosstab(posts, fieldOf("r"), fieldOf("c"))
	if res.Test == nil {
		t.Fatalf("missing test")
	}
	if math.Abs(res.Test.Statistic-0.44642857142857) > 1e-9 {
		t.Fatalf("unexpected statistic: %v", res.Test.Statistic)
	}
	if math.Abs(res.Test.PValue-0.50403586645250) > 1e-6 {
		t.Fatalf("unexpected p-value: %v", res.Test.PValue)
	}
}

func TestCrosstab_NoCorrectionAboveOneDF(t *testing.T) {
	t.Parallel()

	posts := table(map[[2]string]int{
		{"a", "x"}: 5, {"a", "y"}: 1,
		{"b", "x"}: 2, {"b", "y"}: 6,
		{"c", "x"}: 3, {"c", "y"}: 3,
	})
	res := Crosstab(posts, fieldOf("r"), fieldOf("c"))
	if res.Test == nil || res.Test.Corrected || res.Test.DF != 2 {
		t.Fatalf("unexpected test: %+v", res.Test)
	}
	if math.Abs(res.Test.Statistic-4.6666666666667) > 1e-9 {
		t.Fatalf("unexpected statistic: %v", res.Test.Statistic)
	}
	if math.Abs(res.Test.PValue-0.0969719678644) > 1e-6 {
		t.Fatalf("unexpected p-value: %v", res.Test.PValue)
	}
}

func TestCrosstab_NoTestForSingleLevel(t *testing.T) {
	t.Parallel()

	posts := samplePosts()[:2] // colSi 恒为 1
	res := Crosstab(posts, IndicatorField(colSi), CandidateField())
	if res.Test != nil {
		t.Fatalf("single-level table should not be tested: %+v", res.Test)
	}

	empty := Crosstab(nil, IndicatorField(colSi), CandidateField())
	if empty.Total != 0 || empty.Test != nil {
		t.Fatalf("unexpected empty crosstab: %+v", empty)
	}
}
