package analysis

import (
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat/distuv"

	"campana/internal/codebook"
	"campana/internal/model"
)

// Field 交叉表的一个维度
type Field struct {
	Name  string
	Label string
	Value func(p *model.Post) string
}

// IndicatorField 哑变量维度（取值 0/1）
func IndicatorField(col string) Field {
	return Field{
		Name:  col,
		Label: codebook.FullLabel(col),
		Value: func(p *model.Post) string { return strconv.Itoa(p.Indicator(col)) },
	}
}

// CandidateField 候选人维度
func CandidateField() Field {
	return Field{
		Name:  "Candidato",
		Label: "Candidato",
		Value: func(p *model.Post) string { return p.Candidate },
	}
}

// ChiSquare 卡方独立性检验结果
type ChiSquare struct {
	Statistic float64 `json:"statistic"`
	DF        int     `json:"df"`
	PValue    float64 `json:"pValue"`
	Corrected bool    `json:"corrected"` // 是否使用 Yates 连续性校正
}

// CrosstabResult 列联表
type CrosstabResult struct {
	Row       string      `json:"row"`
	Col       string      `json:"col"`
	RowLevels []string    `json:"rowLevels"`
	ColLevels []string    `json:"colLevels"`
	Counts    [][]int     `json:"counts"`
	RowTotals []int       `json:"rowTotals"`
	ColTotals []int       `json:"colTotals"`
	Total     int         `json:"total"`
	Percent   [][]float64 `json:"percent"` // 占总数百分比
	Test      *ChiSquare  `json:"test,omitempty"`
}

// Crosstab 两个维度的列联表；至少 2x2 且总数大于 0 时附带卡方检验
func Crosstab(posts []*model.Post, a, b Field) CrosstabResult {
	rowIdx, rowLevels := levels(posts, a)
	colIdx, colLevels := levels(posts, b)

	res := CrosstabResult{
		Row:       a.Name,
		Col:       b.Name,
		RowLevels: rowLevels,
		ColLevels: colLevels,
		Counts:    make([][]int, len(rowLevels)),
		RowTotals: make([]int, len(rowLevels)),
		ColTotals: make([]int, len(colLevels)),
		Percent:   make([][]float64, len(rowLevels)),
	}
	for i := range res.Counts {
		res.Counts[i] = make([]int, len(colLevels))
		res.Percent[i] = make([]float64, len(colLevels))
	}

	for _, p := range posts {
		i, j := rowIdx[a.Value(p)], colIdx[b.Value(p)]
		res.Counts[i][j]++
		res.RowTotals[i]++
		res.ColTotals[j]++
		res.Total++
	}
	for i := range res.Counts {
		for j := range res.Counts[i] {
			res.Percent[i][j] = Percent(res.Counts[i][j], res.Total)
		}
	}

	if len(rowLevels) > 1 && len(colLevels) > 1 && res.Total > 0 {
		t := chiSquare(res.Counts, res.RowTotals, res.ColTotals, res.Total)
		res.Test = &t
	}
	return res
}

// Count 指定取值组合的频数
func (r CrosstabResult) Count(row, col string) int {
	for i, rv := range r.RowLevels {
		if rv != row {
			continue
		}
		for j, cv := range r.ColLevels {
			if cv == col {
				return r.Counts[i][j]
			}
		}
	}
	return 0
}

// levels 维度的取值（排序）与索引
func levels(posts []*model.Post, f Field) (map[string]int, []string) {
	seen := map[string]struct{}{}
	var vals []string
	for _, p := range posts {
		v := f.Value(p)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		vals = append(vals, v)
	}
	sort.Strings(vals)
	idx := make(map[string]int, len(vals))
	for i, v := range vals {
		idx[v] = i
	}
	return idx, vals
}

// chiSquare Pearson 卡方；自由度为 1 时做 Yates 校正
func chiSquare(counts [][]int, rowTotals, colTotals []int, total int) ChiSquare {
	df := (len(rowTotals) - 1) * (len(colTotals) - 1)
	corrected := df == 1

	stat := 0.0
	for i := range counts {
		for j := range counts[i] {
			expected := float64(rowTotals[i]) * float64(colTotals[j]) / float64(total)
			diff := float64(counts[i][j]) - expected
			if corrected {
				diff = math.Copysign(math.Max(math.Abs(diff)-0.5, 0), diff)
			}
			stat += diff * diff / expected
		}
	}

	return ChiSquare{
		Statistic: stat,
		DF:        df,
		PValue:    distuv.ChiSquared{K: float64(df)}.Survival(stat),
		Corrected: corrected,
	}
}
