package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"campana/internal/codebook"
	"campana/internal/model"
)

// Matrix 相关系数矩阵
type Matrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

// At 两列的相关系数
func (m Matrix) At(a, b string) float64 {
	i, j := -1, -1
	for k, c := range m.Columns {
		if c == a {
			i = k
		}
		if c == b {
			j = k
		}
	}
	if i < 0 || j < 0 {
		return math.NaN()
	}
	return m.Values[i][j]
}

// Correlation 各哑变量列间的 Pearson 相关；常量列的系数为 NaN
func Correlation(posts []*model.Post, cols []string) Matrix {
	series := make([][]float64, len(cols))
	constant := make([]bool, len(cols))
	for i, col := range cols {
		series[i] = make([]float64, len(posts))
		for k, p := range posts {
			series[i][k] = float64(p.Indicator(col))
		}
		constant[i] = len(posts) < 2 || stat.Variance(series[i], nil) == 0
	}

	m := Matrix{Columns: cols, Values: make([][]float64, len(cols))}
	for i := range cols {
		m.Values[i] = make([]float64, len(cols))
		for j := range cols {
			switch {
			case constant[i] || constant[j]:
				m.Values[i][j] = math.NaN()
			case i == j:
				m.Values[i][j] = 1
			default:
				m.Values[i][j] = stat.Correlation(series[i], series[j], nil)
			}
		}
	}
	return m
}

// MinUses 使用次数不少于 minUses 的列（保持顺序）
func MinUses(posts []*model.Post, cols []string, minUses int) []string {
	var out []string
	for _, col := range cols {
		if Uses(posts, col) >= minUses {
			out = append(out, col)
		}
	}
	return out
}

// TopColumns 使用次数最多的 n 列
func TopColumns(posts []*model.Post, cols []string, n int) []string {
	type colUse struct {
		col  string
		uses int
	}
	uses := make([]colUse, len(cols))
	for i, col := range cols {
		uses[i] = colUse{col: col, uses: Uses(posts, col)}
	}
	sort.SliceStable(uses, func(i, j int) bool { return uses[i].uses > uses[j].uses })
	if n > 0 && len(uses) > n {
		uses = uses[:n]
	}
	out := make([]string, len(uses))
	for i, u := range uses {
		out[i] = u.col
	}
	return out
}

// CorrelationPair 一对列的相关系数
type CorrelationPair struct {
	A         string  `json:"a"`
	B         string  `json:"b"`
	ALabel    string  `json:"aLabel"`
	BLabel    string  `json:"bLabel"`
	R         float64 `json:"r"`
	Strength  string  `json:"strength"`
	Direction string  `json:"direction"`
}

// StrongPairs 上三角中 |r| >= threshold 的组合，按 |r| 降序
func StrongPairs(m Matrix, threshold float64) []CorrelationPair {
	var out []CorrelationPair
	for i := range m.Columns {
		for j := i + 1; j < len(m.Columns); j++ {
			r := m.Values[i][j]
			if math.IsNaN(r) || math.Abs(r) < threshold {
				continue
			}
			out = append(out, CorrelationPair{
				A:         m.Columns[i],
				B:         m.Columns[j],
				ALabel:    codebook.CategoryLabel(m.Columns[i]),
				BLabel:    codebook.CategoryLabel(m.Columns[j]),
				R:         r,
				Strength:  strength(r),
				Direction: direction(r),
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return math.Abs(out[i].R) > math.Abs(out[j].R) })
	return out
}

func strength(r float64) string {
	switch a := math.Abs(r); {
	case a >= 0.7:
		return "Fuerte"
	case a >= 0.5:
		return "Moderada"
	default:
		return "Débil"
	}
}

func direction(r float64) string {
	if r > 0 {
		return "Positiva"
	}
	return "Negativa"
}
