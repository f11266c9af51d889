package analysis

import (
	"sort"

	"campana/internal/codebook"
	"campana/internal/model"
)

// Pair 两个类别同时出现的情况
type Pair struct {
	A       string  `json:"a"`
	B       string  `json:"b"`
	ALabel  string  `json:"aLabel"`
	BLabel  string  `json:"bLabel"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// CoOccurrence colsA x colsB 中同时为 1 的组合，按频数降序。
// 两列都需有变化（列联表至少 2x2）且帖子数大于 minTotal。
func CoOccurrence(posts []*model.Post, colsA, colsB []string, minTotal int) []Pair {
	if len(posts) <= minTotal {
		return nil
	}

	var out []Pair
	for _, a := range colsA {
		if !varies(posts, a) {
			continue
		}
		for _, b := range colsB {
			if a == b || !varies(posts, b) {
				continue
			}
			n := 0
			for _, p := range posts {
				if p.Indicator(a) == 1 && p.Indicator(b) == 1 {
					n++
				}
			}
			if n == 0 {
				continue
			}
			out = append(out, Pair{
				A:       a,
				B:       b,
				ALabel:  codebook.CategoryLabel(a),
				BLabel:  codebook.CategoryLabel(b),
				Count:   n,
				Percent: Percent(n, len(posts)),
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// varies 列在帖子中同时出现 0 与 1
func varies(posts []*model.Post, col string) bool {
	var zero, one bool
	for _, p := range posts {
		if p.Indicator(col) == 1 {
			one = true
		} else {
			zero = true
		}
		if zero && one {
			return true
		}
	}
	return false
}
