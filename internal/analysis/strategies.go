package analysis

import (
	"sort"
	"strings"

	"campana/internal/model"
)

// 常用的列选择关键词
var (
	TemporalKeywords   = []string{"meme", "logotipo", "testimonio", "plain_folks", "orquestacion"}
	PropagandaKeywords = []string{"institute", "propaganda"}
	PlainFolksKeywords = []string{"plain", "pueblo"}
	AppearanceKeywords = []string{"aparicion"}
	CorporateKeywords  = []string{"imagen_corporativa"}
)

// SelectColumns 列名包含任一关键词的列，limit <= 0 时不截断
func SelectColumns(cols []string, keywords []string, limit int) []string {
	var out []string
	for _, col := range cols {
		lower := strings.ToLower(col)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				out = append(out, col)
				break
			}
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// TechniqueUse 某类别在各候选人中的使用
type TechniqueUse struct {
	Column     string             `json:"column"`
	Label      string             `json:"label"`
	Total      int                `json:"total"`
	Uses       map[string]int     `json:"uses"`    // 候选人 -> 次数
	Percent    map[string]float64 `json:"percent"` // 候选人 -> 占该候选人帖子百分比
	Candidates []string           `json:"candidates"`
}

// UsageByCandidate 各类别按候选人的使用（按总次数降序）
func UsageByCandidate(posts []*model.Post, cols []string) []TechniqueUse {
	candidates := model.Candidates(posts)
	groups := make(map[string][]*model.Post, len(candidates))
	for _, c := range candidates {
		groups[c] = model.ByCandidate(posts, c)
	}

	out := make([]TechniqueUse, 0, len(cols))
	for _, r := range rank(posts, cols) {
		t := TechniqueUse{
			Column:     r.Column,
			Label:      r.Label,
			Uses:       make(map[string]int, len(candidates)),
			Percent:    make(map[string]float64, len(candidates)),
			Candidates: candidates,
		}
		for _, c := range candidates {
			n := Uses(groups[c], r.Column)
			t.Uses[c] = n
			t.Percent[c] = Percent(n, len(groups[c]))
			t.Total += n
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}
