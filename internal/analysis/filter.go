// Package analysis 基于哑变量的统计分析：排行、交叉表、共现、相关与时间演变。
package analysis

import (
	"strings"

	"campana/internal/codebook"
	"campana/internal/dates"
	"campana/internal/model"
)

// AllCandidates 不按候选人筛选
const AllCandidates = "Todos"

// Filter 侧边栏筛选条件；零值表示不筛选
type Filter struct {
	Candidate string      `json:"candidate,omitempty"`
	Variable  string      `json:"variable,omitempty"` // 主变量（列名片段）
	Category  string      `json:"category,omitempty"` // 类别（列名片段），需同时指定 Variable
	From      *dates.Date `json:"from,omitempty"`
	To        *dates.Date `json:"to,omitempty"`
}

// HasDateRange 是否设置了日期范围
func (f Filter) HasDateRange() bool {
	return f.From != nil || f.To != nil
}

// Apply 返回筛选后的帖子与哑变量列
func (f Filter) Apply(ds *model.Dataset) ([]*model.Post, []string) {
	return f.ApplyPosts(ds.Posts, ds.DummyColumns)
}

// ApplyPosts 对帖子集合应用筛选
func (f Filter) ApplyPosts(posts []*model.Post, cols []string) ([]*model.Post, []string) {
	candidate := strings.TrimSpace(f.Candidate)
	category := ""
	if f.Variable != "" && f.Category != "" {
		category = f.Variable + codebook.ColumnSeparator + f.Category
	}

	out := make([]*model.Post, 0, len(posts))
	for _, p := range posts {
		if candidate != "" && candidate != AllCandidates && strings.TrimSpace(p.Candidate) != candidate {
			continue
		}
		if f.HasDateRange() && !f.inRange(p) {
			continue
		}
		if category != "" && p.Indicator(category) != 1 {
			continue
		}
		out = append(out, p)
	}

	return out, f.columns(cols)
}

func (f Filter) inRange(p *model.Post) bool {
	if !p.HasDate() {
		return false
	}
	if f.From != nil && p.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && f.To.Before(*p.Date) {
		return false
	}
	return true
}

// columns 按变量/类别收窄哑变量列
func (f Filter) columns(cols []string) []string {
	if f.Variable == "" {
		return cols
	}
	var out []string
	for _, col := range cols {
		v, c, ok := codebook.SplitColumn(col)
		if !ok || v != f.Variable {
			continue
		}
		if f.Category != "" && c != f.Category {
			continue
		}
		out = append(out, col)
	}
	return out
}

// Uses 某列在帖子中的使用次数
func Uses(posts []*model.Post, col string) int {
	n := 0
	for _, p := range posts {
		n += p.Indicator(col)
	}
	return n
}

// Percent 百分比；分母为 0 时返回 0
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}
