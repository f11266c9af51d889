package model

import (
	"sort"
	"strings"

	"campana/internal/codebook"
	"campana/internal/dates"
)

// Dataset 导入后的完整数据集（只读使用）
type Dataset struct {
	Source string  `json:"source"`
	Posts  []*Post `json:"posts"`

	// 各 sheet 表头并集（首次出现顺序）
	Headers []string `json:"headers"`

	// 哑变量列（有序）与日期汇总
	DummyColumns []string      `json:"dummyColumns"`
	DateSummary  dates.Summary `json:"dateSummary"`
}

// Len 帖子数
func (d *Dataset) Len() int {
	return len(d.Posts)
}

// Candidates 候选人列表（去重排序，忽略空值）
func (d *Dataset) Candidates() []string {
	return Candidates(d.Posts)
}

// Variables 主变量列表
func (d *Dataset) Variables() []string {
	return codebook.Variables(d.DummyColumns)
}

// HasColumn 是否包含某哑变量列
func (d *Dataset) HasColumn(col string) bool {
	for _, c := range d.DummyColumns {
		if c == col {
			return true
		}
	}
	return false
}

// Candidates 帖子集合中的候选人
func Candidates(posts []*Post) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range posts {
		c := strings.TrimSpace(p.Candidate)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Dated 仅保留日期有效的帖子
func Dated(posts []*Post) []*Post {
	out := make([]*Post, 0, len(posts))
	for _, p := range posts {
		if p.HasDate() {
			out = append(out, p)
		}
	}
	return out
}

// ByCandidate 按候选人筛选
func ByCandidate(posts []*Post, candidate string) []*Post {
	var out []*Post
	for _, p := range posts {
		if strings.TrimSpace(p.Candidate) == candidate {
			out = append(out, p)
		}
	}
	return out
}
