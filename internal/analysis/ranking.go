package analysis

import (
	"sort"

	"campana/internal/codebook"
	"campana/internal/model"
)

// Ranking 单个类别的使用情况
type Ranking struct {
	Column   string  `json:"column"`
	Variable string  `json:"variable"`
	Category string  `json:"category"`
	Label    string  `json:"label"`
	Uses     int     `json:"uses"`
	Percent  float64 `json:"percent"` // 占筛选后帖子数的百分比
}

func rank(posts []*model.Post, cols []string) []Ranking {
	out := make([]Ranking, 0, len(cols))
	for _, col := range cols {
		uses := Uses(posts, col)
		out = append(out, Ranking{
			Column:   col,
			Variable: codebook.VariableLabel(col),
			Category: codebook.CategoryLabel(col),
			Label:    codebook.FullLabel(col),
			Uses:     uses,
			Percent:  Percent(uses, len(posts)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Uses > out[j].Uses })
	return out
}

// RankByVariable 主变量内各类别的排行（保留零使用的类别）
func RankByVariable(posts []*model.Post, cols []string, variable string) []Ranking {
	return rank(posts, codebook.ColumnsOf(cols, variable))
}

// GeneralRanking 所有类别的排行，去掉零使用，top <= 0 时不截断
func GeneralRanking(posts []*model.Post, cols []string, top int) []Ranking {
	all := rank(posts, cols)
	out := make([]Ranking, 0, len(all))
	for _, r := range all {
		if r.Uses > 0 {
			out = append(out, r)
		}
	}
	if top > 0 && len(out) > top {
		out = out[:top]
	}
	return out
}

// CandidateRanking 某候选人的排行
type CandidateRanking struct {
	Candidate string    `json:"candidate"`
	Posts     int       `json:"posts"`
	Rankings  []Ranking `json:"rankings"`
}

// RankByCandidate 每个候选人的全部类别排行
func RankByCandidate(posts []*model.Post, cols []string) []CandidateRanking {
	var out []CandidateRanking
	for _, c := range model.Candidates(posts) {
		sub := model.ByCandidate(posts, c)
		out = append(out, CandidateRanking{
			Candidate: c,
			Posts:     len(sub),
			Rankings:  rank(sub, cols),
		})
	}
	return out
}

// TopPerCandidate 每个候选人使用最多的 n 个类别
func TopPerCandidate(posts []*model.Post, cols []string, n int) []CandidateRanking {
	out := RankByCandidate(posts, cols)
	for i := range out {
		sort.SliceStable(out[i].Rankings, func(a, b int) bool {
			return out[i].Rankings[a].Percent > out[i].Rankings[b].Percent
		})
		if n > 0 && len(out[i].Rankings) > n {
			out[i].Rankings = out[i].Rankings[:n]
		}
	}
	return out
}
