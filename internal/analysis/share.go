package analysis

import (
	"campana/internal/model"
)

// Share 某候选人使用一组类别的帖子占比
type Share struct {
	Candidate string  `json:"candidate"`
	Posts     int     `json:"posts"`
	WithAny   int     `json:"withAny"`   // 至少使用一个类别的帖子
	Percent   float64 `json:"percent"`   // WithAny / Posts
	Intensity float64 `json:"intensity"` // 每帖平均使用类别数
}

// CandidateShare 每个候选人使用 cols 中任一类别的帖子占比
func CandidateShare(posts []*model.Post, cols []string) []Share {
	var out []Share
	for _, c := range model.Candidates(posts) {
		sub := model.ByCandidate(posts, c)
		s := Share{Candidate: c, Posts: len(sub)}
		sum := 0
		for _, p := range sub {
			n := 0
			for _, col := range cols {
				n += p.Indicator(col)
			}
			if n > 0 {
				s.WithAny++
			}
			sum += n
		}
		s.Percent = Percent(s.WithAny, s.Posts)
		if s.Posts > 0 {
			s.Intensity = float64(sum) / float64(s.Posts)
		}
		out = append(out, s)
	}
	return out
}

// WithAny 至少使用 cols 中一个类别的帖子
func WithAny(posts []*model.Post, cols []string) []*model.Post {
	var out []*model.Post
	for _, p := range posts {
		for _, col := range cols {
			if p.Indicator(col) == 1 {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
