package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campana/internal/analysis"
	"campana/internal/codebook"
	"campana/internal/parser"
)

// StatusResponse 数据集状态
type StatusResponse struct {
	Loaded       bool                 `json:"loaded"`
	Source       string               `json:"source"`
	Posts        int                  `json:"posts"`
	Candidates   int                  `json:"candidates"`
	Variables    int                  `json:"variables"`
	DummyColumns int                  `json:"dummyColumns"`
	DatedPosts   int                  `json:"datedPosts"`
	From         string               `json:"from,omitempty"` // 最早日期
	To           string               `json:"to,omitempty"`   // 最晚日期
	Import       *parser.ImportReport `json:"import,omitempty"`
}

// GetStatus 获取数据集状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	ds := h.dataset
	resp := StatusResponse{
		Loaded:       ds.Len() > 0,
		Source:       ds.Source,
		Posts:        ds.Len(),
		Candidates:   len(ds.Candidates()),
		Variables:    len(ds.Variables()),
		DummyColumns: len(ds.DummyColumns),
		DatedPosts:   ds.DateSummary.Parsed,
		Import:       h.imported,
	}
	if from, to, ok := analysis.DateRange(ds.Posts); ok {
		resp.From, resp.To = from.String(), to.String()
	}
	c.JSON(http.StatusOK, resp)
}

// CategoryInfo 类别
type CategoryInfo struct {
	Column   string `json:"column"`   // 哑变量列
	Category string `json:"category"` // 列名中的类别片段（用于 category 参数）
	Label    string `json:"label"`
}

// VariableInfo 主变量及其类别
type VariableInfo struct {
	Name       string         `json:"name"` // 用于 variable 参数
	Label      string         `json:"label"`
	Categories []CategoryInfo `json:"categories"`
}

// ListVariables 主变量与类别列表
// GET /api/variables
func (h *Handler) ListVariables(c *gin.Context) {
	cols := h.dataset.DummyColumns
	items := make([]VariableInfo, 0)
	for _, v := range codebook.Variables(cols) {
		info := VariableInfo{Name: v, Label: codebook.DisplayLabel(v)}
		for _, col := range codebook.ColumnsOf(cols, v) {
			_, category, _ := codebook.SplitColumn(col)
			info.Categories = append(info.Categories, CategoryInfo{
				Column:   col,
				Category: category,
				Label:    codebook.CategoryLabel(col),
			})
		}
		items = append(items, info)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CandidateInfo 候选人
type CandidateInfo struct {
	Name  string `json:"name"`
	Posts int    `json:"posts"`
}

// ListCandidates 候选人列表（第一项为全部）
// GET /api/candidates
func (h *Handler) ListCandidates(c *gin.Context) {
	posts := h.dataset.Posts
	items := []CandidateInfo{{Name: analysis.AllCandidates, Posts: len(posts)}}
	for _, s := range analysis.CandidateShare(posts, nil) {
		items = append(items, CandidateInfo{Name: s.Candidate, Posts: s.Posts})
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
