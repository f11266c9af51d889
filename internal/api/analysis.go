package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"campana/internal/analysis"
	"campana/internal/codebook"
	"campana/internal/model"
	"campana/internal/report"
)

// request 单个请求的筛选结果与格式
type request struct {
	filter analysis.Filter
	format report.FormatOptions
	posts  []*model.Post
	cols   []string
}

// load 解析查询参数并应用筛选；参数错误时已写入 400 响应
func (h *Handler) load(c *gin.Context) (*request, bool) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	format, err := parseFormat(c, h.defaults)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	if filter.Variable != "" && len(codebook.ColumnsOf(h.dataset.DummyColumns, filter.Variable)) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("未知变量: %s", filter.Variable)})
		return nil, false
	}
	posts, cols := filter.Apply(h.dataset)
	return &request{filter: filter, format: format, posts: posts, cols: cols}, true
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// GetRankings 排行；指定 variable 时为该变量的类别排行，否则为一般排行
// GET /api/rankings?variable=&top=
func (h *Handler) GetRankings(c *gin.Context) {
	req, ok := h.load(c)
	if !ok {
		return
	}
	top, err := intParam(c, "top", h.topN)
	if err != nil {
		badRequest(c, err)
		return
	}

	var (
		rankings []analysis.Ranking
		table    report.Table
	)
	if v := req.filter.Variable; v != "" {
		rankings = analysis.RankByVariable(req.posts, req.cols, v)
		table = report.VariableRankingTable(v, rankings)
	} else {
		rankings = analysis.GeneralRanking(req.posts, req.cols, top)
		table = report.RankingTable("Ranking general", "Ranking General de Estrategias", rankings)
	}

	c.JSON(http.StatusOK, analysisResponse{
		Posts:  len(req.posts),
		Data:   rankings,
		Tables: render(req.format, table),
	})
}

// GetCandidateRanking 各候选人的排行
// GET /api/candidates/ranking?top=
func (h *Handler) GetCandidateRanking(c *gin.Context) {
	req, ok := h.load(c)
	if !ok {
		return
	}
	top, err := intParam(c, "top", report.TopPerCandidateN)
	if err != nil {
		badRequest(c, err)
		return
	}

	tops := analysis.TopPerCandidate(req.posts, req.cols, top)
	tables := []report.Table{report.TopPerCandidateTable(tops)}
	if v := req.filter.Variable; v != "" {
		tables = append(tables, report.ComparisonTable(v, analysis.RankByCandidate(req.posts, req.cols), top))
	}

	c.JSON(http.StatusOK, analysisResponse{
		Posts:  len(req.posts),
		Data:   tops,
		Tables: render(req.format, tables...),
	})
}

// field 交叉表维度：candidato 或哑变量列
func (h *Handler) field(name string) (analysis.Field, error) {
	if strings.EqualFold(name, "candidato") {
		return analysis.CandidateField(), nil
	}
	if !h.dataset.HasColumn(name) {
		return analysis.Field{}, fmt.Errorf("未知列: %s", name)
	}
	return analysis.IndicatorField(name), nil
}

// GetCrosstab 交叉表与卡方检验
// GET /api/crosstab?row=&col=
func (h *Handler) GetCrosstab(c *gin.Context) {
	req, ok := h.load(c)
	if !ok {
		return
	}
	rowName, colName := c.Query("row"), c.Query("col")
	if rowName == "" || colName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "需要 row 与 col 参数"})
		return
	}
	row, err := h.field(rowName)
	if err != nil {
		badRequest(c, err)
		return
	}
	col, err := h.field(colName)
	if err != nil {
		badRequest(c, err)
		return
	}

	res := analysis.Crosstab(req.posts, row, col)
	c.JSON(http.StatusOK, analysisResponse{
		Posts: len(req.posts),
		Data:  res,
		Tables: render(req.format,
			report.CrosstabTable(res, row.Label, col.Label),
			report.CrosstabPercentTable(res, row.Label, col.Label),
		),
	})
}

// GetCoOccurrence 两个变量的类别共现；默认为领导人出现 x 企业形象
// GET /api/cooccurrence?a=&b=&min=
func (h *Handler) GetCoOccurrence(c *gin.Context) {
	req, ok := h.load(c)
	if !ok {
		return
	}
	minTotal, err := intParam(c, "min", report.CoOccurrenceMinTotal)
	if err != nil {
		badRequest(c, err)
		return
	}

	colsA := analysis.SelectColumns(req.cols, analysis.AppearanceKeywords, 0)
	if v := c.Query("a"); v != "" {
		colsA = codebook.ColumnsOf(req.cols, v)
	}
	colsB := analysis.SelectColumns(req.cols, analysis.CorporateKeywords, 0)
	if v := c.Query("b"); v != "" {
		colsB = codebook.ColumnsOf(req.cols, v)
	}

	pairs := analysis.CoOccurrence(req.posts, colsA, colsB, minTotal)
	c.JSON(http.StatusOK, analysisResponse{
		Posts:  len(req.posts),
		Data:   pairs,
		Tables: render(req.format, report.CoOccurrenceTable(pairs, report.CoOccurrenceLimit)),
	})
}

// GetCorrelation 高频类别的相关矩阵与强相关对
// GET /api/correlation?top=&threshold=
func (h *Handler) GetCorrelation(c *gin.Context) {
	req, ok := h.load(c)
	if !ok {
		return
	}
	top, err := intParam(c, "top", report.CorrelationTopColumns)
	if err != nil {
		badRequest(c, err)
		return
	}
	threshold, err := floatParam(c, "threshold", report.CorrelationThreshold)
	if err != nil {
		badRequest(c, err)
		return
	}

	frequent := analysis.MinUses(req.posts, req.cols, report.CorrelationMinUses)
	m := analysis.Correlation(req.posts, analysis.TopColumns(req.posts, frequent, top))
	pairs := analysis.StrongPairs(m, threshold)

	// 矩阵中可能含 NaN（常数列），只以渲染后的表格返回
	c.JSON(http.StatusOK, analysisResponse{
		Posts: len(req.posts),
		Data:  pairs,
		Tables: render(req.format,
			report.CorrelationTable(pairs, threshold),
			report.CorrelationMatrixTable(m),
		),
	})
}

// GetTemporal 时间演变与描述统计
// GET /api/temporal?columns=a,b
func (h *Handler) GetTemporal(c *gin.Context) {
	req, ok := h.load(c)
	if !ok {
		return
	}

	cols := report.TemporalColumns(req.cols, req.filter.Variable)
	if v := strings.TrimSpace(c.Query("columns")); v != "" {
		cols = nil
		for _, col := range strings.Split(v, ",") {
			col = strings.TrimSpace(col)
			if !h.dataset.HasColumn(col) {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("未知列: %s", col)})
				return
			}
			cols = append(cols, col)
		}
	}

	days := analysis.Evolution(req.posts, cols)
	tables := []report.Table{report.EvolutionTable(days, cols)}
	if len(days) > 0 {
		tables = append(tables, report.StatsTable(analysis.Stats(days, cols)))
	}
	tables = append(tables, report.MonthlyTable(analysis.MonthlyDistribution(req.posts)))

	c.JSON(http.StatusOK, analysisResponse{
		Posts:  len(req.posts),
		Data:   gin.H{"columns": cols, "days": days},
		Tables: render(req.format, tables...),
	})
}

// GetDates 日期规范化诊断
// GET /api/dates
func (h *Handler) GetDates(c *gin.Context) {
	format, err := parseFormat(c, h.defaults)
	if err != nil {
		badRequest(c, err)
		return
	}
	summary := h.dataset.DateSummary
	policy := ""
	if h.imported != nil {
		policy = h.imported.Policy
	}

	c.JSON(http.StatusOK, analysisResponse{
		Posts: h.dataset.Len(),
		Data:  summary,
		Tables: render(format,
			report.DateSummaryTable(summary, policy),
			report.DateFailuresTable(summary.Samples),
			report.MonthlyTable(analysis.MonthlyDistribution(h.dataset.Posts)),
		),
	})
}
