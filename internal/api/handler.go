// Package api 面板的 HTTP 接口：数据集只读，筛选与格式由每个请求的查询参数携带。
package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campana/internal/exporter"
	"campana/internal/model"
	"campana/internal/parser"
	"campana/internal/report"
)

// Options 处理器参数
type Options struct {
	Dataset *model.Dataset
	Report  *parser.ImportReport
	Format  report.FormatOptions // 请求未指定时的默认格式
	TopN    int
	Logger  *zap.Logger
}

// Handler API 处理器
type Handler struct {
	dataset  *model.Dataset
	imported *parser.ImportReport
	defaults report.FormatOptions
	topN     int
	exporter *exporter.Exporter
	logger   *zap.Logger
}

// NewHandler 创建 API 处理器
func NewHandler(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ds := opts.Dataset
	if ds == nil {
		ds = &model.Dataset{}
	}
	topN := opts.TopN
	if topN <= 0 {
		topN = report.DefaultTopN
	}
	return &Handler{
		dataset:  ds,
		imported: opts.Report,
		defaults: opts.Format,
		topN:     topN,
		exporter: exporter.NewExporter(logger),
		logger:   logger,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 数据集概况
	router.GET("/status", h.GetStatus)
	router.GET("/variables", h.ListVariables)
	router.GET("/candidates", h.ListCandidates)

	// 分析
	router.GET("/rankings", h.GetRankings)
	router.GET("/candidates/ranking", h.GetCandidateRanking)
	router.GET("/crosstab", h.GetCrosstab)
	router.GET("/cooccurrence", h.GetCoOccurrence)
	router.GET("/correlation", h.GetCorrelation)
	router.GET("/temporal", h.GetTemporal)
	router.GET("/dates", h.GetDates)

	// 导出
	router.GET("/export", h.Export)
	router.GET("/export/pdf", h.ExportPDF)
}

// analysisResponse 分析接口的统一响应
type analysisResponse struct {
	Posts  int           `json:"posts"`          // 筛选后的帖子数
	Data   interface{}   `json:"data,omitempty"` // 原始结果
	Tables []report.View `json:"tables"`         // 按格式渲染后的表格
}

func render(format report.FormatOptions, tables ...report.Table) []report.View {
	out := make([]report.View, 0, len(tables))
	for _, t := range tables {
		out = append(out, t.Render(format, len(out)+1))
	}
	return out
}
