package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campana/internal/exporter"
	"campana/internal/report"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	reportTitle     = "Análisis de campaña electoral"
)

func contentDisposition(filename string) string {
	return fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", filename, url.PathEscape(filename))
}

// tables 按筛选条件生成完整报表
func (h *Handler) tables(req *request) []report.Table {
	return report.Build(req.posts, req.cols, report.BuildOptions{TopN: h.topN, Variable: req.filter.Variable})
}

// Export 导出 Excel；kind=recoded 时导出重编码数据，否则导出报表表格
// GET /api/export?kind=tables|recoded
func (h *Handler) Export(c *gin.Context) {
	req, ok := h.load(c)
	if !ok {
		return
	}

	var (
		filename string
		err      error
		buf      *bytes.Buffer
	)
	switch kind := c.DefaultQuery("kind", "tables"); kind {
	case "recoded":
		filename = "recodificado.xlsx"
		f, werr := h.exporter.WriteRecoded(h.dataset, nil)
		if werr != nil {
			err = werr
			break
		}
		buf, err = f.WriteToBuffer()
		_ = f.Close()
	case "tables":
		filename = exporter.Filename(reportTitle, ".xlsx")
		f, werr := h.exporter.WriteTables(h.tables(req), req.format, nil)
		if werr != nil {
			err = werr
			break
		}
		buf, err = f.WriteToBuffer()
		_ = f.Close()
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("未知导出类型: %s", kind)})
		return
	}

	if err != nil {
		h.writeExportError(c, err)
		return
	}

	c.Header("Content-Disposition", contentDisposition(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportPDF 导出 PDF 报表
// GET /api/export/pdf
func (h *Handler) ExportPDF(c *gin.Context) {
	req, ok := h.load(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.exporter.WritePDF(&buf, h.tables(req), req.format, reportTitle); err != nil {
		h.writeExportError(c, err)
		return
	}

	c.Header("Content-Disposition", contentDisposition(exporter.Filename(reportTitle, ".pdf")))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (h *Handler) writeExportError(c *gin.Context, err error) {
	if errors.Is(err, exporter.ErrNoTables) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "筛选后没有可导出的数据"})
		return
	}
	h.logger.Error("export failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "导出失败: " + err.Error()})
}
