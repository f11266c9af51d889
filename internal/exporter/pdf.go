package exporter

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"campana/internal/report"
)

const (
	pdfMargin     = 15.0
	pdfLineHeight = 6.0
	pdfFontSize   = 10.0
)

// WritePDF 将表格写为 PDF 报告；学术格式使用 Times 与 APA 横线
func (e *Exporter) WritePDF(w io.Writer, tables []report.Table, opts report.FormatOptions, title string) error {
	tables = nonEmpty(tables)
	if len(tables) == 0 {
		return ErrNoTables
	}

	family := "Helvetica"
	if opts.Academic {
		family = "Times"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-pdfMargin + 5)
		pdf.SetFont(family, "", 8)
		pdf.CellFormat(0, 4, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	if title != "" {
		pdf.SetFont(family, "B", 14)
		pdf.MultiCell(0, 8, tr(title), "", "C", false)
		pdf.Ln(4)
	}

	for i, t := range tables {
		pt := &pdfTable{pdf: pdf, tr: tr, family: family, opts: opts}
		pt.write(t, i+1)
		if err := pdf.Error(); err != nil {
			return fmt.Errorf("failed to render table %s: %w", t.Name, err)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	e.logger.Info("pdf report written", zap.Int("tables", len(tables)), zap.Bool("academic", opts.Academic))
	return nil
}

// pdfTable 单个表格的排版
type pdfTable struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	family string
	opts   report.FormatOptions
	widths []float64
}

func (t *pdfTable) write(tbl report.Table, n int) {
	headers := tbl.Headers(t.opts)
	rows := tbl.Strings(t.opts)
	t.widths = t.columnWidths(headers, rows)

	// 标题与至少一行数据放在同一页
	t.ensureSpace(pdfLineHeight * 4)
	t.caption(tbl.Title, n)
	t.header(headers)

	numeric := make([]bool, len(headers))
	if len(tbl.Rows) > 0 {
		for j, c := range tbl.Rows[0] {
			if j < len(numeric) {
				numeric[j] = c.IsNumeric()
			}
		}
	}

	t.pdf.SetFont(t.family, "", pdfFontSize)
	for i, row := range rows {
		if t.ensureSpace(pdfLineHeight) {
			t.header(headers)
			t.pdf.SetFont(t.family, "", pdfFontSize)
		}
		border := t.rowBorder(i == len(rows)-1)
		for j := range headers {
			text := ""
			if j < len(row) {
				text = row[j]
			}
			align := "L"
			if numeric[j] && text != "" {
				align = "R"
			}
			t.pdf.CellFormat(t.widths[j], pdfLineHeight, t.fit(text, t.widths[j]), border, 0, align, false, 0, "")
		}
		t.pdf.Ln(-1)
	}

	notes := tbl.Notes(t.opts)
	if len(notes) > 0 {
		t.pdf.Ln(1)
		t.pdf.SetFont(t.family, "I", pdfFontSize-1)
		for _, note := range notes {
			t.pdf.MultiCell(0, pdfLineHeight-1, t.tr(note), "", "L", false)
		}
	}
	t.pdf.Ln(pdfLineHeight)
}

// caption 学术格式：加粗编号一行，斜体标题一行
func (t *pdfTable) caption(title string, n int) {
	if t.opts.Academic {
		t.pdf.SetFont(t.family, "B", pdfFontSize+1)
		t.pdf.CellFormat(0, pdfLineHeight, t.tr(fmt.Sprintf("Tabla %d", n)), "", 1, "L", false, 0, "")
		t.pdf.SetFont(t.family, "I", pdfFontSize+1)
		t.pdf.MultiCell(0, pdfLineHeight, t.tr(title), "", "L", false)
		return
	}
	t.pdf.SetFont(t.family, "B", pdfFontSize+1)
	t.pdf.MultiCell(0, pdfLineHeight, t.tr(title), "", "L", false)
}

func (t *pdfTable) header(headers []string) {
	t.pdf.SetFont(t.family, "B", pdfFontSize)
	border, fill := "TB", false
	if !t.opts.Academic {
		border, fill = "1", true
		t.pdf.SetFillColor(226, 232, 240)
	}
	for j, h := range headers {
		t.pdf.CellFormat(t.widths[j], pdfLineHeight, t.fit(h, t.widths[j]), border, 0, "C", fill, 0, "")
	}
	t.pdf.Ln(-1)
}

func (t *pdfTable) rowBorder(last bool) string {
	if !t.opts.Academic {
		return "1"
	}
	if last {
		return "B"
	}
	return ""
}

// ensureSpace 剩余空间不足时换页，返回是否换页
func (t *pdfTable) ensureSpace(h float64) bool {
	_, pageH := t.pdf.GetPageSize()
	if t.pdf.GetY()+h <= pageH-pdfMargin {
		return false
	}
	t.pdf.AddPage()
	return true
}

// columnWidths 按内容宽度分配列宽，总宽为页面可用宽度
func (t *pdfTable) columnWidths(headers []string, rows [][]string) []float64 {
	pageW, _ := t.pdf.GetPageSize()
	left, _, right, _ := t.pdf.GetMargins()
	usable := pageW - left - right

	t.pdf.SetFont(t.family, "B", pdfFontSize)
	natural := make([]float64, len(headers))
	for j, h := range headers {
		natural[j] = t.pdf.GetStringWidth(t.tr(h)) + 4
	}
	t.pdf.SetFont(t.family, "", pdfFontSize)
	for _, row := range rows {
		for j := 0; j < len(row) && j < len(natural); j++ {
			if w := t.pdf.GetStringWidth(t.tr(row[j])) + 4; w > natural[j] {
				natural[j] = w
			}
		}
	}

	sum := 0.0
	for _, w := range natural {
		sum += w
	}
	widths := make([]float64, len(natural))
	floor := usable / float64(len(natural)) / 2
	for j, w := range natural {
		widths[j] = w * usable / sum
		if sum > usable && widths[j] < floor {
			widths[j] = floor
		}
	}
	return widths
}

// fit 截断超出列宽的文本
func (t *pdfTable) fit(s string, width float64) string {
	text := t.tr(s)
	if t.pdf.GetStringWidth(text)+2 <= width {
		return text
	}
	r := []rune(s)
	for len(r) > 0 {
		r = r[:len(r)-1]
		candidate := t.tr(string(r) + "...")
		if t.pdf.GetStringWidth(candidate)+2 <= width {
			return candidate
		}
	}
	return ""
}
