package exporter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"campana/internal/model"
	"campana/internal/report"
)

// RecodedSheet 重编码工作簿的 Sheet 名称
const RecodedSheet = "Recodificado"

// ConvertedDateColumn 规范化后的日期列
const ConvertedDateColumn = "Fecha_convertida"

// ErrNoTables 没有可导出的表格
var ErrNoTables = errors.New("no tables to export")

// Exporter 工作簿导出器
type Exporter struct {
	logger *zap.Logger
}

// NewExporter 创建导出器
func NewExporter(logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{logger: logger}
}

// WriteRecoded 导出重编码数据：原始列 + Fecha_convertida + 哑变量列
func (e *Exporter) WriteRecoded(ds *model.Dataset, progress func(ProgressEvent)) (*excelize.File, error) {
	if ds == nil {
		return nil, errors.New("dataset is nil")
	}
	reportProgress(progress, 0, "准备列")

	dummies := make(map[string]struct{}, len(ds.DummyColumns))
	for _, c := range ds.DummyColumns {
		dummies[c] = struct{}{}
	}
	var base []string
	for _, h := range ds.Headers {
		if strings.EqualFold(h, ConvertedDateColumn) {
			continue
		}
		if _, ok := dummies[h]; ok {
			continue
		}
		base = append(base, h)
	}

	headers := make([]interface{}, 0, len(base)+1+len(ds.DummyColumns))
	for _, h := range base {
		headers = append(headers, h)
	}
	headers = append(headers, ConvertedDateColumn)
	for _, c := range ds.DummyColumns {
		headers = append(headers, c)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", RecodedSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := f.SetSheetRow(RecodedSheet, "A1", &headers); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to write headers: %w", err)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetRowStyle(RecodedSheet, 1, 1, headerStyle)

	reportProgress(progress, 10, "写入数据")

	total := len(ds.Posts)
	for i, p := range ds.Posts {
		row := make([]interface{}, 0, len(headers))
		for _, h := range base {
			row = append(row, p.Fields[h])
		}
		if p.HasDate() {
			row = append(row, p.Date.Time())
		} else {
			row = append(row, "")
		}
		for _, c := range ds.DummyColumns {
			row = append(row, p.Indicator(c))
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(RecodedSheet, cell, &row); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
		if (i+1)%500 == 0 || i == total-1 {
			reportProgress(progress, stepPercent(i, total, 10, 90), "写入数据")
		}
	}

	dateCol, _ := excelize.ColumnNumberToName(len(base) + 1)
	if total > 0 {
		dateStyle, _ := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr("yyyy-mm-dd")})
		_ = f.SetCellStyle(RecodedSheet, dateCol+"2", fmt.Sprintf("%s%d", dateCol, total+1), dateStyle)
	}
	_ = f.SetColWidth(RecodedSheet, dateCol, dateCol, 14)

	f.SetActiveSheet(0)
	reportProgress(progress, 100, "完成")

	e.logger.Info("recoded workbook written",
		zap.Int("posts", total),
		zap.Int("dummy_columns", len(ds.DummyColumns)),
	)
	return f, nil
}

// WriteTables 每个表格一个 Sheet：标题、表头、数据行与说明
func (e *Exporter) WriteTables(tables []report.Table, opts report.FormatOptions, progress func(ProgressEvent)) (*excelize.File, error) {
	tables = nonEmpty(tables)
	if len(tables) == 0 {
		return nil, ErrNoTables
	}

	f := excelize.NewFile()
	styles, err := newTableStyles(f, opts)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	namer := newSheetNamer()
	for i, t := range tables {
		name := namer.Name(t.Name)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}

		if err := writeTable(f, name, t, i+1, opts, styles); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("写入 %s 失败: %w", name, err)
		}
		reportProgress(progress, stepPercent(i, len(tables), 0, 100), name)
	}

	f.SetActiveSheet(0)
	e.logger.Info("report workbook written", zap.Int("tables", len(tables)), zap.Bool("academic", opts.Academic))
	return f, nil
}

type tableStyles struct {
	title  int
	header int
	note   int
}

func newTableStyles(f *excelize.File, opts report.FormatOptions) (tableStyles, error) {
	var s tableStyles
	var err error

	if opts.Academic {
		// APA：表头仅上下横线，无底色
		font := &excelize.Font{Family: "Times New Roman", Size: 12}
		s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Family: font.Family, Size: font.Size, Bold: true}})
		if err != nil {
			return s, fmt.Errorf("failed to create style: %w", err)
		}
		s.header, err = f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Family: font.Family, Size: font.Size, Bold: true},
			Border: []excelize.Border{
				{Type: "top", Color: "#000000", Style: 1},
				{Type: "bottom", Color: "#000000", Style: 1},
			},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		if err != nil {
			return s, fmt.Errorf("failed to create style: %w", err)
		}
		s.note, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Family: font.Family, Size: 10, Italic: true}})
		if err != nil {
			return s, fmt.Errorf("failed to create style: %w", err)
		}
		return s, nil
	}

	s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	if err != nil {
		return s, fmt.Errorf("failed to create style: %w", err)
	}
	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return s, fmt.Errorf("failed to create style: %w", err)
	}
	s.note, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Italic: true, Color: "#64748B"}})
	if err != nil {
		return s, fmt.Errorf("failed to create style: %w", err)
	}
	return s, nil
}

// writeTable 写入单个表格：第 1 行标题，第 2 行表头，之后为数据，空一行后为说明
func writeTable(f *excelize.File, sheet string, t report.Table, n int, opts report.FormatOptions, styles tableStyles) error {
	if err := f.SetCellValue(sheet, "A1", opts.Caption(t.Title, n)); err != nil {
		return err
	}
	_ = f.SetCellStyle(sheet, "A1", "A1", styles.title)

	headers := make([]interface{}, len(t.Columns))
	for i, h := range t.Headers(opts) {
		headers[i] = h
	}
	if err := f.SetSheetRow(sheet, "A2", &headers); err != nil {
		return err
	}
	if len(headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(headers), 2)
		_ = f.SetCellStyle(sheet, "A2", last, styles.header)
	}

	for i, cells := range t.Rows {
		row := make([]interface{}, len(cells))
		for j, c := range cells {
			row[j] = c.Value(opts)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+3)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	noteRow := len(t.Rows) + 4
	for i, note := range t.Notes(opts) {
		cell := fmt.Sprintf("A%d", noteRow+i)
		if err := f.SetCellValue(sheet, cell, note); err != nil {
			return err
		}
		_ = f.SetCellStyle(sheet, cell, cell, styles.note)
	}

	if len(t.Columns) > 0 {
		_ = f.SetColWidth(sheet, "A", "A", 40)
		if len(t.Columns) > 1 {
			lastCol, _ := excelize.ColumnNumberToName(len(t.Columns))
			_ = f.SetColWidth(sheet, "B", lastCol, 16)
		}
	}
	return nil
}

func nonEmpty(tables []report.Table) []report.Table {
	out := make([]report.Table, 0, len(tables))
	for _, t := range tables {
		if t.Len() > 0 {
			out = append(out, t)
		}
	}
	return out
}

func strPtr(s string) *string { return &s }
