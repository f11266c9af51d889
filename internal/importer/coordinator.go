package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"campana/internal/codebook"
	"campana/internal/dates"
	"campana/internal/model"
	"campana/internal/parser"
)

// DefaultSampleLimit 日期失败样例的默认数量
const DefaultSampleLimit = 10

// Coordinator 导入协调器
type Coordinator struct {
	book   *codebook.Codebook
	policy dates.Policy
	logger *zap.Logger
}

// NewCoordinator 创建导入协调器；logger 为空时不输出日志
func NewCoordinator(book *codebook.Codebook, policy dates.Policy, logger *zap.Logger) *Coordinator {
	if book == nil {
		book = codebook.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		book:   book,
		policy: policy,
		logger: logger,
	}
}

// ImportOptions 导入选项
type ImportOptions struct {
	FilePath    string
	Sheets      []string // 为空时导入所有可识别的 Sheet
	SampleLimit int      // 日期失败样例数量，0 使用默认值
	OnProgress  func(ProgressEvent)
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`      // start/sheet_start/sheet_done/warning/done
	Message   string      `json:"message"`   // 事件消息
	Data      interface{} `json:"data"`      // 附加数据
	Timestamp time.Time   `json:"timestamp"` // 时间戳
}

// importContext 导入上下文
type importContext struct {
	opts    ImportOptions
	file    *excelize.File
	parser  *parser.PostParser
	report  *parser.ImportReport
	dataset *model.Dataset
	headers map[string]struct{}
	dummies map[string]struct{}
}

// Import 导入工作簿：合并所有帖子表、展开哑变量并规范化日期
func (c *Coordinator) Import(opts ImportOptions) (*model.Dataset, *parser.ImportReport, error) {
	startTime := time.Now()

	if c.policy == nil {
		return nil, nil, dates.ErrNilPolicy
	}
	if err := c.policy.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid date policy: %w", err)
	}

	c.emit(opts, ProgressEvent{
		Type:    "start",
		Message: "开始导入 Excel 文件",
		Data: map[string]string{
			"filename": filepath.Base(opts.FilePath),
		},
	})

	file, err := excelize.OpenFile(opts.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer file.Close()

	ctx := &importContext{
		opts:   opts,
		file:   file,
		parser: parser.NewPostParser(file, c.book),
		report: &parser.ImportReport{
			ID:       uuid.NewString(),
			Filename: filepath.Base(opts.FilePath),
			Policy:   c.policy.String(),
			Sheets:   []parser.ParseResult{},
		},
		dataset: &model.Dataset{Source: opts.FilePath},
		headers: map[string]struct{}{},
		dummies: map[string]struct{}{},
	}

	sheetList, err := c.selectSheets(file, opts.Sheets)
	if err != nil {
		return nil, nil, err
	}
	ctx.report.TotalSheets = len(sheetList)

	c.logger.Info("import started",
		zap.String("file", opts.FilePath),
		zap.Int("sheets", len(sheetList)),
		zap.String("policy", c.policy.String()),
	)

	for _, sheetName := range sheetList {
		c.processSheet(ctx, sheetName)
	}

	if ctx.report.ImportedSheets == 0 {
		return nil, ctx.report, fmt.Errorf("no post sheets found in %s", filepath.Base(opts.FilePath))
	}

	c.fillIndicators(ctx.dataset)
	c.normalizeDates(ctx)

	ctx.report.Duration = time.Since(startTime)

	c.logger.Info("import finished",
		zap.String("id", ctx.report.ID),
		zap.Int("posts", ctx.dataset.Len()),
		zap.Int("dates_failed", ctx.report.Dates.Failed),
		zap.Duration("duration", ctx.report.Duration),
	)

	c.emit(opts, ProgressEvent{
		Type:    "done",
		Message: "导入完成",
		Data:    ctx.report,
	})

	return ctx.dataset, ctx.report, nil
}

// selectSheets 选择要导入的 Sheet
func (c *Coordinator) selectSheets(file *excelize.File, wanted []string) ([]string, error) {
	all := file.GetSheetList()
	if len(wanted) == 0 {
		return all, nil
	}
	exists := make(map[string]struct{}, len(all))
	for _, s := range all {
		exists[s] = struct{}{}
	}
	for _, s := range wanted {
		if _, ok := exists[s]; !ok {
			return nil, fmt.Errorf("sheet %q not found in workbook", s)
		}
	}
	return wanted, nil
}

// processSheet 处理单个 Sheet
func (c *Coordinator) processSheet(ctx *importContext, sheetName string) {
	sheetStartTime := time.Now()

	c.emit(ctx.opts, ProgressEvent{
		Type:    "sheet_start",
		Message: fmt.Sprintf("正在解析 Sheet: %s", sheetName),
		Data: map[string]string{
			"sheet_name": sheetName,
		},
	})

	data, err := ctx.parser.ParseSheet(sheetName)
	if err != nil {
		status := "error"
		if errors.Is(err, parser.ErrUnrecognizedSheet) {
			status = "skipped"
			ctx.report.SkippedSheets++
		}
		c.recordSheetResult(ctx, parser.ParseResult{
			SheetName: sheetName,
			SheetType: parser.SheetTypeUnknown,
			Status:    status,
			Errors:    []string{err.Error()},
			Duration:  time.Since(sheetStartTime),
		})
		c.logger.Warn("sheet not imported", zap.String("sheet", sheetName), zap.String("status", status), zap.Error(err))
		c.emit(ctx.opts, ProgressEvent{
			Type:    "warning",
			Message: fmt.Sprintf("跳过 Sheet: %s (%v)", sheetName, err),
		})
		return
	}

	for _, h := range data.Headers {
		if h == "" {
			continue
		}
		if _, ok := ctx.headers[h]; !ok {
			ctx.headers[h] = struct{}{}
			ctx.dataset.Headers = append(ctx.dataset.Headers, h)
		}
	}
	for _, col := range data.DummyColumns {
		if _, ok := ctx.dummies[col]; !ok {
			ctx.dummies[col] = struct{}{}
			ctx.dataset.DummyColumns = append(ctx.dataset.DummyColumns, col)
		}
	}
	ctx.dataset.Posts = append(ctx.dataset.Posts, data.Posts...)

	for _, w := range data.Warnings {
		ctx.report.Warnings = append(ctx.report.Warnings, fmt.Sprintf("[%s] %s", sheetName, w))
	}

	ctx.report.ImportedSheets++
	ctx.report.TotalRows += len(data.Posts) + data.SkippedRows
	ctx.report.ImportedRows += len(data.Posts)
	ctx.report.SkippedRows += data.SkippedRows

	c.recordSheetResult(ctx, parser.ParseResult{
		SheetName:    sheetName,
		SheetType:    data.Recognition.SheetType,
		Status:       "imported",
		ImportedRows: len(data.Posts),
		SkippedRows:  data.SkippedRows,
		Warnings:     data.Warnings,
		Duration:     time.Since(sheetStartTime),
	})

	c.logger.Debug("sheet imported",
		zap.String("sheet", sheetName),
		zap.String("type", string(data.Recognition.SheetType)),
		zap.Float64("confidence", data.Recognition.Confidence),
		zap.Int("rows", len(data.Posts)),
	)

	c.emit(ctx.opts, ProgressEvent{
		Type:    "sheet_done",
		Message: fmt.Sprintf("Sheet \"%s\" 导入成功: %d 行", sheetName, len(data.Posts)),
		Data: map[string]interface{}{
			"sheet_name":    sheetName,
			"sheet_type":    data.Recognition.SheetType,
			"imported_rows": len(data.Posts),
		},
	})
}

// fillIndicators 合并后补齐缺失的哑变量（其他 Sheet 独有的列记为 0）
func (c *Coordinator) fillIndicators(ds *model.Dataset) {
	for _, p := range ds.Posts {
		for _, col := range ds.DummyColumns {
			if _, ok := p.Indicators[col]; !ok {
				p.Indicators[col] = 0
			}
		}
	}
}

// normalizeDates 按配置的年份策略规范化全部日期
func (c *Coordinator) normalizeDates(ctx *importContext) {
	posts := ctx.dataset.Posts
	raws := make([]dates.Raw, len(posts))
	for i, p := range posts {
		raws[i] = p.RawDate
	}

	results := dates.NormalizeAll(raws, c.policy)
	for i, r := range results {
		posts[i].SetDate(r.Date, r.Err)
	}

	limit := ctx.opts.SampleLimit
	if limit <= 0 {
		limit = DefaultSampleLimit
	}
	summary := dates.Summarize(results, limit)
	ctx.dataset.DateSummary = summary
	ctx.report.Dates = summary

	if summary.Failed > 0 {
		msg := fmt.Sprintf("%d 个日期无法规范化 (%.1f%%)", summary.Failed, summary.FailedPercent())
		ctx.report.Warnings = append(ctx.report.Warnings, msg)
		c.emit(ctx.opts, ProgressEvent{
			Type:    "warning",
			Message: msg,
			Data:    summary.ByKind,
		})
	}
}

// recordSheetResult 记录 Sheet 处理结果
func (c *Coordinator) recordSheetResult(ctx *importContext, result parser.ParseResult) {
	ctx.report.Sheets = append(ctx.report.Sheets, result)
}

// emit 发送进度事件
func (c *Coordinator) emit(opts ImportOptions, evt ProgressEvent) {
	if opts.OnProgress == nil {
		return
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}
	opts.OnProgress(evt)
}
