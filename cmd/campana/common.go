package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"campana/internal/analysis"
	"campana/internal/codebook"
	"campana/internal/config"
	"campana/internal/dates"
	"campana/internal/importer"
	"campana/internal/model"
	"campana/internal/parser"
)

// policyFlags 覆盖 [dates] 的命令行参数
type policyFlags struct {
	year            int
	splitMonth      int
	yearBeforeSplit int
	yearFromSplit   int
}

func (p *policyFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.year, "year", 0, "所有日期使用同一年（固定年份策略）")
	cmd.Flags().IntVar(&p.splitMonth, "split-month", 0, "学年分界月份（1-12）")
	cmd.Flags().IntVar(&p.yearBeforeSplit, "year-before-split", 0, "分界月份之前的月份使用的年份")
	cmd.Flags().IntVar(&p.yearFromSplit, "year-from-split", 0, "分界月份及之后的月份使用的年份")
}

// apply 将命令行参数合并到配置
func (p *policyFlags) apply(d *config.DatesConfig) error {
	academic := p.splitMonth != 0 || p.yearBeforeSplit != 0 || p.yearFromSplit != 0
	switch {
	case p.year != 0 && academic:
		return errors.New("--year cannot be combined with --split-month / --year-before-split / --year-from-split")
	case p.year != 0:
		*d = config.DatesConfig{Mode: config.DateModeFixed, Year: p.year}
	case academic:
		next := *d
		if next.Mode != config.DateModeAcademic {
			next = config.DatesConfig{Mode: config.DateModeAcademic}
		}
		if p.splitMonth != 0 {
			next.SplitMonth = p.splitMonth
		}
		if p.yearBeforeSplit != 0 {
			next.YearBeforeSplit = p.yearBeforeSplit
		}
		if p.yearFromSplit != 0 {
			next.YearFromSplit = p.yearFromSplit
		}
		*d = next
	}
	return nil
}

// parsePolicyArg 解析 "fixed:2025" 或 "academic:9:2024:2023"
func parsePolicyArg(arg string) (dates.Policy, error) {
	parts := strings.Split(strings.TrimSpace(arg), ":")
	nums := make([]int, 0, len(parts)-1)
	for _, s := range parts[1:] {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("invalid policy %q: %w", arg, err)
		}
		nums = append(nums, n)
	}

	var p dates.Policy
	switch {
	case parts[0] == config.DateModeFixed && len(nums) == 1:
		p = dates.FixedYear{Value: nums[0]}
	case parts[0] == config.DateModeAcademic && len(nums) == 3:
		p = dates.AcademicSplit{SplitMonth: time.Month(nums[0]), YearBeforeSplit: nums[1], YearFromSplit: nums[2]}
	default:
		return nil, fmt.Errorf("invalid policy %q (want fixed:YYYY or academic:M:YYYY:YYYY)", arg)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy %q: %w", arg, err)
	}
	return p, nil
}

// filterFlags 报表筛选参数
type filterFlags struct {
	candidate string
	variable  string
	category  string
	from      string
	to        string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.candidate, "candidate", "", "只分析该候选人")
	cmd.Flags().StringVar(&f.variable, "variable", "", "只分析该主变量（如 tipo_de_propaganda）")
	cmd.Flags().StringVar(&f.category, "category", "", "只保留使用该类别的帖子（需同时指定 --variable）")
	cmd.Flags().StringVar(&f.from, "from", "", "起始日期 YYYY-MM-DD")
	cmd.Flags().StringVar(&f.to, "to", "", "结束日期 YYYY-MM-DD")
}

func (f *filterFlags) filter() (analysis.Filter, error) {
	out := analysis.Filter{Candidate: f.candidate, Variable: f.variable, Category: f.category}
	if out.Category != "" && out.Variable == "" {
		return out, errors.New("--category requires --variable")
	}
	for _, item := range []struct {
		raw string
		dst **dates.Date
	}{{f.from, &out.From}, {f.to, &out.To}} {
		if item.raw == "" {
			continue
		}
		d, err := dates.ParseISO(item.raw)
		if err != nil {
			return out, fmt.Errorf("invalid date %q: %w", item.raw, err)
		}
		*item.dst = &d
	}
	return out, nil
}

// session 一次命令执行所需的配置与数据
type session struct {
	cfg     *config.AppConfig
	policy  dates.Policy
	dataset *model.Dataset
	report  *parser.ImportReport
}

// openSession 加载配置、合并命令行参数并导入工作簿；sampleLimit 为 0 时使用默认样例数
func openSession(cmd *cobra.Command, input string, sheets []string, pf *policyFlags, sampleLimit int) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if input != "" {
		cfg.Data.Input = input
	}
	if len(sheets) > 0 {
		cfg.Data.Sheets = sheets
	}
	if err := pf.apply(&cfg.Dates); err != nil {
		return nil, err
	}
	policy, err := cfg.Dates.Policy()
	if err != nil {
		return nil, err
	}

	book, err := codebook.LoadOrDefault(cfg.Codebook.Path)
	if err != nil {
		return nil, err
	}

	out := cmd.ErrOrStderr()
	coord := importer.NewCoordinator(book, policy, logger)
	ds, rep, err := coord.Import(importer.ImportOptions{
		FilePath:    cfg.Data.Input,
		Sheets:      cfg.Data.Sheets,
		SampleLimit: sampleLimit,
		OnProgress: func(e importer.ProgressEvent) {
			if e.Type == "sheet_done" || e.Type == "warning" {
				fmt.Fprintln(out, mutedStyle.Render(e.Message))
			}
		},
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("session ready", zap.String("input", cfg.Data.Input), zap.String("policy", policy.String()))
	return &session{cfg: cfg, policy: policy, dataset: ds, report: rep}, nil
}

// printImportSummary 导入结果摘要
func printImportSummary(w io.Writer, rep *parser.ImportReport) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s · %d publicaciones", rep.Filename, rep.ImportedRows)))
	fmt.Fprintf(w, "  hojas: %d importadas, %d omitidas · filas vacías: %d · política: %s\n",
		rep.ImportedSheets, rep.SkippedSheets, rep.SkippedRows, rep.Policy)
	fmt.Fprintf(w, "  fechas: %d convertidas, %d fallidas (%.1f%%)\n",
		rep.Dates.Parsed, rep.Dates.Failed, rep.Dates.FailedPercent())
	for _, warn := range rep.Warnings {
		fmt.Fprintln(w, warnStyle.Render("  ! "+warn))
	}
}
