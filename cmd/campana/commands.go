package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"campana/internal/analysis"
	"campana/internal/api"
	"campana/internal/config"
	"campana/internal/dates"
	"campana/internal/exporter"
	"campana/internal/report"
	"campana/internal/server"
	"campana/internal/util"
)

// inputFlags 输入工作簿参数
type inputFlags struct {
	input  string
	sheets []string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "输入工作簿（覆盖 [data] input）")
	cmd.Flags().StringSliceVar(&f.sheets, "sheet", nil, "只导入这些 Sheet（可重复）")
}

// outputPath 未指定 -o 时写到输出目录
func outputPath(cfg *config.AppConfig, output, filename string) (string, error) {
	if output != "" {
		if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
			return "", fmt.Errorf("failed to create output dir: %w", err)
		}
		return output, nil
	}
	if _, err := config.EnsureOutputDir(cfg); err != nil {
		return "", err
	}
	return config.OutputPath(cfg, filename), nil
}

func recodeCmd() *cobra.Command {
	var (
		in     inputFlags
		pf     policyFlags
		output string
	)
	cmd := &cobra.Command{
		Use:   "recode",
		Short: "Expande los códigos a variables dummy y escribe recodificado.xlsx",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, in.input, in.sheets, &pf, 0)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printImportSummary(out, s.report)

			path, err := outputPath(s.cfg, output, "recodificado.xlsx")
			if err != nil {
				return err
			}
			f, err := exporter.NewExporter(logger).WriteRecoded(s.dataset, progressPrinter(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer f.Close()
			if err := f.SaveAs(path); err != nil {
				return fmt.Errorf("failed to save %s: %w", path, err)
			}

			fmt.Fprintf(out, "Archivo guardado: %s (%d columnas dummy)\n", path, len(s.dataset.DummyColumns))
			return nil
		},
	}
	in.register(cmd)
	pf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "输出文件（默认为输出目录下的 recodificado.xlsx）")
	return cmd
}

func datesCmd() *cobra.Command {
	var (
		in       inputFlags
		pf       policyFlags
		compare  string
		samples  int
		academic bool
	)
	cmd := &cobra.Command{
		Use:   "dates",
		Short: "Diagnóstico de la conversión de fechas",
		Long: `Muestra cuántas fechas se convirtieron, los fallos por tipo con
ejemplos, la distribución mensual y, con --compare, las fechas que cambian
de año entre la política configurada y otra (fixed:2025 o academic:9:2024:2023).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if samples < 0 {
				return fmt.Errorf("--samples must be >= 0, got %d", samples)
			}
			s, err := openSession(cmd, in.input, in.sheets, &pf, samples)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printImportSummary(out, s.report)
			fmt.Fprintln(out)

			format := s.cfg.Report.Format()
			if cmd.Flags().Changed("academic") {
				format.Academic = academic
			}

			summary := s.dataset.DateSummary
			failures := summary.Samples
			if len(failures) > samples {
				failures = failures[:samples]
			}
			tables := []report.Table{
				report.DateSummaryTable(summary, s.policy.String()),
				report.DateFailuresTable(failures),
				report.MonthlyTable(analysis.MonthlyDistribution(s.dataset.Posts)),
			}

			if compare != "" {
				other, err := parsePolicyArg(compare)
				if err != nil {
					return err
				}
				raws := make([]dates.Raw, len(s.dataset.Posts))
				for i, p := range s.dataset.Posts {
					raws[i] = p.RawDate
				}
				shifts := dates.Compare(raws, s.policy, other)
				tables = append(tables, report.ShiftTable(shifts, s.policy.String(), other.String()))
				fmt.Fprintf(out, "%d fechas cambian entre %s y %s\n\n", len(shifts), s.policy, other)
			}

			printTables(out, nonEmpty(tables), format)
			return nil
		},
	}
	in.register(cmd)
	pf.register(cmd)
	cmd.Flags().StringVar(&compare, "compare", "", "与另一种策略比较（fixed:YYYY 或 academic:M:YYYY:YYYY）")
	cmd.Flags().IntVar(&samples, "samples", 10, "显示的失败样例数量（0 不显示）")
	cmd.Flags().BoolVar(&academic, "academic", false, "APA 学术格式")
	return cmd
}

func nonEmpty(tables []report.Table) []report.Table {
	out := tables[:0:0]
	for _, t := range tables {
		if t.Len() > 0 {
			out = append(out, t)
		}
	}
	return out
}

func reportCmd() *cobra.Command {
	var (
		in       inputFlags
		pf       policyFlags
		ff       filterFlags
		output   string
		pdfPath  string
		withPDF  bool
		academic bool
		topN     int
		quiet    bool
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Genera todas las tablas de análisis en Excel (y opcionalmente PDF)",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := ff.filter()
			if err != nil {
				return err
			}
			s, err := openSession(cmd, in.input, in.sheets, &pf, 0)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printImportSummary(out, s.report)
			fmt.Fprintln(out)

			format := s.cfg.Report.Format()
			if cmd.Flags().Changed("academic") {
				format.Academic = academic
			}
			top := s.cfg.Report.TopN
			if topN > 0 {
				top = topN
			}

			posts, cols := filter.Apply(s.dataset)
			tables := report.Build(posts, cols, report.BuildOptions{TopN: top, Variable: filter.Variable})
			if !quiet {
				printTables(out, tables, format)
			}

			const title = "Análisis de campaña electoral"
			exp := exporter.NewExporter(logger)

			path, err := outputPath(s.cfg, output, exporter.Filename(title, ".xlsx"))
			if err != nil {
				return err
			}
			f, err := exp.WriteTables(tables, format, progressPrinter(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer f.Close()
			if err := f.SaveAs(path); err != nil {
				return fmt.Errorf("failed to save %s: %w", path, err)
			}
			fmt.Fprintf(out, "Archivo guardado: %s (%d tablas, %d publicaciones)\n", path, len(tables), len(posts))

			if withPDF || pdfPath != "" {
				p, err := outputPath(s.cfg, pdfPath, exporter.Filename(title, ".pdf"))
				if err != nil {
					return err
				}
				file, err := os.Create(p)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", p, err)
				}
				defer file.Close()
				if err := exp.WritePDF(file, tables, format, title); err != nil {
					return err
				}
				fmt.Fprintf(out, "Archivo guardado: %s\n", p)
			}
			return nil
		},
	}
	in.register(cmd)
	pf.register(cmd)
	ff.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Excel 输出文件")
	cmd.Flags().BoolVar(&withPDF, "pdf", false, "同时输出 PDF")
	cmd.Flags().StringVar(&pdfPath, "pdf-output", "", "PDF 输出文件（隐含 --pdf）")
	cmd.Flags().BoolVar(&academic, "academic", false, "APA 学术格式")
	cmd.Flags().IntVar(&topN, "top", 0, "一般排行条数（覆盖 [report] top_n）")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "不在终端输出表格")
	return cmd
}

func serveCmd() *cobra.Command {
	var (
		in        inputFlags
		pf        policyFlags
		host      string
		port      int
		noBrowser bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Inicia el panel local de análisis",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, in.input, in.sheets, &pf, 0)
			if err != nil {
				return err
			}
			printImportSummary(cmd.OutOrStdout(), s.report)

			cfg := s.cfg.Server
			if host != "" {
				cfg.Host = host
			}
			if port > 0 {
				cfg.Port = port
			}

			handler := api.NewHandler(api.Options{
				Dataset: s.dataset,
				Report:  s.report,
				Format:  s.cfg.Report.Format(),
				TopN:    s.cfg.Report.TopN,
				Logger:  logger,
			})
			srv := server.NewServer(cfg, handler, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			url := util.DashboardURL(cfg.Host, cfg.Port)
			fmt.Fprintf(cmd.OutOrStdout(), "Panel disponible en %s (Ctrl+C para salir)\n", url)
			if cfg.OpenBrowser && !cfg.DevMode && !noBrowser {
				if err := util.OpenBrowserWithFallback(url); err != nil {
					logger.Warn("failed to open browser", zap.Error(err))
				}
			}

			if err := srv.Run(ctx); err != nil {
				return fmt.Errorf("dashboard stopped: %w", err)
			}
			return nil
		},
	}
	in.register(cmd)
	pf.register(cmd)
	cmd.Flags().StringVar(&host, "host", "", "监听地址（默认 127.0.0.1）")
	cmd.Flags().IntVar(&port, "port", 0, "监听端口")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "不自动打开浏览器")
	return cmd
}
