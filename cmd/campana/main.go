package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"campana/internal/config"
)

var version = "0.1.0"

// 全局参数
var (
	configPath string
	verbose    bool
	logger     = zap.NewNop()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "campana",
		Short: "Análisis de propaganda en publicaciones de campaña electoral",
		Long: `campana lee la hoja de codificación de publicaciones de campaña,
expande los códigos a variables dummy, normaliza las fechas escritas en
español ("12 de octubre", "5 sept") y genera rankings, tablas cruzadas,
correlaciones y evolución temporal en Excel, PDF o en un panel local.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := zap.NewProductionConfig()
			if verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err := cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "配置文件路径（默认为可执行文件同目录下的 config.toml）")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "输出调试日志")

	rootCmd.AddCommand(recodeCmd())
	rootCmd.AddCommand(datesCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(initCmd())

	return rootCmd
}

// initCmd 写出默认配置
func initCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Escribe un config.toml con los valores por defecto",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				path = config.DefaultPath()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			cfg := config.DefaultConfig()
			cfg.Dates = config.DatesConfig{
				Mode:            config.DateModeAcademic,
				SplitMonth:      9,
				YearBeforeSplit: 2024,
				YearFromSplit:   2023,
			}
			if err := config.Save(cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "配置已写入: %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "覆盖已有配置")
	return cmd
}
