package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"campana/internal/dates"
	"campana/internal/report"
)

// 日期年份策略
const (
	DateModeFixed    = "fixed"
	DateModeAcademic = "academic"
)

// ErrDatePolicyUnset 未配置年份策略（必须显式指定）
var ErrDatePolicyUnset = errors.New("date year policy is not configured: set [dates] mode or pass --year / --split-month")

// AppConfig 应用配置
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Data     DataConfig     `toml:"data"`
	Dates    DatesConfig    `toml:"dates"`
	Report   ReportConfig   `toml:"report"`
	Codebook CodebookConfig `toml:"codebook"`
}

// ServerConfig 面板服务配置
type ServerConfig struct {
	Host        string `toml:"host" validate:"required"`
	Port        int    `toml:"port" validate:"min=0,max=65535"`
	DevMode     bool   `toml:"dev_mode"`
	OpenBrowser bool   `toml:"open_browser"`
}

// DataConfig 输入输出配置
type DataConfig struct {
	Input     string   `toml:"input"`
	OutputDir string   `toml:"output_dir" validate:"required"`
	Sheets    []string `toml:"sheets"` // 为空时导入全部可识别的 Sheet
}

// DatesConfig 缺失年份的补全策略
type DatesConfig struct {
	Mode            string `toml:"mode" validate:"omitempty,oneof=fixed academic"`
	Year            int    `toml:"year" validate:"omitempty,min=1,max=9999"`
	SplitMonth      int    `toml:"split_month" validate:"omitempty,min=1,max=12"`
	YearBeforeSplit int    `toml:"year_before_split" validate:"omitempty,min=1,max=9999"`
	YearFromSplit   int    `toml:"year_from_split" validate:"omitempty,min=1,max=9999"`
}

// ReportConfig 报表配置
type ReportConfig struct {
	Academic bool `toml:"academic"`
	Decimals int  `toml:"decimals" validate:"min=0,max=6"`
	TopN     int  `toml:"top_n" validate:"min=1"`
}

// CodebookConfig 编码表配置
type CodebookConfig struct {
	Path string `toml:"path"` // 为空时使用内置编码表
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Host:        "127.0.0.1",
			Port:        20262,
			OpenBrowser: true,
		},
		Data: DataConfig{
			Input:     "datos.xlsx",
			OutputDir: "salidas",
		},
		Report: ReportConfig{
			Decimals: report.DefaultDecimals,
			TopN:     report.DefaultTopN,
		},
	}
}

// Policy 构建日期年份策略；未配置 mode 时返回 ErrDatePolicyUnset
func (d DatesConfig) Policy() (dates.Policy, error) {
	var p dates.Policy
	switch strings.ToLower(strings.TrimSpace(d.Mode)) {
	case "":
		return nil, ErrDatePolicyUnset
	case DateModeFixed:
		p = dates.FixedYear{Value: d.Year}
	case DateModeAcademic:
		p = dates.AcademicSplit{
			SplitMonth:      time.Month(d.SplitMonth),
			YearBeforeSplit: d.YearBeforeSplit,
			YearFromSplit:   d.YearFromSplit,
		}
	default:
		return nil, fmt.Errorf("unknown date mode %q", d.Mode)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid [dates] config: %w", err)
	}
	return p, nil
}

// Format 报表格式选项
func (r ReportConfig) Format() report.FormatOptions {
	return report.FormatOptions{Academic: r.Academic, Decimals: r.Decimals}
}

// Validate 校验配置取值范围
func (c *AppConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Addr 监听地址
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultPath 默认配置文件路径（可执行文件同目录下的 config.toml）
func DefaultPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return filepath.Join(exeDir, "config.toml")
}

// Load 从 TOML 加载配置；path 为空时使用默认路径，文件不存在时使用默认配置
func Load(path string) (*AppConfig, error) {
	config := DefaultConfig()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// 配置文件不存在，使用默认配置
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	applyEnv(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnv 环境变量覆盖
func applyEnv(config *AppConfig) {
	if v := strings.TrimSpace(os.Getenv("CAMPANA_INPUT")); v != "" {
		config.Data.Input = v
	}
	if v := strings.TrimSpace(os.Getenv("CAMPANA_OUTPUT_DIR")); v != "" {
		config.Data.OutputDir = v
	}
}

// Save 保存配置到 TOML 文件
func Save(config *AppConfig, path string) error {
	if path == "" {
		path = DefaultPath()
	}
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// EnsureOutputDir 确保输出目录存在
func EnsureOutputDir(config *AppConfig) (string, error) {
	dir := config.Data.OutputDir
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	return dir, nil
}

// OutputPath 输出文件路径
func OutputPath(config *AppConfig, filename string) string {
	return filepath.Join(config.Data.OutputDir, filename)
}
