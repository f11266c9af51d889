// Package report 将分析结果整理为可展示、可导出的表格。
package report

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// AcademicNote 学术格式下附加的说明
const AcademicNote = "Nota. Los valores están redondeados a dos decimales según estándares APA."

// DefaultDecimals 默认小数位
const DefaultDecimals = 2

// FormatOptions 表格格式选项，显式传给每个表格构建与导出函数
type FormatOptions struct {
	Academic bool `json:"academic"` // APA 学术格式
	Decimals int  `json:"decimals"` // 非学术格式的小数位，0 使用默认值
}

// DefaultFormat 默认格式
func DefaultFormat() FormatOptions {
	return FormatOptions{Decimals: DefaultDecimals}
}

// Precision 浮点数的小数位
func (o FormatOptions) Precision() int {
	if o.Academic || o.Decimals <= 0 {
		return DefaultDecimals
	}
	return o.Decimals
}

// Round 按当前格式四舍五入
func (o FormatOptions) Round(v float64) float64 {
	return roundTo(v, o.Precision())
}

// Caption 表格标题；学术格式下带编号 "Tabla N."
func (o FormatOptions) Caption(title string, n int) string {
	if !o.Academic || strings.HasPrefix(title, "Tabla") {
		return title
	}
	if n <= 0 {
		return "Tabla. " + title
	}
	return fmt.Sprintf("Tabla %d. %s", n, title)
}

// ColumnName 学术格式下的列名
func (o FormatOptions) ColumnName(col string) string {
	if !o.Academic {
		return col
	}
	switch strings.ToLower(col) {
	case "usos", "uso":
		return "Frecuencia"
	case "porcentaje":
		return "Porcentaje (%)"
	case "categoria", "categoría":
		return "Categoría"
	case "variable_principal":
		return "Variable"
	}
	return col
}

var thousands = message.NewPrinter(language.English)

func formatInt(n int, academic bool) string {
	if academic {
		return thousands.Sprintf("%d", n)
	}
	return fmt.Sprintf("%d", n)
}

func formatFloat(v float64, prec int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable
	}
	return fmt.Sprintf("%.*f", prec, v)
}

func roundTo(v float64, prec int) float64 {
	p := math.Pow(10, float64(prec))
	return math.Round(v*p) / p
}
