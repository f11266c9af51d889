package parser

import (
	"time"

	"campana/internal/dates"
)

// SheetType Sheet 类型
type SheetType string

const (
	SheetTypeCoded   SheetType = "coded"   // 原始编码表（每个变量一列代码）
	SheetTypeRecoded SheetType = "recoded" // 已展开哑变量的表
	SheetTypeUnknown SheetType = "unknown"
)

// FieldKind 列对应的字段种类
type FieldKind string

const (
	FieldCandidate   FieldKind = "candidate"
	FieldDate        FieldKind = "date"
	FieldNumber      FieldKind = "number"
	FieldVariable    FieldKind = "variable"  // 编码变量列
	FieldIndicator   FieldKind = "indicator" // 哑变量列
	FieldDerived     FieldKind = "derived"   // 导出时重新计算的列（忽略）
	FieldPassthrough FieldKind = "passthrough"
)

// SheetRecognitionResult Sheet 识别结果
type SheetRecognitionResult struct {
	SheetName  string    `json:"sheetName"`
	SheetType  SheetType `json:"sheetType"`
	Confidence float64   `json:"confidence"` // 置信度 0-1
	Variables  int       `json:"variables"`  // 识别到的编码变量列数
	Indicators int       `json:"indicators"` // 识别到的哑变量列数
}

// FieldMapping 字段映射结果
type FieldMapping struct {
	ColumnIndex int       `json:"columnIndex"` // Excel 列索引
	ColumnName  string    `json:"columnName"`  // Excel 列名（规范化后）
	Kind        FieldKind `json:"kind"`
	Variable    string    `json:"variable,omitempty"` // 编码变量名 / 哑变量列名
}

// ParseResult 单个 Sheet 解析结果
type ParseResult struct {
	SheetName    string        `json:"sheetName"`
	SheetType    SheetType     `json:"sheetType"`
	Status       string        `json:"status"` // imported/skipped/error
	ImportedRows int           `json:"importedRows"`
	SkippedRows  int           `json:"skippedRows"`
	Errors       []string      `json:"errors,omitempty"`
	Warnings     []string      `json:"warnings,omitempty"`
	Duration     time.Duration `json:"duration"`
}

// ImportReport 导入报告
type ImportReport struct {
	ID             string        `json:"id"`
	Filename       string        `json:"filename"`
	Policy         string        `json:"policy"`
	TotalSheets    int           `json:"totalSheets"`
	ImportedSheets int           `json:"importedSheets"`
	SkippedSheets  int           `json:"skippedSheets"`
	TotalRows      int           `json:"totalRows"`
	ImportedRows   int           `json:"importedRows"`
	SkippedRows    int           `json:"skippedRows"`
	Duration       time.Duration `json:"duration"`
	Sheets         []ParseResult `json:"sheets"`
	Warnings       []string      `json:"warnings,omitempty"`
	Dates          dates.Summary `json:"dates"`
}
