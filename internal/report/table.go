package report

import "math"

// NotAvailable 无法计算的数值（如单日的标准差）
const NotAvailable = "—"

// CellKind 单元格类型
type CellKind int

const (
	CellText CellKind = iota
	CellInt
	CellFloat
	CellPercent
	CellCoefficient // 相关系数，固定三位小数
)

// Cell 表格单元格
type Cell struct {
	Kind  CellKind
	Text  string
	Int   int
	Float float64
}

// Text 文本单元格
func Text(s string) Cell { return Cell{Kind: CellText, Text: s} }

// Int 整数单元格
func Int(n int) Cell { return Cell{Kind: CellInt, Int: n} }

// Float 浮点单元格
func Float(v float64) Cell { return Cell{Kind: CellFloat, Float: v} }

// Pct 百分比单元格（0-100）
func Pct(v float64) Cell { return Cell{Kind: CellPercent, Float: v} }

// Coef 相关系数单元格
func Coef(v float64) Cell { return Cell{Kind: CellCoefficient, Float: v} }

// String 按格式渲染
func (c Cell) String(o FormatOptions) string {
	switch c.Kind {
	case CellInt:
		return formatInt(c.Int, o.Academic)
	case CellFloat, CellPercent:
		return formatFloat(c.Float, o.Precision())
	case CellCoefficient:
		return formatFloat(c.Float, 3)
	}
	return c.Text
}

// Value 写入表格文件的值：数字保持数值类型，NaN 写为空
func (c Cell) Value(o FormatOptions) interface{} {
	switch c.Kind {
	case CellInt:
		return c.Int
	case CellFloat, CellPercent, CellCoefficient:
		if math.IsNaN(c.Float) || math.IsInf(c.Float, 0) {
			return ""
		}
		prec := o.Precision()
		if c.Kind == CellCoefficient {
			prec = 3
		}
		return roundTo(c.Float, prec)
	}
	return c.Text
}

// IsNumeric 是否为数值单元格
func (c Cell) IsNumeric() bool {
	return c.Kind != CellText
}

// Table 报表表格
type Table struct {
	Name    string   `json:"name"` // 短名称，用作 Sheet 名
	Title   string   `json:"title"`
	Columns []string `json:"columns"`
	Rows    [][]Cell `json:"-"`
	Note    string   `json:"note,omitempty"`
}

// AddRow 追加一行
func (t *Table) AddRow(cells ...Cell) {
	t.Rows = append(t.Rows, cells)
}

// Len 行数
func (t Table) Len() int {
	return len(t.Rows)
}

// Headers 按格式输出列名
func (t Table) Headers(o FormatOptions) []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = o.ColumnName(c)
	}
	return out
}

// Strings 按格式渲染全部行
func (t Table) Strings(o FormatOptions) [][]string {
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = make([]string, len(row))
		for j, c := range row {
			out[i][j] = c.String(o)
		}
	}
	return out
}

// Notes 表格下方的说明
func (t Table) Notes(o FormatOptions) []string {
	var out []string
	if t.Note != "" {
		out = append(out, t.Note)
	}
	if o.Academic && len(t.Rows) > 0 {
		out = append(out, AcademicNote)
	}
	return out
}

// View 渲染后的表格（用于 JSON 输出）
type View struct {
	Name    string     `json:"name"`
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Notes   []string   `json:"notes,omitempty"`
}

// Render 按格式渲染，n 为学术格式下的表格编号
func (t Table) Render(o FormatOptions, n int) View {
	return View{
		Name:    t.Name,
		Title:   o.Caption(t.Title, n),
		Columns: t.Headers(o),
		Rows:    t.Strings(o),
		Notes:   t.Notes(o),
	}
}
