package codebook

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ColumnSeparator 哑变量列名中变量与类别的分隔符
const ColumnSeparator = "__"

// CleanLabel 规范化标签为列名片段：
// NFKD 分解后去掉非 ASCII，转小写，空格与 / 替换为 _
func CleanLabel(label string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	ascii, _, err := transform.String(t, label)
	if err != nil {
		ascii = label
	}
	ascii = strings.TrimSpace(strings.ToLower(ascii))
	return strings.NewReplacer(" ", "_", "/", "_").Replace(ascii)
}

// DisplayLabel 列名片段转展示文本："formato_del_contenido" -> "Formato Del Contenido"
func DisplayLabel(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", " "))
	return cases.Title(language.Und).String(s)
}

// DummyColumn 生成哑变量列名
func DummyColumn(variable, label string) string {
	return CleanLabel(variable) + ColumnSeparator + CleanLabel(label)
}

// IsDummyColumn 是否为哑变量列
func IsDummyColumn(col string) bool {
	return strings.Contains(col, ColumnSeparator)
}

// SplitColumn 拆分哑变量列名为变量与类别
func SplitColumn(col string) (variable, category string, ok bool) {
	parts := strings.SplitN(col, ColumnSeparator, 2)
	if len(parts) != 2 {
		return col, "", false
	}
	return parts[0], parts[1], true
}

// Variables 从哑变量列中提取主变量（去重、排序）
func Variables(cols []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, col := range cols {
		v, _, ok := SplitColumn(col)
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// ColumnsOf 返回属于某主变量的哑变量列（保持原顺序）
func ColumnsOf(cols []string, variable string) []string {
	var out []string
	for _, col := range cols {
		if v, _, ok := SplitColumn(col); ok && v == variable {
			out = append(out, col)
		}
	}
	return out
}

// VariableLabel 哑变量列的主变量展示名
func VariableLabel(col string) string {
	v, _, _ := SplitColumn(col)
	return DisplayLabel(v)
}

// CategoryLabel 哑变量列的类别展示名
func CategoryLabel(col string) string {
	_, c, ok := SplitColumn(col)
	if !ok {
		return "Sin especificar"
	}
	return DisplayLabel(c)
}

// FullLabel "变量 - 类别" 形式
func FullLabel(col string) string {
	if !IsDummyColumn(col) {
		return col
	}
	return VariableLabel(col) + " - " + CategoryLabel(col)
}
