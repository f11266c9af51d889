package parser

import (
	"regexp"
	"strings"
)

var spaceRun = regexp.MustCompile(`\s+`)

// NormalizeColumnName 规范化列名：去除首尾空白、换行与制表符，压缩连续空格
func NormalizeColumnName(name string) string {
	name = strings.ReplaceAll(name, "\n", " ")
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.ReplaceAll(name, "\t", " ")
	name = spaceRun.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// NormalizeCell 规范化单元格值
func NormalizeCell(value string) string {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "nan", "none", "null", "n/a":
		return ""
	}
	return value
}

// MatchPattern 使用正则匹配
func MatchPattern(text, pattern string) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}

// ParseIndicator 解析哑变量单元格："1" / "1.0" / "TRUE" / "sí" -> 1
func ParseIndicator(value string) int {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "1.0", "true", "verdadero", "si", "sí", "x":
		return 1
	}
	return 0
}

// RowIsEmpty 整行为空
func RowIsEmpty(row []string) bool {
	for _, v := range row {
		if NormalizeCell(v) != "" {
			return false
		}
	}
	return true
}
