package exporter

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

// MaxSheetName Excel Sheet 名称最大长度
const MaxSheetName = 31

const invalidSheetChars = `:\/?*[]`

// sheetNamer 生成合法且不重复的 Sheet 名称
type sheetNamer struct {
	used map[string]struct{}
}

func newSheetNamer() *sheetNamer {
	return &sheetNamer{used: map[string]struct{}{}}
}

// Name 返回可用的 Sheet 名称（去除非法字符、截断到 31 个字符、重名加序号）
func (n *sheetNamer) Name(raw string) string {
	base := SheetName(raw)
	name := base
	for i := 2; ; i++ {
		key := strings.ToLower(name)
		if _, ok := n.used[key]; !ok {
			n.used[key] = struct{}{}
			return name
		}
		suffix := fmt.Sprintf(" (%d)", i)
		name = truncateRunes(base, MaxSheetName-len(suffix)) + suffix
	}
}

// SheetName 清理单个 Sheet 名称
func SheetName(raw string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalidSheetChars, r) {
			return '_'
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, raw)
	name = strings.Trim(strings.TrimSpace(name), "'")
	name = strings.TrimSpace(truncateRunes(name, MaxSheetName))
	if name == "" {
		return "Hoja"
	}
	return name
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Filename 导出文件名，例如 "Análisis campaña" + ".xlsx" -> "analisis-campana.xlsx"
func Filename(title, ext string) string {
	name := slug.Make(title)
	if name == "" {
		name = "campana"
	}
	return name + ext
}
