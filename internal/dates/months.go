package dates

import (
	"strings"
	"time"
)

// MonthEntry 月份表项
type MonthEntry struct {
	Key   string     `json:"key"`
	Month time.Month `json:"month"`
}

// monthTable 按顺序匹配：先完整月名，再 sept，最后三字母缩写。
// 键只要被月份词包含即命中，第一个命中者生效。
var monthTable = []MonthEntry{
	{"enero", time.January},
	{"febrero", time.February},
	{"marzo", time.March},
	{"abril", time.April},
	{"mayo", time.May},
	{"junio", time.June},
	{"julio", time.July},
	{"agosto", time.August},
	{"septiembre", time.September},
	{"setiembre", time.September},
	{"octubre", time.October},
	{"noviembre", time.November},
	{"diciembre", time.December},
	{"sept", time.September},
	{"ene", time.January},
	{"feb", time.February},
	{"mar", time.March},
	{"abr", time.April},
	{"may", time.May},
	{"jun", time.June},
	{"jul", time.July},
	{"ago", time.August},
	{"sep", time.September},
	{"oct", time.October},
	{"nov", time.November},
	{"dic", time.December},
}

// Months 返回月份表副本（顺序即匹配顺序）
func Months() []MonthEntry {
	out := make([]MonthEntry, len(monthTable))
	copy(out, monthTable)
	return out
}

// lookupMonth 在月份表中查找被 token 包含的第一个键
func lookupMonth(token string) (time.Month, bool) {
	if token == "" {
		return 0, false
	}
	for _, e := range monthTable {
		if strings.Contains(token, e.Key) {
			return e.Month, true
		}
	}
	return 0, false
}

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// MonthName 西语月名
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}
