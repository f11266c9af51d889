package dates

import (
	"fmt"
	"time"
)

// Raw 原始日期单元格（可能缺失）
type Raw struct {
	Text  string `json:"text"`
	Valid bool   `json:"valid"`
}

// Missing 缺失值
var Missing = Raw{}

// Text 构造存在的原始值
func Text(s string) Raw {
	return Raw{Text: s, Valid: true}
}

// Date 日历日期（无时间部分）
type Date struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

// Time 转为 UTC 零点
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String 格式 2006-01-02
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Compare 比较两个日期：-1 / 0 / 1
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

// Before 是否早于 o
func (d Date) Before(o Date) bool {
	return d.Compare(o) < 0
}

// ParseISO 解析 2006-01-02（用于接口查询参数）
func ParseISO(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
