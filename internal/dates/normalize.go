// Package dates 将西语自由文本日期（"10 de abril"）规范化为日历日期。
//
// 仅识别 "<日> de <月名>[ de <年>]" 形式；未写年份时由调用方提供的 Policy 决定。
// 所有失败都以 *ParseError 返回，不会 panic。
package dates

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

const separator = " de "

var (
	digitRun = regexp.MustCompile(`\d+`)
	yearRun  = regexp.MustCompile(`^\d+`)
)

// ErrNilPolicy 未提供年份策略
var ErrNilPolicy = errors.New("dates: nil policy")

// Normalize 规范化单个原始日期
func Normalize(raw Raw, p Policy) (Date, error) {
	if p == nil {
		return Date{}, ErrNilPolicy
	}
	if !raw.Valid {
		return Date{}, fail(MissingInput, "", "")
	}

	text := strings.TrimSpace(strings.ToLower(raw.Text))
	if text == "" {
		return Date{}, fail(MissingInput, raw.Text, "blank")
	}

	parts := strings.Split(text, separator)
	if len(parts) < 2 {
		return Date{}, fail(MalformedPattern, raw.Text, "")
	}

	dayStr := digitRun.FindString(parts[0])
	if dayStr == "" {
		return Date{}, fail(UnparseableDay, raw.Text, "")
	}

	words := strings.Fields(parts[1])
	if len(words) == 0 {
		return Date{}, fail(UnknownMonth, raw.Text, "empty month token")
	}
	month, ok := lookupMonth(words[0])
	if !ok {
		return Date{}, fail(UnknownMonth, raw.Text, words[0])
	}

	year := p.Year(month)
	if len(parts) > 2 {
		// 不足四位的数字不视为年份；超过四位或 0000 视为无效年份
		if y := yearRun.FindString(strings.TrimSpace(parts[2])); len(y) >= 4 {
			n, err := strconv.Atoi(y)
			if err != nil || len(y) > 4 || n < 1 {
				return Date{}, fail(InvalidCalendarDate, raw.Text, "year "+y)
			}
			year = n
		}
	}

	day, err := strconv.Atoi(dayStr)
	if err != nil || day < 1 || day > daysIn(year, month) {
		return Date{}, fail(InvalidCalendarDate, raw.Text, "day "+dayStr+" in "+MonthName(month))
	}

	return Date{Year: year, Month: month, Day: day}, nil
}

// NormalizeString 规范化字符串；空白串视为缺失
func NormalizeString(s string, p Policy) (Date, error) {
	return Normalize(Text(s), p)
}
