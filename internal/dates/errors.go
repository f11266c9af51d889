package dates

import (
	"errors"
	"fmt"
)

// Kind 日期规范化失败类型
type Kind int

const (
	MissingInput        Kind = iota + 1 // 缺失值
	MalformedPattern                    // 缺少 " de " 分隔
	UnparseableDay                      // 日部分无数字
	UnknownMonth                        // 月份词不在月份表中
	InvalidCalendarDate                 // 日期在日历上不存在
)

var kindNames = map[Kind]string{
	MissingInput:        "missing_input",
	MalformedPattern:    "malformed_pattern",
	UnparseableDay:      "unparseable_day",
	UnknownMonth:        "unknown_month",
	InvalidCalendarDate: "invalid_calendar_date",
}

// Kinds 全部失败类型（按固定顺序）
func Kinds() []Kind {
	return []Kind{MissingInput, MalformedPattern, UnparseableDay, UnknownMonth, InvalidCalendarDate}
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText JSON 中输出为名称
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// 哨兵错误，配合 errors.Is 使用
var (
	ErrMissingInput        = errors.New("missing input")
	ErrMalformedPattern    = errors.New("malformed pattern")
	ErrUnparseableDay      = errors.New("unparseable day")
	ErrUnknownMonth        = errors.New("unknown month")
	ErrInvalidCalendarDate = errors.New("invalid calendar date")
)

var kindErrors = map[Kind]error{
	MissingInput:        ErrMissingInput,
	MalformedPattern:    ErrMalformedPattern,
	UnparseableDay:      ErrUnparseableDay,
	UnknownMonth:        ErrUnknownMonth,
	InvalidCalendarDate: ErrInvalidCalendarDate,
}

// ParseError 规范化失败，保留原始文本用于诊断
type ParseError struct {
	Kind   Kind
	Raw    string
	Detail string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("dates: %s: %q", kindErrors[e.Kind], e.Raw)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// Is 使 errors.Is(err, ErrUnknownMonth) 等判断生效
func (e *ParseError) Is(target error) bool {
	return kindErrors[e.Kind] == target
}

// KindOf 提取失败类型；非 ParseError 返回 0
func KindOf(err error) Kind {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}

func fail(kind Kind, raw, detail string) *ParseError {
	return &ParseError{Kind: kind, Raw: raw, Detail: detail}
}
