package dates

import (
	"fmt"
	"time"
)

// Policy 缺失年份的补全策略
type Policy interface {
	// Year 返回给定月份应使用的年份
	Year(month time.Month) int
	Validate() error
	String() string
}

// FixedYear 所有日期使用同一年
type FixedYear struct {
	Value int `json:"year"`
}

func (p FixedYear) Year(time.Month) int { return p.Value }

func (p FixedYear) Validate() error {
	if p.Value < 1 || p.Value > 9999 {
		return fmt.Errorf("fixed year out of range: %d", p.Value)
	}
	return nil
}

func (p FixedYear) String() string {
	return fmt.Sprintf("fixed(%d)", p.Value)
}

// AcademicSplit 以分界月份切分年份：
// 月份 >= SplitMonth 使用 YearFromSplit，否则使用 YearBeforeSplit。
type AcademicSplit struct {
	SplitMonth      time.Month `json:"splitMonth"`
	YearBeforeSplit int        `json:"yearBeforeSplit"`
	YearFromSplit   int        `json:"yearFromSplit"`
}

func (p AcademicSplit) Year(month time.Month) int {
	if month >= p.SplitMonth {
		return p.YearFromSplit
	}
	return p.YearBeforeSplit
}

func (p AcademicSplit) Validate() error {
	if p.SplitMonth < time.January || p.SplitMonth > time.December {
		return fmt.Errorf("split month out of range: %d", p.SplitMonth)
	}
	if p.YearBeforeSplit < 1 || p.YearBeforeSplit > 9999 {
		return fmt.Errorf("year before split out of range: %d", p.YearBeforeSplit)
	}
	if p.YearFromSplit < 1 || p.YearFromSplit > 9999 {
		return fmt.Errorf("year from split out of range: %d", p.YearFromSplit)
	}
	return nil
}

func (p AcademicSplit) String() string {
	return fmt.Sprintf("academic(split=%d, before=%d, from=%d)", p.SplitMonth, p.YearBeforeSplit, p.YearFromSplit)
}
