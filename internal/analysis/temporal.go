package analysis

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"campana/internal/codebook"
	"campana/internal/dates"
	"campana/internal/model"
)

// DayCounts 某一天各列的使用次数
type DayCounts struct {
	Date   dates.Date     `json:"date"`
	Posts  int            `json:"posts"`
	Counts map[string]int `json:"counts"`
}

// Evolution 按日汇总各列使用次数（无日期的帖子不计入），按日期升序
func Evolution(posts []*model.Post, cols []string) []DayCounts {
	byDay := map[dates.Date]*DayCounts{}
	for _, p := range posts {
		if !p.HasDate() {
			continue
		}
		day, ok := byDay[*p.Date]
		if !ok {
			day = &DayCounts{Date: *p.Date, Counts: make(map[string]int, len(cols))}
			for _, col := range cols {
				day.Counts[col] = 0
			}
			byDay[*p.Date] = day
		}
		day.Posts++
		for _, col := range cols {
			day.Counts[col] += p.Indicator(col)
		}
	}

	out := make([]DayCounts, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Stat 某列按日序列的描述统计
type Stat struct {
	Column string  `json:"column"`
	Label  string  `json:"label"`
	Total  int     `json:"total"`
	Mean   float64 `json:"mean"`
	Max    int     `json:"max"`
	Min    int     `json:"min"`
	StdDev float64 `json:"stdDev"` // 样本标准差，少于两天时为 NaN
}

// Stats 各列按日序列的描述统计
func Stats(days []DayCounts, cols []string) []Stat {
	out := make([]Stat, 0, len(cols))
	for _, col := range cols {
		s := Stat{Column: col, Label: codebook.CategoryLabel(col), StdDev: math.NaN()}
		if len(days) == 0 {
			s.Mean = math.NaN()
			out = append(out, s)
			continue
		}
		values := make([]float64, len(days))
		for i, d := range days {
			values[i] = float64(d.Counts[col])
		}
		s.Total = int(floats.Sum(values))
		s.Mean = stat.Mean(values, nil)
		s.Max = int(floats.Max(values))
		s.Min = int(floats.Min(values))
		if len(values) > 1 {
			s.StdDev = stat.StdDev(values, nil)
		}
		out = append(out, s)
	}
	return out
}

// MonthCount 某年某月的帖子数
type MonthCount struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Count int        `json:"count"`
}

// MonthlyDistribution 规范化日期的月份分布（按时间升序）
func MonthlyDistribution(posts []*model.Post) []MonthCount {
	type ym struct {
		y int
		m time.Month
	}
	counts := map[ym]int{}
	for _, p := range posts {
		if p.HasDate() {
			counts[ym{p.Date.Year, p.Date.Month}]++
		}
	}
	out := make([]MonthCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, MonthCount{Year: k.y, Month: k.m, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// DateRange 规范化日期的最小与最大值
func DateRange(posts []*model.Post) (from, to dates.Date, ok bool) {
	for _, p := range posts {
		if !p.HasDate() {
			continue
		}
		if !ok {
			from, to, ok = *p.Date, *p.Date, true
			continue
		}
		if p.Date.Before(from) {
			from = *p.Date
		}
		if to.Before(*p.Date) {
			to = *p.Date
		}
	}
	return from, to, ok
}
