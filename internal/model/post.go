package model

import (
	"campana/internal/dates"
)

// Post 单条社交媒体帖子（输入表的一行）
type Post struct {
	SourceSheet string `json:"sourceSheet"`
	RowNo       int    `json:"rowNo"`

	Number    string      `json:"number"`    // Nº Publi
	Candidate string      `json:"candidate"` // 候选人
	RawDate   dates.Raw   `json:"rawDate"`   // 原始日期文本
	Date      *dates.Date `json:"date,omitempty"`
	DateError string      `json:"dateError,omitempty"`

	dateErr error

	Codes      map[string]string `json:"codes"`      // 变量列名 -> 原始代码单元格
	Indicators map[string]int    `json:"indicators"` // 哑变量列 -> 0/1
	Fields     map[string]string `json:"fields"`     // 原始表头 -> 单元格
}

// NewPost 创建空帖子
func NewPost(sheet string, rowNo int) *Post {
	return &Post{
		SourceSheet: sheet,
		RowNo:       rowNo,
		Codes:       map[string]string{},
		Indicators:  map[string]int{},
		Fields:      map[string]string{},
	}
}

// Indicator 读取哑变量值（缺失为 0）
func (p *Post) Indicator(col string) int {
	return p.Indicators[col]
}

// HasDate 是否成功规范化日期
func (p *Post) HasDate() bool {
	return p.Date != nil
}

// DateErr 日期规范化错误
func (p *Post) DateErr() error {
	return p.dateErr
}

// SetDate 记录日期规范化结果
func (p *Post) SetDate(d dates.Date, err error) {
	if err != nil {
		p.Date = nil
		p.dateErr = err
		p.DateError = err.Error()
		return
	}
	p.Date = &d
	p.dateErr = nil
	p.DateError = ""
}
