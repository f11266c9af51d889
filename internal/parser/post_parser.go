package parser

import (
	"errors"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"campana/internal/codebook"
	"campana/internal/dates"
	"campana/internal/model"
)

// ErrUnrecognizedSheet Sheet 不是帖子表（或为空）
var ErrUnrecognizedSheet = errors.New("unrecognized sheet")

// SheetData 单个 Sheet 的解析产物
type SheetData struct {
	Recognition  SheetRecognitionResult
	Headers      []string
	Posts        []*model.Post
	DummyColumns []string
	SkippedRows  int
	Warnings     []string
}

// PostParser 帖子表解析器
type PostParser struct {
	file       *excelize.File
	book       *codebook.Codebook
	recognizer *SheetRecognizer
	mapper     *FieldMapper
}

// NewPostParser 创建解析器
func NewPostParser(file *excelize.File, book *codebook.Codebook) *PostParser {
	return &PostParser{
		file:       file,
		book:       book,
		recognizer: NewSheetRecognizer(book),
		mapper:     NewFieldMapper(book),
	}
}

// ParseSheet 解析单个 Sheet；无法识别的 Sheet 返回错误
func (p *PostParser) ParseSheet(sheetName string) (*SheetData, error) {
	rows, err := p.file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("%w: sheet is empty", ErrUnrecognizedSheet)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = NormalizeColumnName(h)
	}

	recognition := p.recognizer.Recognize(sheetName, headers)
	if recognition.SheetType == SheetTypeUnknown {
		return nil, fmt.Errorf("%w: %s", ErrUnrecognizedSheet, sheetName)
	}

	mappings := p.mapper.Map(headers)
	if recognition.SheetType == SheetTypeRecoded {
		// 已展开的表以现有哑变量为准，代码列只作原样保留
		for idx, mp := range mappings {
			if mp.Kind == FieldVariable {
				mp.Kind = FieldPassthrough
				mp.Variable = ""
				mappings[idx] = mp
			}
		}
	}

	data := &SheetData{
		Recognition:  recognition,
		Headers:      headers,
		DummyColumns: p.dummyColumns(mappings),
		Warnings:     p.missingFieldWarnings(recognition.SheetType, mappings),
	}

	order := sortedIndexes(mappings)
	unknownCodes := map[string]int{}

	for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		if RowIsEmpty(row) {
			data.SkippedRows++
			continue
		}
		post := p.parseRow(row, mappings, order, sheetName, rowIdx+1, unknownCodes)
		data.Posts = append(data.Posts, post)
	}

	for _, key := range sortedKeys(unknownCodes) {
		data.Warnings = append(data.Warnings, fmt.Sprintf("%s: %d 个单元格包含编码表之外的代码", key, unknownCodes[key]))
	}

	return data, nil
}

// parseRow 解析单行数据
func (p *PostParser) parseRow(row []string, mappings map[int]FieldMapping, order []int, sheetName string, rowNo int, unknownCodes map[string]int) *model.Post {
	post := model.NewPost(sheetName, rowNo)
	post.RawDate = dates.Missing

	for _, colIdx := range order {
		mapping := mappings[colIdx]
		value := ""
		if colIdx < len(row) {
			value = NormalizeCell(row[colIdx])
		}

		switch mapping.Kind {
		case FieldDerived:
			continue
		case FieldCandidate:
			post.Candidate = value
		case FieldDate:
			if value != "" {
				post.RawDate = dates.Text(value)
			}
		case FieldNumber:
			post.Number = value
		case FieldVariable:
			post.Codes[mapping.Variable] = value
			if v, ok := p.book.Lookup(mapping.Variable); ok {
				for col, flag := range v.Expand(value) {
					post.Indicators[col] = flag
				}
				if unk := v.Unknown(value); len(unk) > 0 {
					unknownCodes[mapping.ColumnName]++
				}
			}
		case FieldIndicator:
			post.Indicators[mapping.Variable] = ParseIndicator(value)
		}

		post.Fields[mapping.ColumnName] = value
	}

	return post
}

// dummyColumns 本 Sheet 的哑变量列
func (p *PostParser) dummyColumns(mappings map[int]FieldMapping) []string {
	var out []string
	for _, idx := range sortedIndexes(mappings) {
		mp := mappings[idx]
		switch mp.Kind {
		case FieldIndicator:
			out = append(out, mp.Variable)
		case FieldVariable:
			if v, ok := p.book.Lookup(mp.Variable); ok {
				out = append(out, v.Columns()...)
			}
		}
	}
	return out
}

// missingFieldWarnings 缺失的关键字段与编码变量
func (p *PostParser) missingFieldWarnings(sheetType SheetType, mappings map[int]FieldMapping) []string {
	hasCandidate, hasDate, _, _ := Summarize(mappings)

	var warnings []string
	if !hasCandidate {
		warnings = append(warnings, "未找到候选人列 (Candidato)")
	}
	if !hasDate {
		warnings = append(warnings, "未找到日期列 (Fecha)")
	}
	if sheetType != SheetTypeCoded || p.book == nil {
		return warnings
	}

	present := map[string]struct{}{}
	for _, mp := range mappings {
		if mp.Kind == FieldVariable {
			present[mp.Variable] = struct{}{}
		}
	}
	for _, v := range p.book.Variables {
		if _, ok := present[v.Name]; !ok {
			warnings = append(warnings, fmt.Sprintf("未找到编码变量列: %s", v.Name))
		}
	}
	return warnings
}

func sortedIndexes(mappings map[int]FieldMapping) []int {
	out := make([]int, 0, len(mappings))
	for idx := range mappings {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

func sortedKeys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
