package parser

import (
	"campana/internal/codebook"
)

// FieldMapper 字段映射器
type FieldMapper struct {
	book *codebook.Codebook
}

// NewFieldMapper 创建字段映射器
func NewFieldMapper(book *codebook.Codebook) *FieldMapper {
	return &FieldMapper{book: book}
}

// Map 映射表头到字段，返回 列索引 -> 映射
func (m *FieldMapper) Map(columnNames []string) map[int]FieldMapping {
	mappings := make(map[int]FieldMapping, len(columnNames))
	for idx, raw := range columnNames {
		col := NormalizeColumnName(raw)
		if col == "" {
			continue
		}
		mappings[idx] = m.mapColumn(col, idx)
	}
	return mappings
}

// mapColumn 映射单个列
func (m *FieldMapper) mapColumn(col string, idx int) FieldMapping {
	mapping := FieldMapping{
		ColumnIndex: idx,
		ColumnName:  col,
		Kind:        FieldPassthrough,
	}

	key := codebook.CleanLabel(col)

	// 已展开的哑变量列
	if codebook.IsDummyColumn(key) {
		mapping.Kind = FieldIndicator
		mapping.Variable = key
		return mapping
	}

	// 基础信息字段
	if MatchPattern(key, `^fecha_convertida$`) {
		mapping.Kind = FieldDerived
		return mapping
	}
	if MatchPattern(key, `^candidat[oa]s?$`) {
		mapping.Kind = FieldCandidate
		return mapping
	}
	if MatchPattern(key, `^fecha(_de)?(_publicacion|_post)?$`) {
		mapping.Kind = FieldDate
		return mapping
	}
	if MatchPattern(key, `^(no?|num|numero)\.?_?(de_)?publi(cacion)?$`) {
		mapping.Kind = FieldNumber
		return mapping
	}

	// 编码变量
	if m.book != nil {
		if v, ok := m.book.Lookup(col); ok {
			mapping.Kind = FieldVariable
			mapping.Variable = v.Name
			return mapping
		}
	}

	return mapping
}

// Summarize 统计映射中的关键字段
func Summarize(mappings map[int]FieldMapping) (hasCandidate, hasDate bool, variables, indicators int) {
	for _, mp := range mappings {
		switch mp.Kind {
		case FieldCandidate:
			hasCandidate = true
		case FieldDate:
			hasDate = true
		case FieldVariable:
			variables++
		case FieldIndicator:
			indicators++
		}
	}
	return hasCandidate, hasDate, variables, indicators
}
