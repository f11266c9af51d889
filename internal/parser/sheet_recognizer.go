package parser

import (
	"campana/internal/codebook"
)

// SheetRecognizer Sheet 类型识别器
type SheetRecognizer struct {
	mapper    *FieldMapper
	variables int
}

// NewSheetRecognizer 创建识别器
func NewSheetRecognizer(book *codebook.Codebook) *SheetRecognizer {
	n := 0
	if book != nil {
		n = len(book.Variables)
	}
	return &SheetRecognizer{
		mapper:    NewFieldMapper(book),
		variables: n,
	}
}

// Recognize 识别 Sheet 类型
func (r *SheetRecognizer) Recognize(sheetName string, columnNames []string) SheetRecognitionResult {
	hasCandidate, hasDate, variables, indicators := Summarize(r.mapper.Map(columnNames))

	result := SheetRecognitionResult{
		SheetName:  sheetName,
		SheetType:  SheetTypeUnknown,
		Variables:  variables,
		Indicators: indicators,
	}

	keyBoost := 0.0
	if hasCandidate {
		keyBoost += 0.5
	}
	if hasDate {
		keyBoost += 0.5
	}

	// 已展开的哑变量优先（如 recodificado.xlsx）
	if indicators > 0 {
		result.SheetType = SheetTypeRecoded
		result.Confidence = 0.6 + 0.4*keyBoost
		return result
	}

	if variables > 0 && r.variables > 0 {
		confidence := (float64(variables) + keyBoost*2) / float64(r.variables+2)
		if confidence >= 0.3 {
			result.SheetType = SheetTypeCoded
			result.Confidence = confidence
			return result
		}
	}

	return result
}
