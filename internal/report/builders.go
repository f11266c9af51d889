package report

import (
	"fmt"
	"strconv"

	"campana/internal/analysis"
	"campana/internal/codebook"
	"campana/internal/dates"
)

const separator = "—"

// RankingTable 一般排行
func RankingTable(name, title string, rankings []analysis.Ranking) Table {
	t := Table{
		Name:    name,
		Title:   title,
		Columns: []string{"Ranking", "Variable_Principal", "Categoria", "Usos", "Porcentaje"},
	}
	for i, r := range rankings {
		t.AddRow(Int(i+1), Text(r.Variable), Text(r.Category), Int(r.Uses), Pct(r.Percent))
	}
	return t
}

// VariableRankingTable 主变量内的类别排行
func VariableRankingTable(variable string, rankings []analysis.Ranking) Table {
	t := Table{
		Name:    "Ranking " + codebook.DisplayLabel(variable),
		Title:   "Ranking de " + codebook.DisplayLabel(variable),
		Columns: []string{"Ranking", "Categoria", "Usos", "Porcentaje"},
	}
	for i, r := range rankings {
		t.AddRow(Int(i+1), Text(r.Category), Int(r.Uses), Pct(r.Percent))
	}
	return t
}

// TopPerCandidateTable 每个候选人的前 N 个类别，候选人之间以分隔行隔开
func TopPerCandidateTable(tops []analysis.CandidateRanking) Table {
	t := Table{
		Name:    "Top por candidato",
		Title:   "Top Estrategias Más Utilizadas por Candidato (Análisis General)",
		Columns: []string{"Candidato", "Ranking", "Variable", "Categoria", "Usos", "Porcentaje"},
	}
	for ci, c := range tops {
		for i, r := range c.Rankings {
			name := ""
			if i == 0 {
				name = c.Candidate
			}
			t.AddRow(Text(name), Int(i+1), Text(r.Variable), Text(r.Category), Int(r.Uses), Pct(r.Percent))
		}
		if ci < len(tops)-1 {
			t.AddRow(Text(separator), Text(separator), Text(separator), Text(separator), Text(separator), Text(separator))
		}
	}
	return t
}

// ComparisonTable 主变量在各候选人间的对比
func ComparisonTable(variable string, ranks []analysis.CandidateRanking, n int) Table {
	t := Table{
		Name:    "Comparativa " + codebook.DisplayLabel(variable),
		Title:   fmt.Sprintf("Comparativa de %s por Candidato", codebook.DisplayLabel(variable)),
		Columns: []string{"Candidato", "Ranking", "Categoria", "Usos", "Porcentaje"},
	}
	for _, c := range ranks {
		rows := codebookRows(c.Rankings, variable)
		for i, r := range rows {
			if n > 0 && i >= n {
				break
			}
			t.AddRow(Text(c.Candidate), Int(i+1), Text(r.Category), Int(r.Uses), Pct(r.Percent))
		}
	}
	return t
}

func codebookRows(rankings []analysis.Ranking, variable string) []analysis.Ranking {
	var out []analysis.Ranking
	for _, r := range rankings {
		if v, _, ok := codebook.SplitColumn(r.Column); ok && v == variable {
			out = append(out, r)
		}
	}
	return out
}

// EvolutionTable 按日的使用次数
func EvolutionTable(days []analysis.DayCounts, cols []string) Table {
	t := Table{
		Name:    "Evolucion temporal",
		Title:   "Evolución Temporal de Estrategias Comunicativas Clave",
		Columns: []string{"Fecha", "Posts"},
	}
	for _, col := range cols {
		t.Columns = append(t.Columns, codebook.CategoryLabel(col))
	}
	for _, d := range days {
		row := []Cell{Text(d.Date.String()), Int(d.Posts)}
		for _, col := range cols {
			row = append(row, Int(d.Counts[col]))
		}
		t.AddRow(row...)
	}
	return t
}

// StatsTable 时间序列描述统计
func StatsTable(stats []analysis.Stat) Table {
	t := Table{
		Name:    "Estadisticas temporales",
		Title:   "Estadísticas Descriptivas de Uso Temporal por Estrategia",
		Columns: []string{"Estrategia", "Total", "Promedio", "Máximo", "Mínimo", "Desv. Estándar"},
	}
	for _, s := range stats {
		t.AddRow(Text(s.Label), Int(s.Total), Float(s.Mean), Int(s.Max), Int(s.Min), Float(s.StdDev))
	}
	return t
}

// CrosstabTable 列联表（含边际合计），附卡方检验说明
func CrosstabTable(res analysis.CrosstabResult, rowLabel, colLabel string) Table {
	t := Table{
		Name:    "Tabla de contingencia",
		Title:   fmt.Sprintf("Tabla de Contingencia: %s x %s", rowLabel, colLabel),
		Columns: []string{rowLabel},
		Note:    ChiSquareNote(res.Test),
	}
	t.Columns = append(t.Columns, res.ColLevels...)
	t.Columns = append(t.Columns, "Total")

	for i, level := range res.RowLevels {
		row := []Cell{Text(level)}
		for j := range res.ColLevels {
			row = append(row, Int(res.Counts[i][j]))
		}
		row = append(row, Int(res.RowTotals[i]))
		t.AddRow(row...)
	}
	total := []Cell{Text("Total")}
	for _, n := range res.ColTotals {
		total = append(total, Int(n))
	}
	total = append(total, Int(res.Total))
	t.AddRow(total...)
	return t
}

// CrosstabPercentTable 列联表的总体百分比
func CrosstabPercentTable(res analysis.CrosstabResult, rowLabel, colLabel string) Table {
	t := Table{
		Name:    "Tabla de porcentajes",
		Title:   fmt.Sprintf("Tabla de Porcentajes: %s x %s", rowLabel, colLabel),
		Columns: append([]string{rowLabel}, res.ColLevels...),
	}
	for i, level := range res.RowLevels {
		row := []Cell{Text(level)}
		for j := range res.ColLevels {
			row = append(row, Pct(res.Percent[i][j]))
		}
		t.AddRow(row...)
	}
	return t
}

// ChiSquareNote 卡方检验的说明文字
func ChiSquareNote(test *analysis.ChiSquare) string {
	if test == nil {
		return ""
	}
	note := fmt.Sprintf("Chi-cuadrado(%d) = %.3f, p = %.3f", test.DF, test.Statistic, test.PValue)
	if test.Corrected {
		note += " (corrección de Yates)"
	}
	return note
}

// CoOccurrenceTable 最常见的同时出现组合
func CoOccurrenceTable(pairs []analysis.Pair, limit int) Table {
	t := Table{
		Name:    "Cruces aparicion imagen",
		Title:   "Cruces Más Frecuentes: Aparición e Imagen Corporativa",
		Columns: []string{"Aparición", "Imagen_Corporativa", "Frecuencia", "Porcentaje"},
	}
	for i, p := range pairs {
		if limit > 0 && i >= limit {
			break
		}
		t.AddRow(Text(p.ALabel), Text(p.BLabel), Int(p.Count), Pct(p.Percent))
	}
	return t
}

// UsageTable 各类别按候选人的使用百分比
func UsageTable(uses []analysis.TechniqueUse) Table {
	t := Table{
		Name:    "Propaganda por candidato",
		Title:   "Uso de Técnicas de Propaganda por Candidato (Porcentajes)",
		Columns: []string{"Técnica"},
	}
	var candidates []string
	if len(uses) > 0 {
		candidates = uses[0].Candidates
	}
	t.Columns = append(t.Columns, candidates...)
	t.Columns = append(t.Columns, "Total")

	for _, u := range uses {
		row := []Cell{Text(u.Label)}
		for _, c := range candidates {
			row = append(row, Pct(u.Percent[c]))
		}
		row = append(row, Int(u.Total))
		t.AddRow(row...)
	}
	return t
}

// ShareTable 候选人使用一组类别的占比
func ShareTable(name, title string, shares []analysis.Share) Table {
	t := Table{
		Name:    name,
		Title:   title,
		Columns: []string{"Candidato", "Posts_Totales", "Posts_Con_Estrategia", "Porcentaje", "Intensidad_Promedio"},
	}
	for _, s := range shares {
		t.AddRow(Text(s.Candidate), Int(s.Posts), Int(s.WithAny), Pct(s.Percent), Float(s.Intensity))
	}
	return t
}

// CorrelationTable 显著相关的组合
func CorrelationTable(pairs []analysis.CorrelationPair, threshold float64) Table {
	t := Table{
		Name:    "Correlaciones",
		Title:   fmt.Sprintf("Correlaciones Significativas entre Estrategias (|r| >= %.1f)", threshold),
		Columns: []string{"Estrategia_1", "Estrategia_2", "Correlación", "Fuerza", "Dirección"},
	}
	for _, p := range pairs {
		t.AddRow(Text(p.ALabel), Text(p.BLabel), Coef(p.R), Text(p.Strength), Text(p.Direction))
	}
	return t
}

// CorrelationMatrixTable 相关系数矩阵
func CorrelationMatrixTable(m analysis.Matrix) Table {
	t := Table{
		Name:    "Matriz de correlaciones",
		Title:   "Matriz de Correlaciones entre Estrategias Comunicativas",
		Columns: []string{"Estrategia"},
	}
	for _, c := range m.Columns {
		t.Columns = append(t.Columns, codebook.CategoryLabel(c))
	}
	for i, c := range m.Columns {
		row := []Cell{Text(codebook.CategoryLabel(c))}
		for j := range m.Columns {
			row = append(row, Coef(m.Values[i][j]))
		}
		t.AddRow(row...)
	}
	return t
}

// DateSummaryTable 日期规范化汇总
func DateSummaryTable(s dates.Summary, policy string) Table {
	t := Table{
		Name:    "Diagnostico fechas",
		Title:   "Diagnóstico de Fechas",
		Columns: []string{"Concepto", "Cantidad", "Porcentaje"},
		Note:    "Política de año: " + policy,
	}
	t.AddRow(Text("Total"), Int(s.Total), Pct(100))
	t.AddRow(Text("Convertidas"), Int(s.Parsed), Pct(s.ParsedPercent()))
	t.AddRow(Text("Fallidas"), Int(s.Failed), Pct(s.FailedPercent()))
	for _, k := range dates.Kinds() {
		n := s.ByKind[k]
		if n == 0 {
			continue
		}
		t.AddRow(Text("Fallidas: "+k.String()), Int(n), Pct(analysis.Percent(n, s.Total)))
	}
	return t
}

// DateFailuresTable 日期失败样例
func DateFailuresTable(samples []dates.Failure) Table {
	t := Table{
		Name:    "Fechas fallidas",
		Title:   "Ejemplos de Fechas no Convertidas",
		Columns: []string{"Fila", "Texto", "Tipo", "Detalle"},
	}
	for _, f := range samples {
		t.AddRow(Int(f.Index+1), Text(f.Raw), Text(f.Kind.String()), Text(f.Error))
	}
	return t
}

// MonthlyTable 月份分布
func MonthlyTable(months []analysis.MonthCount) Table {
	t := Table{
		Name:    "Distribucion mensual",
		Title:   "Distribución de Publicaciones por Mes",
		Columns: []string{"Año", "Mes", "Posts"},
	}
	for _, m := range months {
		t.AddRow(Text(strconv.Itoa(m.Year)), Text(dates.MonthName(m.Month)), Int(m.Count))
	}
	return t
}

// ShiftTable 两种年份策略结果不同的行
func ShiftTable(shifts []dates.Shift, a, b string) Table {
	t := Table{
		Name:    "Comparacion politicas",
		Title:   "Fechas que Cambian según la Política de Año",
		Columns: []string{"Fila", "Texto", a, b},
	}
	for _, s := range shifts {
		t.AddRow(Int(s.Index+1), Text(s.Raw), Text(dateText(s.A)), Text(dateText(s.B)))
	}
	return t
}

func dateText(d *dates.Date) string {
	if d == nil {
		return NotAvailable
	}
	return d.String()
}
