package report

import (
	"campana/internal/analysis"
	"campana/internal/codebook"
	"campana/internal/model"
)

// 报表参数的默认值
const (
	DefaultTopN            = 10
	TopPerCandidateN       = 5
	CoOccurrenceMinTotal   = 10
	CoOccurrenceLimit      = 15
	CorrelationMinUses     = 5
	CorrelationTopColumns  = 15
	CorrelationThreshold   = 0.3
	TemporalColumnsLimit   = 6
	minCorrelationColumns  = 4
	comparisonPerCandidate = 5
)

// BuildOptions 完整报表的参数
type BuildOptions struct {
	TopN     int    // 一般排行的条数
	Variable string // 只分析某个主变量（列名片段），为空分析全部
}

// Build 按分析流程生成全部表格
func Build(posts []*model.Post, cols []string, opts BuildOptions) []Table {
	top := opts.TopN
	if top <= 0 {
		top = DefaultTopN
	}

	var tables []Table
	add := func(t Table) {
		if t.Len() > 0 {
			tables = append(tables, t)
		}
	}

	// 1. 排行
	add(RankingTable("Ranking general", "Ranking General de Estrategias", analysis.GeneralRanking(posts, cols, top)))
	if opts.Variable != "" {
		add(VariableRankingTable(opts.Variable, analysis.RankByVariable(posts, cols, opts.Variable)))
		add(ComparisonTable(opts.Variable, analysis.RankByCandidate(posts, cols), comparisonPerCandidate))
	} else {
		add(TopPerCandidateTable(analysis.TopPerCandidate(posts, cols, TopPerCandidateN)))
		for _, v := range codebook.Variables(cols) {
			add(VariableRankingTable(v, analysis.RankByVariable(posts, cols, v)))
		}
	}

	// 2. 时间演变
	temporal := TemporalColumns(cols, opts.Variable)
	if len(temporal) > 0 {
		days := analysis.Evolution(posts, temporal)
		add(EvolutionTable(days, temporal))
		if len(days) > 0 {
			add(StatsTable(analysis.Stats(days, temporal)))
		}
	}

	// 3. 出现 x 企业形象
	appearance := analysis.SelectColumns(cols, analysis.AppearanceKeywords, 0)
	corporate := analysis.SelectColumns(cols, analysis.CorporateKeywords, 0)
	if len(appearance) > 0 && len(corporate) > 0 {
		pairs := analysis.CoOccurrence(posts, appearance, corporate, CoOccurrenceMinTotal)
		add(CoOccurrenceTable(pairs, CoOccurrenceLimit))
	}

	// 4. 宣传技巧
	propaganda := analysis.SelectColumns(cols, analysis.PropagandaKeywords, 0)
	if len(propaganda) > 0 {
		add(UsageTable(analysis.UsageByCandidate(posts, propaganda)))
	}

	// 5. Plain-folks
	plain := analysis.SelectColumns(cols, analysis.PlainFolksKeywords, 0)
	if len(plain) > 0 && len(analysis.WithAny(posts, plain)) > 0 {
		add(ShareTable("Plain-folks por candidato", "Uso de Estrategia Plain-Folks por Candidato", analysis.CandidateShare(posts, plain)))
	}

	// 6. 相关
	frequent := analysis.MinUses(posts, cols, CorrelationMinUses)
	if len(frequent) >= minCorrelationColumns {
		m := analysis.Correlation(posts, analysis.TopColumns(posts, frequent, CorrelationTopColumns))
		add(CorrelationTable(analysis.StrongPairs(m, CorrelationThreshold), CorrelationThreshold))
	}

	return tables
}

// TemporalColumns 时间演变跟踪的列（指定主变量时取其前几列）
func TemporalColumns(cols []string, variable string) []string {
	if variable != "" {
		sel := codebook.ColumnsOf(cols, variable)
		if len(sel) > TemporalColumnsLimit {
			sel = sel[:TemporalColumnsLimit]
		}
		return sel
	}
	return analysis.SelectColumns(cols, analysis.TemporalKeywords, TemporalColumnsLimit)
}
