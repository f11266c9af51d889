package dates

// Result 单行规范化结果
type Result struct {
	Index int   `json:"index"`
	Raw   Raw   `json:"raw"`
	Date  Date  `json:"date"`
	Err   error `json:"-"`
}

// OK 是否成功
func (r Result) OK() bool { return r.Err == nil }

// NormalizeAll 逐行规范化（行之间无依赖）
func NormalizeAll(raws []Raw, p Policy) []Result {
	out := make([]Result, len(raws))
	for i, raw := range raws {
		d, err := Normalize(raw, p)
		out[i] = Result{Index: i, Raw: raw, Date: d, Err: err}
	}
	return out
}

// Failure 失败样本
type Failure struct {
	Index int    `json:"index"`
	Raw   string `json:"raw"`
	Kind  Kind   `json:"kind"`
	Error string `json:"error"`
}

// Summary 批量规范化统计
type Summary struct {
	Total   int          `json:"total"`
	Parsed  int          `json:"parsed"`
	Failed  int          `json:"failed"`
	ByKind  map[Kind]int `json:"byKind"`
	Samples []Failure    `json:"samples"`
}

// FailedPercent 失败占比（0-100）
func (s Summary) FailedPercent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Failed) * 100 / float64(s.Total)
}

// ParsedPercent 成功占比（0-100）
func (s Summary) ParsedPercent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Parsed) * 100 / float64(s.Total)
}

// Summarize 汇总结果；sampleLimit <= 0 时不保留样本
func Summarize(results []Result, sampleLimit int) Summary {
	s := Summary{
		Total:   len(results),
		ByKind:  map[Kind]int{},
		Samples: []Failure{},
	}
	for _, r := range results {
		if r.Err == nil {
			s.Parsed++
			continue
		}
		s.Failed++
		kind := KindOf(r.Err)
		s.ByKind[kind]++
		if len(s.Samples) < sampleLimit {
			s.Samples = append(s.Samples, Failure{
				Index: r.Index,
				Raw:   r.Raw.Text,
				Kind:  kind,
				Error: r.Err.Error(),
			})
		}
	}
	return s
}

// Shift 两种策略结果不一致的行
type Shift struct {
	Index int    `json:"index"`
	Raw   string `json:"raw"`
	A     *Date  `json:"a"`
	B     *Date  `json:"b"`
}

// Compare 对比两种策略，返回结果不同的行（含一方失败另一方成功）
func Compare(raws []Raw, a, b Policy) []Shift {
	ra := NormalizeAll(raws, a)
	rb := NormalizeAll(raws, b)

	var shifts []Shift
	for i := range raws {
		x, y := ra[i], rb[i]
		if x.OK() == y.OK() && (!x.OK() || x.Date == y.Date) {
			continue
		}
		sh := Shift{Index: i, Raw: raws[i].Text}
		if x.OK() {
			d := x.Date
			sh.A = &d
		}
		if y.OK() {
			d := y.Date
			sh.B = &d
		}
		shifts = append(shifts, sh)
	}
	return shifts
}
