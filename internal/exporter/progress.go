package exporter

// ProgressEvent 导出进度事件（命令行与面板展示）
type ProgressEvent struct {
	Percent int    `json:"percent"`
	Stage   string `json:"stage"`
}

func reportProgress(progress func(ProgressEvent), percent int, stage string) {
	if progress == nil {
		return
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	progress(ProgressEvent{
		Percent: percent,
		Stage:   stage,
	})
}

// stepPercent 第 i 个（从 0 开始）步骤完成时的进度，区间 [from, to]
func stepPercent(i, total, from, to int) int {
	if total <= 0 {
		return to
	}
	return from + (to-from)*(i+1)/total
}
