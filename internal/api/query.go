package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"campana/internal/analysis"
	"campana/internal/dates"
	"campana/internal/report"
)

// parseFilter 从查询参数读取筛选条件：candidate, variable, category, from, to (YYYY-MM-DD)
func parseFilter(c *gin.Context) (analysis.Filter, error) {
	f := analysis.Filter{
		Candidate: strings.TrimSpace(c.Query("candidate")),
		Variable:  strings.TrimSpace(c.Query("variable")),
		Category:  strings.TrimSpace(c.Query("category")),
	}
	if f.Category != "" && f.Variable == "" {
		return f, errors.New("category 需要同时指定 variable")
	}

	var err error
	if f.From, err = parseDateParam(c, "from"); err != nil {
		return f, err
	}
	if f.To, err = parseDateParam(c, "to"); err != nil {
		return f, err
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return f, errors.New("日期范围无效：to 早于 from")
	}
	return f, nil
}

func parseDateParam(c *gin.Context, name string) (*dates.Date, error) {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return nil, nil
	}
	d, err := dates.ParseISO(v)
	if err != nil {
		return nil, fmt.Errorf("%s 日期格式错误（应为 YYYY-MM-DD）: %s", name, v)
	}
	return &d, nil
}

// parseFormat 读取 academic 与 decimals；未指定时使用默认格式
func parseFormat(c *gin.Context, defaults report.FormatOptions) (report.FormatOptions, error) {
	format := defaults
	if v := c.Query("academic"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return format, fmt.Errorf("academic 参数错误: %s", v)
		}
		format.Academic = b
	}
	if v := c.Query("decimals"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 6 {
			return format, fmt.Errorf("decimals 参数错误: %s", v)
		}
		format.Decimals = n
	}
	return format, nil
}

// intParam 读取正整数参数
func intParam(c *gin.Context, name string, def int) (int, error) {
	v := c.Query(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s 参数错误: %s", name, v)
	}
	return n, nil
}

// floatParam 读取 [0, 1] 区间的浮点参数
func floatParam(c *gin.Context, name string, def float64) (float64, error) {
	v := c.Query(name)
	if v == "" {
		return def, nil
	}
	x, err := strconv.ParseFloat(v, 64)
	if err != nil || x < 0 || x > 1 {
		return 0, fmt.Errorf("%s 参数错误: %s", name, v)
	}
	return x, nil
}
