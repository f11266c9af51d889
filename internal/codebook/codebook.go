// Package codebook 定义编码表（变量 -> 代码 -> 类别）以及哑变量列名规则。
package codebook

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Category 类别
type Category struct {
	Code  string `toml:"code" json:"code"`
	Label string `toml:"label" json:"label"`
}

// Variable 编码变量（对应输入表的一列）
type Variable struct {
	Name       string     `toml:"name" json:"name"`
	Categories []Category `toml:"categories" json:"categories"`
}

// Codebook 编码表
type Codebook struct {
	Variables []Variable `toml:"variables" json:"variables"`
}

// Key 变量的列名片段
func (v Variable) Key() string {
	return CleanLabel(v.Name)
}

// Columns 变量的全部哑变量列
func (v Variable) Columns() []string {
	out := make([]string, 0, len(v.Categories))
	for _, c := range v.Categories {
		out = append(out, DummyColumn(v.Name, c.Label))
	}
	return out
}

// Expand 将多选单元格展开为各类别的 0/1 指标
func (v Variable) Expand(cell string) map[string]int {
	codes := map[string]struct{}{}
	for _, c := range SplitCodes(cell) {
		codes[c] = struct{}{}
	}
	out := make(map[string]int, len(v.Categories))
	for _, c := range v.Categories {
		col := DummyColumn(v.Name, c.Label)
		if _, ok := codes[c.Code]; ok {
			out[col] = 1
		} else {
			out[col] = 0
		}
	}
	return out
}

// Unknown 返回单元格中不属于编码表的代码
func (v Variable) Unknown(cell string) []string {
	known := map[string]struct{}{}
	for _, c := range v.Categories {
		known[c.Code] = struct{}{}
	}
	var out []string
	for _, code := range SplitCodes(cell) {
		if _, ok := known[code]; !ok {
			out = append(out, code)
		}
	}
	return out
}

// SplitCodes 拆分多选代码："1-3" / "1, 3" / "2.0"
func SplitCodes(cell string) []string {
	fields := strings.FieldsFunc(cell, func(r rune) bool {
		return r == '-' || r == ',' || r == ';'
	})
	var out []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		f = strings.TrimSuffix(f, ".0")
		if f == "" {
			continue
		}
		out = append(out, f)
	}
	return out
}

// DummyColumns 编码表生成的全部哑变量列（按编码表顺序）
func (c *Codebook) DummyColumns() []string {
	var out []string
	for _, v := range c.Variables {
		out = append(out, v.Columns()...)
	}
	return out
}

// Lookup 按表头查找变量（忽略大小写、重音与首尾空格）
func (c *Codebook) Lookup(header string) (*Variable, bool) {
	key := CleanLabel(header)
	if key == "" {
		return nil, false
	}
	for i := range c.Variables {
		if c.Variables[i].Key() == key {
			return &c.Variables[i], true
		}
	}
	return nil, false
}

// Validate 检查重复代码与空标签
func (c *Codebook) Validate() error {
	if len(c.Variables) == 0 {
		return fmt.Errorf("codebook has no variables")
	}
	seenVar := map[string]struct{}{}
	for _, v := range c.Variables {
		if strings.TrimSpace(v.Name) == "" {
			return fmt.Errorf("codebook variable without name")
		}
		if _, dup := seenVar[v.Key()]; dup {
			return fmt.Errorf("duplicate variable %q", v.Name)
		}
		seenVar[v.Key()] = struct{}{}

		seenCode := map[string]struct{}{}
		for _, cat := range v.Categories {
			if strings.TrimSpace(cat.Code) == "" || strings.TrimSpace(cat.Label) == "" {
				return fmt.Errorf("variable %q has an empty code or label", v.Name)
			}
			if _, dup := seenCode[cat.Code]; dup {
				return fmt.Errorf("variable %q has duplicate code %q", v.Name, cat.Code)
			}
			seenCode[cat.Code] = struct{}{}
		}
	}
	return nil
}

// Load 从 TOML 文件加载编码表
func Load(path string) (*Codebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read codebook: %w", err)
	}
	var cb Codebook
	if err := toml.Unmarshal(data, &cb); err != nil {
		return nil, fmt.Errorf("failed to parse codebook: %w", err)
	}
	if err := cb.Validate(); err != nil {
		return nil, err
	}
	return &cb, nil
}

// LoadOrDefault 路径为空时使用内置编码表
func LoadOrDefault(path string) (*Codebook, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	return Load(path)
}
