package model

import (
	"strconv"
	"strings"
	"time"
)

// CellKind 单元格取值类型
type CellKind int

const (
	CellEmpty  CellKind = iota // 空
	CellNumber                 // 数值
	CellText                   // 文本
	CellDate                   // 日期
)

func (k CellKind) String() string {
	switch k {
	case CellNumber:
		return "number"
	case CellText:
		return "text"
	case CellDate:
		return "date"
	default:
		return "empty"
	}
}

// Cell 单元格原始值（空/数值/文本/日期 四选一）
// 只有有限数值才会被存为 CellNumber
type Cell struct {
	Kind   CellKind
	Number float64
	Str    string
	Date   time.Time
}

// EmptyCell 空单元格
func EmptyCell() Cell { return Cell{Kind: CellEmpty} }

// NumberCell 数值单元格
func NumberCell(v float64) Cell { return Cell{Kind: CellNumber, Number: v} }

// TextCell 文本单元格，空白文本视为空
func TextCell(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return EmptyCell()
	}
	return Cell{Kind: CellText, Str: s}
}

// DateCell 日期单元格
func DateCell(t time.Time) Cell { return Cell{Kind: CellDate, Date: t} }

// IsEmpty 是否为空
func (c Cell) IsEmpty() bool { return c.Kind == CellEmpty }

// Text 单元格的文本形式（数值取最短表示，日期为 YYYY-MM-DD）
func (c Cell) Text() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellText:
		return c.Str
	case CellDate:
		return c.Date.Format("2006-01-02")
	default:
		return ""
	}
}
