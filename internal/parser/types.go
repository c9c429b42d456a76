package parser

import (
	"errors"
	"time"

	"github.com/dhaniamnd/co2-reporter/internal/model"
)

var (
	// ErrNoSheets 工作簿没有任何 sheet
	ErrNoSheets = errors.New("workbook has no sheets")
	// ErrSheetNotFound 指定的 sheet 不存在
	ErrSheetNotFound = errors.New("sheet not found")
)

// Grid 单个 sheet 的二维单元格（行 × 列），不做表头假设
type Grid [][]model.Cell

// At 安全取值，越界返回空单元格
func (g Grid) At(row, col int) model.Cell {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return model.EmptyCell()
	}
	return g[row][col]
}

// RowEmpty 整行是否为空
func (g Grid) RowEmpty(row int) bool {
	if row < 0 || row >= len(g) {
		return true
	}
	for _, c := range g[row] {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// Headers 将某一行转为表头文本
func (g Grid) Headers(row int) []string {
	if row < 0 || row >= len(g) {
		return nil
	}
	out := make([]string, len(g[row]))
	for i, c := range g[row] {
		out[i] = c.Text()
	}
	return out
}

// ParseOptions 解析选项
type ParseOptions struct {
	Filename  string           // 原始文件名，用于推断年份
	SheetName string           // 为空时使用第一个 sheet
	Now       func() time.Time // 年份无法确定时的兜底时钟
	Date1904  bool             // 工作簿使用 1904 日期系统，Parse 按工作簿属性填写
}

func (o ParseOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// Result 单个文件的解析结果
type Result struct {
	Records    []model.InputRecord
	Rejections []model.Rejection
	Report     model.FileReport
}
