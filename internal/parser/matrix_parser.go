package parser

import (
	"math"
	"strings"
	"time"

	"github.com/dhaniamnd/co2-reporter/internal/model"
	"github.com/dhaniamnd/co2-reporter/internal/validation"
)

// MatrixParser 指标 × 工厂 转置矩阵解析器
// 第 0 列为指标名，表头行（熟料行上一行）为工厂名
type MatrixParser struct {
	validator *validation.Validator
}

// NewMatrixParser 创建矩阵解析器
func NewMatrixParser(v *validation.Validator) *MatrixParser {
	return &MatrixParser{validator: v}
}

// Parse 解析网格，年份依次取 年份行第 1 列 → 文件名；都取不到时日期为当天
func (p *MatrixParser) Parse(grid Grid, rec Recognition, opts ParseOptions) outcome {
	var out outcome
	if !rec.Matrix {
		return out
	}

	var date time.Time
	if year, ok := p.resolveYear(grid, rec, opts.Filename); ok {
		date = YearEnd(year)
	} else {
		// 年份无法确定，日期取当天
		date = dateOnly(opts.now())
		out.warnings = append(out.warnings, model.WarnYearUnresolved)
	}

	var (
		candidates []model.InputRecord
		cols       []int
	)
	header := grid[rec.HeaderRow]
	for col := 1; col < len(header); col++ {
		plant := strings.TrimSpace(header[col].Text())
		if plant == "" {
			continue
		}
		clinker, ok := ToNumber(grid.At(rec.ClinkerRow, col))
		if !ok {
			continue
		}
		candidates = append(candidates, model.InputRecord{
			Plant:         plant,
			Date:          date,
			ClinkerTonnes: clinker,
		})
		cols = append(cols, col+1)
	}

	out.rowsRead = len(candidates)
	out.records, out.rejections = p.validator.Filter(candidates, cols)
	return out
}

func (p *MatrixParser) resolveYear(grid Grid, rec Recognition, filename string) (int, bool) {
	if rec.YearRow >= 0 {
		cell := grid.At(rec.YearRow, 1)
		if cell.Kind == model.CellDate {
			return cell.Date.Year(), true
		}
		if v, ok := ToNumber(cell); ok && v > 0 && v == math.Trunc(v) {
			return int(v), true
		}
	}
	return GuessYearFromFilename(filename)
}
