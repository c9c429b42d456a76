package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dhaniamnd/co2-reporter/internal/model"
)

// ResolveSheet 选择要解析的 sheet：指定名称优先，否则取第一个
func ResolveSheet(f *excelize.File, name string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", ErrNoSheets
	}
	if strings.TrimSpace(name) == "" {
		return sheets[0], nil
	}
	for _, s := range sheets {
		if s == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrSheetNotFound, name)
}

// ReadSheet 读取 sheet 为单元格网格
// 同时读取原始值与格式化值：原始值决定数值，格式化值用于识别日期格式的数值单元格
// 只有存储类型为数值的单元格才按数值处理，文本单元格保留原文交给 ToNumber
func ReadSheet(f *excelize.File, sheet string) (Grid, error) {
	formatted, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read raw values of sheet %q: %w", sheet, err)
	}

	date1904 := Date1904(f)
	rowCount := max(len(formatted), len(raw))
	grid := make(Grid, rowCount)
	for r := 0; r < rowCount; r++ {
		var fRow, rRow []string
		if r < len(formatted) {
			fRow = formatted[r]
		}
		if r < len(raw) {
			rRow = raw[r]
		}
		colCount := max(len(fRow), len(rRow))
		cells := make([]model.Cell, colCount)
		for c := 0; c < colCount; c++ {
			rawValue := cellAt(rRow, c)
			numeric := false
			if _, err := strconv.ParseFloat(strings.TrimSpace(rawValue), 64); err == nil {
				numeric = isNumericCell(f, sheet, c, r)
			}
			cells[c] = classifyCell(rawValue, cellAt(fRow, c), numeric, date1904)
		}
		grid[r] = cells
	}
	return grid, nil
}

// Date1904 工作簿是否使用 1904 日期系统
func Date1904(f *excelize.File) bool {
	props, err := f.GetWorkbookProps()
	if err != nil || props.Date1904 == nil {
		return false
	}
	return *props.Date1904
}

// isNumericCell 单元格存储类型是否为数值（未标注类型的单元格即数值）
func isNumericCell(f *excelize.File, sheet string, col, row int) bool {
	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return false
	}
	typ, err := f.GetCellType(sheet, name)
	if err != nil {
		return false
	}
	return typ == excelize.CellTypeUnset || typ == excelize.CellTypeNumber
}

// classifyCell 根据原始值、显示值与存储类型判定单元格类型
func classifyCell(raw, formatted string, numeric bool, date1904 bool) model.Cell {
	if strings.TrimSpace(raw) == "" && strings.TrimSpace(formatted) == "" {
		return model.EmptyCell()
	}

	if numeric {
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
			// 日期在 xlsx 中存为序列号，只有显示值像日期时才按日期处理
			if formatted != raw && looksLikeDate(formatted) {
				if t, err := excelize.ExcelDateToTime(n, date1904); err == nil {
					return model.DateCell(dateOnly(t))
				}
			}
			return model.NumberCell(n)
		}
	}

	if formatted == "" {
		formatted = raw
	}
	return model.TextCell(formatted)
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
