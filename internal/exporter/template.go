package exporter

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// 模板工作表
const (
	SheetInput = "Input"
	SheetNotes = "Notes"
)

// DefaultTemplatePlant 未指定工厂时的占位名称
const DefaultTemplatePlant = "YourPlant"

// TemplateColumns 输入模板表头，与逐行解析的表头匹配
var TemplateColumns = []string{"Plant", "Date", "Month", "Clinker_t", "KilnFuel_GJ", "Electricity_MWh"}

var templateNotes = []string{
	"How to use this template",
	"1) Fill ONE plant-year per file (12 rows). Keep the headers unchanged.",
	"2) Clinker_t is required on every row; rows without it are skipped on import.",
	"3) KilnFuel_GJ and Electricity_MWh may be left blank and are then counted as 0.",
	"4) Units: Clinker_t in tonnes; fuel in GJ; electricity in MWh.",
	"5) Date should be the last day of the month (YYYY-MM-DD). Month is informational (YYYY-MM).",
}

// TemplateFilename 模板下载文件名
func TemplateFilename(year int, plant string) string {
	return fmt.Sprintf("co2-input-template_%s_%d.xlsx", strings.ReplaceAll(plant, " ", "_"), year)
}

// BuildTemplate 生成输入模板：Input 页预填 12 个月末日期，Notes 页为填写说明
func BuildTemplate(year int, plant string) (*excelize.File, error) {
	if plant = strings.TrimSpace(plant); plant == "" {
		plant = DefaultTemplatePlant
	}

	f := excelize.NewFile()
	ok := false
	defer func() {
		if !ok {
			_ = f.Close()
		}
	}()

	header, err := headerStyle(f)
	if err != nil {
		return nil, err
	}
	if err := f.SetSheetName("Sheet1", SheetInput); err != nil {
		return nil, err
	}
	if err := writeTable(f, SheetInput, TemplateColumns, header); err != nil {
		return nil, err
	}

	for m := 1; m <= 12; m++ {
		// 下月第 0 天即本月最后一天
		last := time.Date(year, time.Month(m)+1, 0, 0, 0, 0, 0, time.UTC)
		values := []any{plant, last.Format(DateLayout), last.Format("2006-01")}
		cell, _ := excelize.CoordinatesToCellName(1, m+1)
		if err := f.SetSheetRow(SheetInput, cell, &values); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(SheetInput, "A", "A", 16)
	_ = f.SetColWidth(SheetInput, "B", "C", 12)
	_ = f.SetColWidth(SheetInput, "D", "F", 15)

	if _, err := f.NewSheet(SheetNotes); err != nil {
		return nil, err
	}
	for i, line := range templateNotes {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetCellValue(SheetNotes, cell, line); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(SheetNotes, "A", "A", 110)

	f.SetActiveSheet(0)
	ok = true
	return f, nil
}
