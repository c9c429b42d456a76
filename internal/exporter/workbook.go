package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dhaniamnd/co2-reporter/internal/model"
)

// 工作表名称
const (
	SheetData    = "Data"
	SheetMonthly = "Monthly"
	SheetSummary = "Summary"
)

// headerFill 表头底色
const headerFill = "D2E6B5"

var monthlyColumns = []string{"Month", "Process_tCO2", "Fuel_tCO2", "Electric_tCO2", "Total_tCO2"}

// BuildWorkbook 生成报告工作簿：Data（明细）、Monthly（月度汇总）、Summary（关键指标）
// 调用方负责关闭返回的文件
func BuildWorkbook(records []model.OutputRecord, report MonthlyReport, progress func(ProgressEvent)) (*excelize.File, error) {
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

	reportProgress(progress, 5, "data")
	if err := f.SetSheetName("Sheet1", SheetData); err != nil {
		return nil, err
	}
	if err := writeTable(f, SheetData, Columns, header); err != nil {
		return nil, err
	}
	for i, row := range Flatten(records) {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := row.Values()
		if err := f.SetSheetRow(SheetData, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write data row %d: %w", i+2, err)
		}
	}
	_ = f.SetColWidth(SheetData, "A", "A", 18)
	_ = f.SetColWidth(SheetData, "B", "J", 14)

	reportProgress(progress, 60, "monthly")
	if _, err := f.NewSheet(SheetMonthly); err != nil {
		return nil, err
	}
	if err := writeTable(f, SheetMonthly, monthlyColumns, header); err != nil {
		return nil, err
	}
	for i, b := range report.Months {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []any{
			fmt.Sprintf("%04d-%02d", report.Year, b.Month),
			b.ProcessCO2,
			b.FuelCO2,
			b.ElectricCO2,
			b.TotalCO2,
		}
		if err := f.SetSheetRow(SheetMonthly, cell, &values); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(SheetMonthly, "A", "E", 14)

	reportProgress(progress, 85, "summary")
	if err := writeSummary(f, report, header); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	reportProgress(progress, 100, "done")
	ok = true
	return f, nil
}

func writeSummary(f *excelize.File, report MonthlyReport, header int) error {
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}

	plant := report.Plant
	if plant == "" {
		plant = "All plants"
	}
	k := report.KeyFigures
	rows := [][]any{
		{report.Title},
		{"Plant", plant},
		{"Year", report.Year},
		{},
		{"Process EF (B1), tCO2/t clinker", report.Factors.ProcessEF},
		{"Fuel EF, tCO2/GJ", report.Factors.FuelEF},
		{"Grid EF, tCO2/MWh", report.Factors.GridEF},
		{},
		{"Metric", "Value (tCO2)"},
		{"Process (Scope 1)", k.ProcessCO2},
		{"Fuel (Scope 1)", k.FuelCO2},
		{"Scope 1 total", k.Scope1CO2},
		{"Electricity (Scope 2)", k.ElectricCO2},
		{"Grand total (S1 + S2)", k.TotalCO2},
	}
	for i := range rows {
		if len(rows[i]) == 0 {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SheetSummary, cell, &rows[i]); err != nil {
			return err
		}
	}
	_ = f.SetRowStyle(SheetSummary, 9, 9, header)
	_ = f.SetColWidth(SheetSummary, "A", "A", 34)
	_ = f.SetColWidth(SheetSummary, "B", "B", 16)
	return nil
}

func writeTable(f *excelize.File, sheet string, columns []string, style int) error {
	values := make([]any, len(columns))
	for i, c := range columns {
		values[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &values); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", sheet, err)
	}
	return f.SetRowStyle(sheet, 1, 1, style)
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
	})
}
