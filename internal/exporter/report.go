package exporter

import (
	"time"

	"github.com/dhaniamnd/co2-reporter/internal/calculator"
	"github.com/dhaniamnd/co2-reporter/internal/model"
)

// DefaultReportTitle 月报默认标题
const DefaultReportTitle = "Cement Plant CO2 Emission Monthly Report"

// MonthlyReport 月报数据，供 XLSX Summary 页与图表/PDF 等外部渲染使用
type MonthlyReport struct {
	Title       string                `json:"title"`
	Plant       string                `json:"plant,omitempty"` // 为空表示全部工厂
	Year        int                   `json:"year"`
	Factors     model.EmissionFactors `json:"factors"`
	Months      model.MonthlySeries   `json:"months"`
	KeyFigures  model.KeyFigures      `json:"keyFigures"`
	GeneratedAt time.Time             `json:"generatedAt"`
}

// NewMonthlyReport 汇总指定年份（可选工厂）的月报
func NewMonthlyReport(records []model.OutputRecord, factors model.EmissionFactors, year int, plant string) MonthlyReport {
	months := calculator.MonthlyBuckets(records, year, plant)
	return MonthlyReport{
		Title:       DefaultReportTitle,
		Plant:       plant,
		Year:        year,
		Factors:     factors,
		Months:      months,
		KeyFigures:  calculator.KeyFigures(months),
		GeneratedAt: time.Now(),
	}
}
