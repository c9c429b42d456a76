package exporter

import (
	"strconv"

	"github.com/dhaniamnd/co2-reporter/internal/model"
)

// Columns 导出列，列名与顺序为对外兼容约定，不可调整
var Columns = []string{
	"Plant",
	"Date",
	"Month",
	"Clinker_t",
	"KilnFuel_GJ",
	"Electricity_MWh",
	"Process_tCO2",
	"Fuel_tCO2",
	"Electric_tCO2",
	"Total_tCO2",
}

// DateLayout 导出日期格式
const DateLayout = "2006-01-02"

// Row 扁平化的一行导出数据
type Row struct {
	Plant          string
	Date           string
	Month          string
	ClinkerTonnes  float64
	KilnFuelGJ     float64
	ElectricityMWh float64
	ProcessCO2     float64
	FuelCO2        float64
	ElectricCO2    float64
	TotalCO2       float64
}

// Flatten 将输出记录投影为导出行，保持顺序
func Flatten(records []model.OutputRecord) []Row {
	rows := make([]Row, len(records))
	for i, r := range records {
		rows[i] = Row{
			Plant:          r.Plant,
			Date:           r.Date.Format(DateLayout),
			Month:          r.MonthKey,
			ClinkerTonnes:  r.Input.ClinkerTonnes,
			KilnFuelGJ:     r.Input.KilnFuelGJ,
			ElectricityMWh: r.Input.ElectricityMWh,
			ProcessCO2:     r.ProcessCO2,
			FuelCO2:        r.FuelCO2,
			ElectricCO2:    r.ElectricCO2,
			TotalCO2:       r.TotalCO2,
		}
	}
	return rows
}

// Values 按 Columns 顺序返回单元格值
func (r Row) Values() []any {
	return []any{
		r.Plant,
		r.Date,
		r.Month,
		r.ClinkerTonnes,
		r.KilnFuelGJ,
		r.ElectricityMWh,
		r.ProcessCO2,
		r.FuelCO2,
		r.ElectricCO2,
		r.TotalCO2,
	}
}

// Strings 按 Columns 顺序返回文本，数值取最短精确表示
func (r Row) Strings() []string {
	return []string{
		r.Plant,
		r.Date,
		r.Month,
		formatFloat(r.ClinkerTonnes),
		formatFloat(r.KilnFuelGJ),
		formatFloat(r.ElectricityMWh),
		formatFloat(r.ProcessCO2),
		formatFloat(r.FuelCO2),
		formatFloat(r.ElectricCO2),
		formatFloat(r.TotalCO2),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
