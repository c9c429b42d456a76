package model

import "time"

// InputRecord 单个工厂单月生产数据（已校验）
type InputRecord struct {
	Plant          string    `json:"plant" validate:"required,notblank"`
	Date           time.Time `json:"date" validate:"required"`
	ClinkerTonnes  float64   `json:"clinkerTonnes" validate:"finite,gte=0"`  // 熟料产量 t
	KilnFuelGJ     float64   `json:"kilnFuelGJ" validate:"finite,gte=0"`     // 窑用燃料 GJ
	ElectricityMWh float64   `json:"electricityMWh" validate:"finite,gte=0"` // 外购电力 MWh
}

// EmissionFactors 排放因子
type EmissionFactors struct {
	ProcessEF float64 `json:"processEF" toml:"process_ef"` // tCO2 / t 熟料（CSI B1）
	FuelEF    float64 `json:"fuelEF" toml:"fuel_ef"`       // tCO2 / GJ
	GridEF    float64 `json:"gridEF" toml:"grid_ef"`       // tCO2 / MWh
}

// DefaultFactors 默认排放因子
func DefaultFactors() EmissionFactors {
	return EmissionFactors{
		ProcessEF: 0.525,
		FuelEF:    0.0946,
		GridEF:    0.8,
	}
}

// OutputRecord 排放计算结果，生成后不再修改
type OutputRecord struct {
	Input       InputRecord `json:"input"`
	Plant       string      `json:"plant"`
	Date        time.Time   `json:"date"`
	MonthKey    string      `json:"month"` // YYYY-MM
	ProcessCO2  float64     `json:"processCO2"`
	FuelCO2     float64     `json:"fuelCO2"`
	ElectricCO2 float64     `json:"electricCO2"`
	TotalCO2    float64     `json:"totalCO2"`
}

// KeyTotal 按维度汇总的一项
type KeyTotal struct {
	Key      string  `json:"key"`
	TotalCO2 float64 `json:"totalCO2"`
}

// MonthlyBucket 单月汇总
type MonthlyBucket struct {
	Month       int     `json:"month"`      // 1-12
	MonthLabel  string  `json:"monthLabel"` // Jan..Dec
	ProcessCO2  float64 `json:"processCO2"`
	FuelCO2     float64 `json:"fuelCO2"`
	ElectricCO2 float64 `json:"electricCO2"`
	TotalCO2    float64 `json:"totalCO2"`
}

// MonthlySeries 固定 12 个月的序列
type MonthlySeries [12]MonthlyBucket

// KeyFigures 报告关键指标（范围一/范围二）
type KeyFigures struct {
	ProcessCO2  float64 `json:"processCO2"`
	FuelCO2     float64 `json:"fuelCO2"`
	Scope1CO2   float64 `json:"scope1CO2"`
	ElectricCO2 float64 `json:"electricCO2"` // 范围二
	TotalCO2    float64 `json:"totalCO2"`
}

// Summary 汇总卡片
type Summary struct {
	Records         int     `json:"records"`
	GrandTotalCO2   float64 `json:"grandTotalCO2"`
	AvgPerRecord    float64 `json:"avgPerRecord"`
	MedianPerRecord float64 `json:"medianPerRecord"`
	PeakMonth       string  `json:"peakMonth,omitempty"` // YYYY-MM
	PeakMonthCO2    float64 `json:"peakMonthCO2"`
}
