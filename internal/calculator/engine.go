package calculator

import (
	"time"

	"github.com/dhaniamnd/co2-reporter/internal/model"
)

// MonthKeyLayout 月份键格式 YYYY-MM
const MonthKeyLayout = "2006-01"

// MonthKey 日期所在月份键
func MonthKey(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

// Calculate 按排放因子计算单条记录（CSI B1 工艺排放 + 燃料燃烧 + 外购电力）
//
//	工艺 = 熟料 t × 工艺因子
//	燃料 = 窑用燃料 GJ × 燃料因子
//	电力 = 电量 MWh × 电网因子
//	合计 = 工艺 + 燃料 + 电力
func Calculate(in model.InputRecord, f model.EmissionFactors) model.OutputRecord {
	process := in.ClinkerTonnes * f.ProcessEF
	fuel := in.KilnFuelGJ * f.FuelEF
	electric := in.ElectricityMWh * f.GridEF
	return model.OutputRecord{
		Input:       in,
		Plant:       in.Plant,
		Date:        in.Date,
		MonthKey:    MonthKey(in.Date),
		ProcessCO2:  process,
		FuelCO2:     fuel,
		ElectricCO2: electric,
		TotalCO2:    process + fuel + electric,
	}
}

// CalculateAll 批量计算，保持输入顺序
func CalculateAll(ins []model.InputRecord, f model.EmissionFactors) []model.OutputRecord {
	out := make([]model.OutputRecord, len(ins))
	for i, in := range ins {
		out[i] = Calculate(in, f)
	}
	return out
}

// Recalculate 使用保留的输入记录按新因子重新计算，返回新切片
func Recalculate(outs []model.OutputRecord, f model.EmissionFactors) []model.OutputRecord {
	res := make([]model.OutputRecord, len(outs))
	for i, o := range outs {
		res[i] = Calculate(o.Input, f)
	}
	return res
}
