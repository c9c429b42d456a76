package calculator

import (
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/dhaniamnd/co2-reporter/internal/model"
	"github.com/dhaniamnd/co2-reporter/internal/parser"
)

// Dimension 汇总维度
type Dimension string

const (
	DimensionPlant Dimension = "plant"
	DimensionMonth Dimension = "month"
)

func keyOf(r model.OutputRecord, dim Dimension) string {
	if dim == DimensionMonth {
		return r.MonthKey
	}
	return r.Plant
}

// SumBy 按维度汇总合计排放，结果按键首次出现的顺序排列
func SumBy(records []model.OutputRecord, dim Dimension) []model.KeyTotal {
	index := make(map[string]int)
	var out []model.KeyTotal
	for _, r := range records {
		k := keyOf(r, dim)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, model.KeyTotal{Key: k})
		}
		out[i].TotalCO2 += r.TotalCO2
	}
	return out
}

// PlantTotals 工厂 → 合计排放
func PlantTotals(records []model.OutputRecord) map[string]float64 {
	m := make(map[string]float64)
	for _, r := range records {
		m[r.Plant] += r.TotalCO2
	}
	return m
}

// MonthlyBuckets 指定年份（可选工厂）的 12 个月汇总，无数据的月份为 0
func MonthlyBuckets(records []model.OutputRecord, year int, plant string) model.MonthlySeries {
	var series model.MonthlySeries
	for i := range series {
		series[i].Month = i + 1
		series[i].MonthLabel = parser.MonthAbbreviation(i + 1)
	}
	for _, r := range records {
		if r.Date.Year() != year {
			continue
		}
		if plant != "" && r.Plant != plant {
			continue
		}
		b := &series[int(r.Date.Month())-1]
		b.ProcessCO2 += r.ProcessCO2
		b.FuelCO2 += r.FuelCO2
		b.ElectricCO2 += r.ElectricCO2
		b.TotalCO2 += r.TotalCO2
	}
	return series
}

// GrandTotal 全部记录的合计排放
func GrandTotal(records []model.OutputRecord) float64 {
	var sum float64
	for _, r := range records {
		sum += r.TotalCO2
	}
	return sum
}

// Years 数据中出现的年份（升序）
func Years(records []model.OutputRecord) []int {
	seen := make(map[int]struct{})
	for _, r := range records {
		seen[r.Date.Year()] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for y := range seen {
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}

// LatestYear 数据中最新的年份，无数据时返回 fallback
func LatestYear(records []model.OutputRecord, fallback int) int {
	years := Years(records)
	if len(years) == 0 {
		return fallback
	}
	return years[len(years)-1]
}

// Plants 数据中出现的工厂（字典序）
func Plants(records []model.OutputRecord) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		seen[r.Plant] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// KeyFigures 月报关键指标：范围一 = 工艺 + 燃料，范围二 = 电力
func KeyFigures(series model.MonthlySeries) model.KeyFigures {
	var k model.KeyFigures
	for _, b := range series {
		k.ProcessCO2 += b.ProcessCO2
		k.FuelCO2 += b.FuelCO2
		k.ElectricCO2 += b.ElectricCO2
		k.TotalCO2 += b.TotalCO2
	}
	k.Scope1CO2 = k.ProcessCO2 + k.FuelCO2
	return k
}

// Summarize 汇总卡片数据
func Summarize(records []model.OutputRecord) model.Summary {
	s := model.Summary{Records: len(records)}
	if len(records) == 0 {
		return s
	}

	totals := make([]float64, len(records))
	for i, r := range records {
		totals[i] = r.TotalCO2
	}
	s.GrandTotalCO2 = GrandTotal(records)
	if mean, err := stats.Mean(totals); err == nil {
		s.AvgPerRecord = mean
	}
	if median, err := stats.Median(totals); err == nil {
		s.MedianPerRecord = median
	}

	// 峰值月份：并列时取先出现的
	for _, kt := range SumBy(records, DimensionMonth) {
		if s.PeakMonth == "" || kt.TotalCO2 > s.PeakMonthCO2 {
			s.PeakMonth = kt.Key
			s.PeakMonthCO2 = kt.TotalCO2
		}
	}
	return s
}
