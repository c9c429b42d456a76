package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhaniamnd/co2-reporter/internal/model"
)

func sampleOutputs() []model.OutputRecord {
	f := model.EmissionFactors{ProcessEF: 1, FuelEF: 1, GridEF: 1}
	return CalculateAll([]model.InputRecord{
		{Plant: "Tuban", Date: day(2023, time.January, 31), ClinkerTonnes: 10},
		{Plant: "Gresik", Date: day(2023, time.January, 31), ClinkerTonnes: 20, KilnFuelGJ: 5},
		{Plant: "Tuban", Date: day(2023, time.March, 31), ClinkerTonnes: 30, ElectricityMWh: 2},
		{Plant: "Tuban", Date: day(2022, time.December, 31), ClinkerTonnes: 40},
	}, f)
}

func TestSumBy_FirstSeenOrder(t *testing.T) {
	t.Parallel()

	byPlant := SumBy(sampleOutputs(), DimensionPlant)
	require.Len(t, byPlant, 2)
	assert.Equal(t, model.KeyTotal{Key: "Tuban", TotalCO2: 82}, byPlant[0])
	assert.Equal(t, model.KeyTotal{Key: "Gresik", TotalCO2: 25}, byPlant[1])

	byMonth := SumBy(sampleOutputs(), DimensionMonth)
	require.Len(t, byMonth, 3)
	assert.Equal(t, "2023-01", byMonth[0].Key)
	assert.Equal(t, 35.0, byMonth[0].TotalCO2)
	assert.Equal(t, "2023-03", byMonth[1].Key)
	assert.Equal(t, "2022-12", byMonth[2].Key)
}

func TestPlantTotals_MatchesGrandTotal(t *testing.T) {
	t.Parallel()

	recs := sampleOutputs()
	totals := PlantTotals(recs)
	var sum float64
	for _, v := range totals {
		sum += v
	}
	assert.Equal(t, GrandTotal(recs), sum)
	assert.Equal(t, 107.0, GrandTotal(recs))
}

func TestMonthlyBuckets(t *testing.T) {
	t.Parallel()

	series := MonthlyBuckets(sampleOutputs(), 2023, "")
	assert.Len(t, series, 12)
	assert.Equal(t, "Jan", series[0].MonthLabel)
	assert.Equal(t, 35.0, series[0].TotalCO2)
	assert.Equal(t, 5.0, series[0].FuelCO2)
	assert.Zero(t, series[1].TotalCO2)
	assert.Equal(t, 32.0, series[2].TotalCO2)
	assert.Equal(t, 2.0, series[2].ElectricCO2)

	tuban := MonthlyBuckets(sampleOutputs(), 2023, "Tuban")
	assert.Equal(t, 10.0, tuban[0].TotalCO2)

	empty := MonthlyBuckets(nil, 2023, "")
	for i, b := range empty {
		assert.Equal(t, i+1, b.Month)
		assert.Zero(t, b.TotalCO2)
	}
}

func TestKeyFigures(t *testing.T) {
	t.Parallel()

	k := KeyFigures(MonthlyBuckets(sampleOutputs(), 2023, ""))
	assert.Equal(t, 60.0, k.ProcessCO2)
	assert.Equal(t, 5.0, k.FuelCO2)
	assert.Equal(t, 65.0, k.Scope1CO2)
	assert.Equal(t, 2.0, k.ElectricCO2)
	assert.Equal(t, 67.0, k.TotalCO2)
}

func TestFilters(t *testing.T) {
	t.Parallel()

	recs := sampleOutputs()
	assert.Equal(t, []int{2022, 2023}, Years(recs))
	assert.Equal(t, []string{"Gresik", "Tuban"}, Plants(recs))
	assert.Equal(t, 2023, LatestYear(recs, 1999))
	assert.Equal(t, 1999, LatestYear(nil, 1999))
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	s := Summarize(sampleOutputs())
	assert.Equal(t, 4, s.Records)
	assert.Equal(t, 107.0, s.GrandTotalCO2)
	assert.InDelta(t, 26.75, s.AvgPerRecord, 1e-9)
	assert.InDelta(t, 28.5, s.MedianPerRecord, 1e-9)
	assert.Equal(t, "2022-12", s.PeakMonth)
	assert.Equal(t, 40.0, s.PeakMonthCO2)

	assert.Equal(t, model.Summary{}, Summarize(nil))
}
