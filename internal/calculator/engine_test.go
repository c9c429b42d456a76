package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhaniamnd/co2-reporter/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculate_Scenario(t *testing.T) {
	t.Parallel()

	out := Calculate(model.InputRecord{
		Plant:          "PlantA",
		Date:           day(2022, time.January, 31),
		ClinkerTonnes:  100,
		KilnFuelGJ:     50,
		ElectricityMWh: 10,
	}, model.DefaultFactors())

	assert.InDelta(t, 52.5, out.ProcessCO2, 1e-9)
	assert.InDelta(t, 4.73, out.FuelCO2, 1e-9)
	assert.InDelta(t, 8.0, out.ElectricCO2, 1e-9)
	assert.InDelta(t, 65.23, out.TotalCO2, 1e-9)
	assert.Equal(t, "2022-01", out.MonthKey)
	assert.Equal(t, "PlantA", out.Plant)
	assert.Equal(t, out.ProcessCO2+out.FuelCO2+out.ElectricCO2, out.TotalCO2)
}

func TestRecalculate_Idempotent(t *testing.T) {
	t.Parallel()

	ins := []model.InputRecord{
		{Plant: "A", Date: day(2022, time.January, 31), ClinkerTonnes: 100, KilnFuelGJ: 50, ElectricityMWh: 10},
		{Plant: "B", Date: day(2022, time.February, 28), ClinkerTonnes: 200},
	}
	f := model.DefaultFactors()
	first := CalculateAll(ins, f)

	assert.Equal(t, first, Recalculate(first, f))

	changed := Recalculate(first, model.EmissionFactors{ProcessEF: 1, FuelEF: 1, GridEF: 1})
	require.Len(t, changed, 2)
	assert.Equal(t, 160.0, changed[0].TotalCO2)
	assert.Equal(t, 200.0, changed[1].TotalCO2)
	// 原切片不被修改
	assert.InDelta(t, 65.23, first[0].TotalCO2, 1e-9)
}
