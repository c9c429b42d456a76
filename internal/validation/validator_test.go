package validation

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhaniamnd/co2-reporter/internal/model"
)

func validRecord() model.InputRecord {
	return model.InputRecord{
		Plant:          "PlantA",
		Date:           time.Date(2022, 1, 31, 0, 0, 0, 0, time.UTC),
		ClinkerTonnes:  100,
		KilnFuelGJ:     50,
		ElectricityMWh: 10,
	}
}

func TestCheck_Valid(t *testing.T) {
	t.Parallel()

	v := New()
	assert.Nil(t, v.Check(validRecord()))

	zero := validRecord()
	zero.ClinkerTonnes, zero.KilnFuelGJ, zero.ElectricityMWh = 0, 0, 0
	assert.Nil(t, v.Check(zero))
}

func TestCheck_Reasons(t *testing.T) {
	t.Parallel()

	v := New()
	cases := []struct {
		name   string
		mutate func(*model.InputRecord)
		want   model.RejectReason
	}{
		{"empty plant", func(r *model.InputRecord) { r.Plant = "" }, model.RejectMissingPlant},
		{"blank plant", func(r *model.InputRecord) { r.Plant = " \t " }, model.RejectMissingPlant},
		{"zero date", func(r *model.InputRecord) { r.Date = time.Time{} }, model.RejectMissingDate},
		{"negative clinker", func(r *model.InputRecord) { r.ClinkerTonnes = -5 }, model.RejectNegativeValue},
		{"negative fuel", func(r *model.InputRecord) { r.KilnFuelGJ = -0.1 }, model.RejectNegativeValue},
		{"nan electricity", func(r *model.InputRecord) { r.ElectricityMWh = math.NaN() }, model.RejectNonFinite},
		{"inf clinker", func(r *model.InputRecord) { r.ClinkerTonnes = math.Inf(1) }, model.RejectNonFinite},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := validRecord()
			tc.mutate(&rec)
			rej := v.Check(rec)
			require.NotNil(t, rej)
			assert.Equal(t, tc.want, rej.Reason)
		})
	}
}

func TestFilter_DropsOnlyInvalid(t *testing.T) {
	t.Parallel()

	bad := validRecord()
	bad.Plant = "PlantB"
	bad.ClinkerTonnes = -5
	good := validRecord()
	good.Plant = "PlantC"

	accepted, rejected := New().Filter([]model.InputRecord{validRecord(), bad, good}, []int{2, 3, 4})
	require.Len(t, accepted, 2)
	assert.Equal(t, "PlantA", accepted[0].Plant)
	assert.Equal(t, "PlantC", accepted[1].Plant)
	require.Len(t, rejected, 1)
	assert.Equal(t, 3, rejected[0].Row)
	assert.Equal(t, model.RejectNegativeValue, rejected[0].Reason)
}
