package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dhaniamnd/co2-reporter/internal/model"
)

func TestNormalizeLabel(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Clinker (t)":     "clinkert",
		"clinker_t":       "clinkert",
		"CLINKER-T":       "clinkert",
		"Total CO₂ (t)":   "totalco2t",
		"Total CO2 (t)":   "totalco2t",
		"  Kiln Fuel GJ ": "kilnfuelgj",
		"":                "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeLabel(in), "input %q", in)
	}
}

func TestToNumber(t *testing.T) {
	t.Parallel()

	v, ok := ToNumber(model.NumberCell(12.5))
	assert.True(t, ok)
	assert.Equal(t, 12.5, v)

	v, ok = ToNumber(model.TextCell("1,234.5 t"))
	assert.True(t, ok)
	assert.Equal(t, 1234.5, v)

	v, ok = ToNumber(model.TextCell("-5"))
	assert.True(t, ok)
	assert.Equal(t, -5.0, v)

	_, ok = ToNumber(model.TextCell("n/a"))
	assert.False(t, ok)
	_, ok = ToNumber(model.EmptyCell())
	assert.False(t, ok)
	_, ok = ToNumber(model.DateCell(time.Now()))
	assert.False(t, ok)
}

func TestGuessYearFromFilename(t *testing.T) {
	t.Parallel()

	y, ok := GuessYearFromFilename("produksi_klinker_2023.xlsx")
	assert.True(t, ok)
	assert.Equal(t, 2023, y)

	y, ok = GuessYearFromFilename("2019 report.xlsx")
	assert.True(t, ok)
	assert.Equal(t, 2019, y)

	_, ok = GuessYearFromFilename("batch120235.xlsx")
	assert.False(t, ok)
	_, ok = GuessYearFromFilename("plants.xlsx")
	assert.False(t, ok)
}

func TestParseDateText(t *testing.T) {
	t.Parallel()

	want := time.Date(2022, 1, 31, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2022-01-31", "2022/01/31", "1/31/2022", "31 January 2022", "Jan 31, 2022"} {
		got, ok := ParseDateText(in)
		assert.True(t, ok, "input %q", in)
		assert.True(t, want.Equal(got), "input %q got %v", in, got)
	}

	_, ok := ParseDateText("not a date")
	assert.False(t, ok)
}

func TestResolveTidyDate_BareYear(t *testing.T) {
	t.Parallel()

	want := time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC)

	got, ok := ResolveTidyDate(model.TextCell("2021"), false)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	got, ok = ResolveTidyDate(model.NumberCell(2021), false)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	_, ok = ResolveTidyDate(model.NumberCell(42), false)
	assert.False(t, ok)
}

func TestMonthAbbreviation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Jan", MonthAbbreviation(1))
	assert.Equal(t, "Dec", MonthAbbreviation(12))
	assert.Equal(t, "", MonthAbbreviation(0))
	assert.Equal(t, "", MonthAbbreviation(13))
}
