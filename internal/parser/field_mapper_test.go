package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindField_CaseAndPunctuationInsensitive(t *testing.T) {
	t.Parallel()

	for _, h := range []string{"Clinker (t)", "clinker_t", "CLINKER-T"} {
		key, ok := FindField([]string{"Plant", "Date", h}, CandidatesFor(FieldClinker))
		require.True(t, ok, "header %q", h)
		assert.Equal(t, h, key)
	}
}

func TestFindField_KeyOrderDominates(t *testing.T) {
	t.Parallel()

	// "Company Name" 先出现，即使 "plant" 在候选列表中优先级更高
	key, ok := FindField([]string{"Company Name", "Plant"}, CandidatesFor(FieldPlant))
	require.True(t, ok)
	assert.Equal(t, "Company Name", key)

	_, ok = FindField([]string{"foo", "bar"}, CandidatesFor(FieldPlant))
	assert.False(t, ok)
}

func TestMapHeaders_IndonesianSynonyms(t *testing.T) {
	t.Parallel()

	m := MapHeaders([]string{"Pabrik", "Tanggal", "Produksi Klinker (ton)", "Energi (GJ)", "Listrik (MWh)"})
	assert.True(t, m.TidyEligible())
	assert.Equal(t, 0, m.Column(FieldPlant))
	assert.Equal(t, 1, m.Column(FieldDate))
	assert.Equal(t, 2, m.Column(FieldClinker))
	assert.Equal(t, 3, m.Column(FieldFuel))
	assert.Equal(t, 4, m.Column(FieldElectricity))
}

func TestMapHeaders_MissingOptional(t *testing.T) {
	t.Parallel()

	m := MapHeaders([]string{"Plant", "Date", "Clinker_t"})
	assert.True(t, m.TidyEligible())
	assert.False(t, m.Has(FieldFuel))
	assert.False(t, m.Has(FieldElectricity))

	m = MapHeaders([]string{"Plant", "Clinker_t"})
	assert.False(t, m.TidyEligible())
}

func TestSheetRecognizer_Matrix(t *testing.T) {
	t.Parallel()

	grid := buildGrid([][]string{
		{"", "PlantX", "PlantY"},
		{"Clinker", "100", "200"},
		{"Tahun", "2022"},
	})
	rec := NewSheetRecognizer().Recognize(grid)
	assert.False(t, rec.Tidy)
	assert.True(t, rec.Matrix)
	assert.Equal(t, 1, rec.ClinkerRow)
	assert.Equal(t, 0, rec.HeaderRow)
	assert.Equal(t, 2, rec.YearRow)
}
