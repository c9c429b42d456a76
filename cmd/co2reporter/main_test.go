package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.toml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestTemplateThenReport(t *testing.T) {
	dir := t.TempDir()
	tpl := filepath.Join(dir, "tuban.xlsx")

	out, err := execute(t, "template", "--year", "2024", "--plant", "Tuban", "-o", tpl)
	require.NoError(t, err)
	assert.Contains(t, out, "Template written")

	// 填入 1 月和 2 月熟料产量
	f, err := excelize.OpenFile(tpl)
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Input", "D2", 1000))
	require.NoError(t, f.SetCellValue("Input", "D3", 2000))
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	csvPath := filepath.Join(dir, "out.csv")
	xlsxPath := filepath.Join(dir, "out.xlsx")
	out, err = execute(t, "report", tpl, "--csv", csvPath, "--xlsx", xlsxPath)
	require.NoError(t, err)
	assert.Contains(t, out, "tuban.xlsx")
	assert.Contains(t, out, "Tuban")
	// 3000 t 熟料 × 0.525
	assert.Contains(t, out, "1,575.00")
	assert.Contains(t, out, "2 records")

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
	_, err = os.Stat(xlsxPath)
	assert.NoError(t, err)
}

func TestReport_NoRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0644))

	out, err := execute(t, "report", path)
	assert.Error(t, err)
	assert.Contains(t, out, "broken.xlsx")
}

func TestReport_RequiresFiles(t *testing.T) {
	_, err := execute(t, "report")
	assert.Error(t, err)
}
