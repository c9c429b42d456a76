package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dhaniamnd/co2-reporter/internal/model"
)

// utf8BOM Excel 依赖 BOM 识别 UTF-8
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV 写出 CSV：UTF-8 BOM、CRLF 换行、表头 + 数据行
func WriteCSV(w io.Writer, records []model.OutputRecord) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range Flatten(records) {
		if err := cw.Write(row.Strings()); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
