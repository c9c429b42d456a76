package parser

import (
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dhaniamnd/co2-reporter/internal/model"
	"github.com/dhaniamnd/co2-reporter/internal/validation"
)

// minSerialDate 小于该值的纯数值不视为 Excel 日期序列号（约 1927 年）
const minSerialDate = 10000

// outcome 单个策略的解析产出
type outcome struct {
	records    []model.InputRecord
	rejections []model.Rejection
	rowsRead   int
	warnings   []string
}

// TidyParser 逐行明细解析器：第一行为表头，之后每行一条记录
type TidyParser struct {
	validator *validation.Validator
}

// NewTidyParser 创建逐行解析器
func NewTidyParser(v *validation.Validator) *TidyParser {
	return &TidyParser{validator: v}
}

// Parse 解析网格，date1904 决定日期序列号的纪元
func (p *TidyParser) Parse(grid Grid, headers HeaderMap, date1904 bool) outcome {
	var out outcome
	if !headers.TidyEligible() {
		return out
	}

	for r := 1; r < len(grid); r++ {
		if grid.RowEmpty(r) {
			continue
		}
		out.rowsRead++

		rec, rej := p.buildRow(grid, headers, r, date1904)
		if rej == nil {
			rej = p.validator.Check(rec)
		}
		if rej != nil {
			rej.Row = r + 1
			out.rejections = append(out.rejections, *rej)
			continue
		}
		out.records = append(out.records, rec)
	}
	return out
}

func (p *TidyParser) buildRow(grid Grid, headers HeaderMap, r int, date1904 bool) (model.InputRecord, *model.Rejection) {
	var rec model.InputRecord

	rec.Plant = strings.TrimSpace(grid.At(r, headers.Column(FieldPlant)).Text())
	if rec.Plant == "" {
		return rec, &model.Rejection{Reason: model.RejectMissingPlant}
	}

	dateCell := grid.At(r, headers.Column(FieldDate))
	if dateCell.IsEmpty() {
		return rec, &model.Rejection{Reason: model.RejectMissingDate}
	}
	date, ok := ResolveTidyDate(dateCell, date1904)
	if !ok {
		return rec, &model.Rejection{Reason: model.RejectInvalidDate, Detail: dateCell.Text()}
	}
	rec.Date = date

	clinker, ok := ToNumber(grid.At(r, headers.Column(FieldClinker)))
	if !ok {
		return rec, &model.Rejection{Reason: model.RejectMissingClinker}
	}
	rec.ClinkerTonnes = clinker

	// 燃料、电力缺失按 0 处理
	rec.KilnFuelGJ = optionalNumber(grid, headers, FieldFuel, r)
	rec.ElectricityMWh = optionalNumber(grid, headers, FieldElectricity, r)
	return rec, nil
}

func optionalNumber(grid Grid, headers HeaderMap, f Field, r int) float64 {
	if !headers.Has(f) {
		return 0
	}
	v, ok := ToNumber(grid.At(r, headers.Column(f)))
	if !ok {
		return 0
	}
	return v
}

// ResolveTidyDate 解析逐行版式的日期单元格
// 恰好 4 位年份视为全年数据，日期取当年 12 月 31 日
// 数值按 Excel 日期序列号解析，date1904 为工作簿的日期系统
func ResolveTidyDate(c model.Cell, date1904 bool) (time.Time, bool) {
	switch c.Kind {
	case model.CellDate:
		return dateOnly(c.Date), true
	case model.CellText:
		if y, ok := IsBareYear(c.Str); ok {
			return YearEnd(y), true
		}
		return ParseDateText(c.Str)
	case model.CellNumber:
		if y, ok := IsBareYear(c.Text()); ok {
			return YearEnd(y), true
		}
		if c.Number >= minSerialDate {
			t, err := excelize.ExcelDateToTime(c.Number, date1904)
			if err != nil {
				return time.Time{}, false
			}
			return dateOnly(t), true
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
