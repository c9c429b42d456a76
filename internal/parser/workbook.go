package parser

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dhaniamnd/co2-reporter/internal/model"
	"github.com/dhaniamnd/co2-reporter/internal/validation"
)

// WorkbookParser 工作簿解析入口：读取 sheet、识别版式、按顺序尝试策略
type WorkbookParser struct {
	recognizer *SheetRecognizer
	tidy       *TidyParser
	matrix     *MatrixParser
}

// NewWorkbookParser 创建工作簿解析器
func NewWorkbookParser(v *validation.Validator) *WorkbookParser {
	if v == nil {
		v = validation.New()
	}
	return &WorkbookParser{
		recognizer: NewSheetRecognizer(),
		tidy:       NewTidyParser(v),
		matrix:     NewMatrixParser(v),
	}
}

// ParseWorkbook 使用默认校验器解析工作簿
func ParseWorkbook(data []byte, opts ParseOptions) (Result, error) {
	return NewWorkbookParser(nil).Parse(data, opts)
}

// Parse 解析工作簿字节流
// 只有文件无法打开或 sheet 不存在时返回错误；解析不到任何记录时返回空结果
func (p *WorkbookParser) Parse(data []byte, opts ParseOptions) (Result, error) {
	start := time.Now()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet, err := ResolveSheet(f, opts.SheetName)
	if err != nil {
		return Result{}, err
	}
	grid, err := ReadSheet(f, sheet)
	if err != nil {
		return Result{}, err
	}
	opts.Date1904 = Date1904(f)

	res := p.ParseGrid(grid, opts)
	res.Report.Sheet = sheet
	res.Report.Duration = time.Since(start)
	return res, nil
}

// ParseGrid 对已读取的网格执行版式识别与策略回退
// 第一个产出有效记录的策略胜出，不同策略结果不合并
func (p *WorkbookParser) ParseGrid(grid Grid, opts ParseOptions) Result {
	res := Result{Report: model.FileReport{Filename: opts.Filename, Strategy: model.StrategyNone}}

	rec := p.recognizer.Recognize(grid)

	var last outcome
	for _, strategy := range rec.Strategies() {
		var out outcome
		switch strategy {
		case model.StrategyTidy:
			out = p.tidy.Parse(grid, rec.Headers, opts.Date1904)
		case model.StrategyMatrix:
			out = p.matrix.Parse(grid, rec, opts)
		}
		last = out
		if len(out.records) > 0 {
			res.Report.Strategy = strategy
			break
		}
	}

	res.Records = last.records
	res.Rejections = last.rejections
	res.Report.RowsRead = last.rowsRead
	res.Report.RowsAccepted = len(last.records)
	res.Report.Warnings = append(res.Report.Warnings, last.warnings...)
	for _, rej := range last.rejections {
		res.Report.AddRejection(rej.Reason)
	}
	if len(res.Records) == 0 {
		res.Report.Warnings = append(res.Report.Warnings, model.WarnNoRecords)
	}
	return res
}
