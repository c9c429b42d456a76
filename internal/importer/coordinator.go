package importer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dhaniamnd/co2-reporter/internal/calculator"
	"github.com/dhaniamnd/co2-reporter/internal/metrics"
	"github.com/dhaniamnd/co2-reporter/internal/model"
	"github.com/dhaniamnd/co2-reporter/internal/parser"
)

// 进度事件类型
const (
	EventStart     = "start"
	EventFileStart = "file_start"
	EventFileDone  = "file_done"
	EventFileError = "file_error"
	EventDone      = "done"
	EventError     = "error"
)

// Upload 待导入的文件
type Upload struct {
	Name string
	Data []byte
}

// ImportOptions 导入选项
type ImportOptions struct {
	SheetName string           // 为空时读取每个文件的第一个 sheet
	Now       func() time.Time // 矩阵版式年份兜底时钟
}

// FileError 无法读取的文件
type FileError struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// Batch 一次导入的结果
type Batch struct {
	ID       string               `json:"id"`
	Records  []model.OutputRecord `json:"records"`
	Reports  []model.FileReport   `json:"reports"`
	Failed   []FileError          `json:"failed,omitempty"`
	Duration time.Duration        `json:"duration"`
}

// RowsAccepted 全部文件通过校验的行数
func (b *Batch) RowsAccepted() int {
	n := 0
	for _, r := range b.Reports {
		n += r.RowsAccepted
	}
	return n
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`      // start/file_start/file_done/file_error/done/error
	Message   string      `json:"message"`   // 事件消息
	Data      interface{} `json:"data"`      // 附加数据
	Timestamp time.Time   `json:"timestamp"` // 时间戳
}

// Coordinator 导入协调器：按提交顺序逐个解析文件，合并记录并计算排放
type Coordinator struct {
	parser  *parser.WorkbookParser
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewCoordinator 创建导入协调器
func NewCoordinator(p *parser.WorkbookParser, m *metrics.Metrics, logger *slog.Logger) *Coordinator {
	if p == nil {
		p = parser.NewWorkbookParser(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		parser:  p,
		metrics: m,
		logger:  logger.With("component", "importer"),
	}
}

// Import 同步导入
// 单个文件无法读取不会中断整批；只有 context 取消时返回错误
func (c *Coordinator) Import(ctx context.Context, uploads []Upload, factors model.EmissionFactors, opts ImportOptions) (*Batch, error) {
	return c.run(ctx, uploads, factors, opts, func(ProgressEvent) {})
}

// ImportStream 异步导入，返回进度通道；最后一个事件为 done 或 error
func (c *Coordinator) ImportStream(ctx context.Context, uploads []Upload, factors model.EmissionFactors, opts ImportOptions) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)

		batch, err := c.run(ctx, uploads, factors, opts, func(evt ProgressEvent) {
			c.sendProgress(progressChan, evt)
		})
		final := ProgressEvent{Type: EventDone, Message: "导入完成", Data: batch, Timestamp: time.Now()}
		if err != nil {
			final = ProgressEvent{Type: EventError, Message: err.Error(), Timestamp: time.Now()}
		}

		// 终止事件必须送达
		select {
		case progressChan <- final:
		case <-ctx.Done():
		}
	}()

	return progressChan
}

func (c *Coordinator) run(ctx context.Context, uploads []Upload, factors model.EmissionFactors, opts ImportOptions, emit func(ProgressEvent)) (*Batch, error) {
	start := time.Now()
	batch := &Batch{ID: uuid.NewString()}

	emit(ProgressEvent{
		Type:      EventStart,
		Message:   fmt.Sprintf("开始导入 %d 个文件", len(uploads)),
		Data:      map[string]interface{}{"batch_id": batch.ID, "files": len(uploads)},
		Timestamp: time.Now(),
	})

	var inputs []model.InputRecord
	for i, up := range uploads {
		// 只在文件之间检查取消
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("import cancelled after %d of %d files: %w", i, len(uploads), err)
		}

		emit(ProgressEvent{
			Type:      EventFileStart,
			Message:   up.Name,
			Data:      map[string]interface{}{"index": i, "filename": up.Name},
			Timestamp: time.Now(),
		})

		res, err := c.parser.Parse(up.Data, parser.ParseOptions{
			Filename:  up.Name,
			SheetName: opts.SheetName,
			Now:       opts.Now,
		})
		if err != nil {
			c.logger.WarnContext(ctx, "workbook unreadable", "filename", up.Name, "error", err)
			batch.Failed = append(batch.Failed, FileError{Filename: up.Name, Error: err.Error()})
			emit(ProgressEvent{Type: EventFileError, Message: err.Error(), Data: map[string]interface{}{"filename": up.Name}, Timestamp: time.Now()})
			continue
		}

		res.Report.ID = uuid.NewString()
		c.metrics.ObserveFile(res.Report)
		c.logger.InfoContext(ctx, "workbook parsed",
			"filename", up.Name,
			"sheet", res.Report.Sheet,
			"strategy", res.Report.Strategy,
			"rows_read", res.Report.RowsRead,
			"rows_accepted", res.Report.RowsAccepted,
			"rows_rejected", res.Report.RowsRejected(),
		)

		inputs = append(inputs, res.Records...)
		batch.Reports = append(batch.Reports, res.Report)
		emit(ProgressEvent{Type: EventFileDone, Message: up.Name, Data: res.Report, Timestamp: time.Now()})
	}

	batch.Records = calculator.CalculateAll(inputs, factors)
	batch.Duration = time.Since(start)
	return batch, nil
}

func (c *Coordinator) sendProgress(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
		// 通道已满，丢弃事件
	}
}
