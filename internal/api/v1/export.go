package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dhaniamnd/co2-reporter/internal/exporter"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv; charset=utf-8"
	downloadTTL     = 10 * time.Minute
)

// TemplateQuery 模板参数
type TemplateQuery struct {
	Year  int    `form:"year" binding:"omitempty,gte=1900,lte=9999"`
	Plant string `form:"plant" binding:"omitempty,max=64"`
}

func contentDisposition(filename string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": filename})
}

// GetMonthlyReport 月报数据（图表/PDF 渲染使用）
// GET /api/report/monthly?year=&plant=
func (h *Handler) GetMonthlyReport(c *gin.Context) {
	var q PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	records := h.store.Records()
	year := h.resolveYear(q, records)
	c.JSON(http.StatusOK, exporter.NewMonthlyReport(records, h.store.Factors(), year, q.Plant))
}

// ExportCSV 导出 CSV
// GET /api/export/csv
func (h *Handler) ExportCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := exporter.WriteCSV(&buf, h.store.Records()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", contentDisposition("co2-report.csv"))
	c.Data(http.StatusOK, contentTypeCSV, buf.Bytes())
}

// buildXLSX 生成报告工作簿字节
func (h *Handler) buildXLSX(q PeriodQuery, progress func(exporter.ProgressEvent)) ([]byte, error) {
	records := h.store.Records()
	report := exporter.NewMonthlyReport(records, h.store.Factors(), h.resolveYear(q, records), q.Plant)

	f, err := exporter.BuildWorkbook(records, report, progress)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportXLSX 导出 Excel
// GET /api/export/xlsx?year=&plant=
func (h *Handler) ExportXLSX(c *gin.Context) {
	var q PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	data, err := h.buildXLSX(q, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", contentDisposition("co2-report.xlsx"))
	c.Data(http.StatusOK, contentTypeXLSX, data)
}

type exportProgressEvent struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// ExportStream 导出 Excel（SSE 进度 + 完成后提供一次性下载地址）
// POST /api/export/stream?year=&plant=
func (h *Handler) ExportStream(c *gin.Context) {
	var q PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming not supported"})
		return
	}

	send := func(event exportProgressEvent) {
		b, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", b)
		flusher.Flush()
	}

	send(exportProgressEvent{Type: "start", Message: "export started", Data: map[string]any{"records": h.store.Count()}, Timestamp: time.Now()})

	lastPercent := -1
	data, err := h.buildXLSX(q, func(p exporter.ProgressEvent) {
		if p.Percent == lastPercent {
			return
		}
		lastPercent = p.Percent
		send(exportProgressEvent{Type: "progress", Message: p.Stage, Data: map[string]any{"percent": p.Percent}, Timestamp: time.Now()})
	})
	if err != nil {
		send(exportProgressEvent{Type: "error", Message: "export failed: " + err.Error(), Data: map[string]any{}, Timestamp: time.Now()})
		return
	}

	token := h.downloads.put("co2-report.xlsx", data, downloadTTL)
	prefix := strings.TrimSuffix(c.FullPath(), "/export/stream")
	send(exportProgressEvent{
		Type:    "done",
		Message: "export finished",
		Data: map[string]any{
			"percent":     100,
			"downloadUrl": fmt.Sprintf("%s/export/download/%s", prefix, token),
		},
		Timestamp: time.Now(),
	})
}

// DownloadExport 下载导出的文件（一次性）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	item, ok := h.downloads.take(c.Param("token"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "download link expired"})
		return
	}
	c.Header("Content-Disposition", contentDisposition(item.filename))
	c.Data(http.StatusOK, contentTypeXLSX, item.data)
}

// DownloadTemplate 下载输入模板
// GET /api/template?year=&plant=
func (h *Handler) DownloadTemplate(c *gin.Context) {
	var q TemplateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	year := q.Year
	if year == 0 {
		year = h.opts.Now().Year()
	}
	plant := strings.TrimSpace(q.Plant)
	if plant == "" {
		plant = exporter.DefaultTemplatePlant
	}

	f, err := exporter.BuildTemplate(year, plant)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", contentDisposition(exporter.TemplateFilename(year, plant)))
	c.Data(http.StatusOK, contentTypeXLSX, buf.Bytes())
}
