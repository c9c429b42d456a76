package v1

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dhaniamnd/co2-reporter/internal/importer"
)

// 工作集更新方式
const (
	ModeReplace = "replace"
	ModeAppend  = "append"
)

// ImportForm 导入表单参数
type ImportForm struct {
	Mode   string `form:"mode" binding:"omitempty,oneof=replace append"`
	Sheet  string `form:"sheet" binding:"omitempty,max=64"`
	Stream *bool  `form:"stream"`
}

// Import 导入 Excel 数据，默认 SSE 流式响应；stream=false 时直接返回 JSON
// POST /api/import
func (h *Handler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes)

	var form ImportForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	multipartForm, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}
	files := multipartForm.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}

	uploads, err := readUploads(files)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appendMode := h.opts.Append
	switch form.Mode {
	case ModeAppend:
		appendMode = true
	case ModeReplace:
		appendMode = false
	}
	sheet := form.Sheet
	if sheet == "" {
		sheet = h.opts.SheetName
	}
	opts := importer.ImportOptions{SheetName: sheet, Now: h.opts.Now}
	factors := h.store.Factors()

	if form.Stream != nil && !*form.Stream {
		batch, err := h.coordinator.Import(c.Request.Context(), uploads, factors, opts)
		if err != nil {
			c.JSON(http.StatusRequestTimeout, gin.H{"error": err.Error()})
			return
		}
		h.applyBatch(batch, appendMode)
		c.JSON(http.StatusOK, batch)
		return
	}

	// 设置 SSE 响应头
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming not supported"})
		return
	}

	progressChan := h.coordinator.ImportStream(c.Request.Context(), uploads, factors, opts)
	for event := range progressChan {
		if event.Type == importer.EventDone {
			if batch, ok := event.Data.(*importer.Batch); ok {
				h.applyBatch(batch, appendMode)
			}
		}

		eventData, err := json.Marshal(event)
		if err != nil {
			continue
		}
		// SSE 格式: data: {json}\n\n
		fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
		flusher.Flush()
	}
}

// ClearRecords 清空工作集
// DELETE /api/records
func (h *Handler) ClearRecords(c *gin.Context) {
	h.store.Clear()
	h.metrics.SetWorkingSet(0)
	c.Status(http.StatusNoContent)
}

func (h *Handler) applyBatch(batch *importer.Batch, appendMode bool) {
	if appendMode {
		h.store.Append(batch.Records, batch.Reports)
	} else {
		h.store.Replace(batch.Records, batch.Reports)
	}
	h.metrics.SetWorkingSet(h.store.Count())
	h.logger.Info("working set updated",
		"batch_id", batch.ID,
		"append", appendMode,
		"records", len(batch.Records),
		"failed_files", len(batch.Failed),
	)
}

func readUploads(files []*multipart.FileHeader) ([]importer.Upload, error) {
	uploads := make([]importer.Upload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
		}
		uploads = append(uploads, importer.Upload{Name: fh.Filename, Data: data})
	}
	return uploads, nil
}
