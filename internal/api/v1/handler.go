package v1

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dhaniamnd/co2-reporter/internal/importer"
	"github.com/dhaniamnd/co2-reporter/internal/metrics"
	"github.com/dhaniamnd/co2-reporter/internal/service/store"
)

// Options 处理器选项
type Options struct {
	MaxUploadBytes int64            // 单次上传大小上限
	SheetName      string           // 默认解析的 sheet，为空取第一个
	Append         bool             // 默认追加而非替换工作集
	Now            func() time.Time // 年份兜底时钟
}

// Handler V1 API 处理器
type Handler struct {
	store       *store.MemoryStore
	coordinator *importer.Coordinator
	metrics     *metrics.Metrics
	logger      *slog.Logger
	opts        Options
	downloads   *exportDownloadStore
}

// NewHandler 创建 V1 API 处理器
func NewHandler(st *store.MemoryStore, coord *importer.Coordinator, m *metrics.Metrics, logger *slog.Logger, opts Options) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 32 << 20
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Handler{
		store:       st,
		coordinator: coord,
		metrics:     m,
		logger:      logger.With("component", "api"),
		opts:        opts,
		downloads:   newExportDownloadStore(),
	}
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 数据导入
	router.POST("/import", h.Import)
	router.DELETE("/records", h.ClearRecords)

	// 查询与汇总
	router.GET("/records", h.ListRecords)
	router.GET("/totals", h.GetTotals)
	router.GET("/monthly", h.GetMonthly)
	router.GET("/summary", h.GetSummary)
	router.GET("/filters", h.GetFilters)

	// 排放因子
	router.GET("/factors", h.GetFactors)
	router.PUT("/factors", h.UpdateFactors)

	// 报告与导出
	router.GET("/report/monthly", h.GetMonthlyReport)
	router.GET("/export/csv", h.ExportCSV)
	router.GET("/export/xlsx", h.ExportXLSX)
	router.POST("/export/stream", h.ExportStream)
	router.GET("/export/download/:token", h.DownloadExport)
	router.GET("/template", h.DownloadTemplate)
}
