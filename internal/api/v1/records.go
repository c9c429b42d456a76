package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dhaniamnd/co2-reporter/internal/calculator"
	"github.com/dhaniamnd/co2-reporter/internal/model"
)

// PeriodQuery 年份/工厂筛选
type PeriodQuery struct {
	Year  int    `form:"year" binding:"omitempty,gte=1900,lte=9999"`
	Plant string `form:"plant" binding:"omitempty,max=128"`
}

// resolveYear 未指定年份时取数据中最新的年份
func (h *Handler) resolveYear(q PeriodQuery, records []model.OutputRecord) int {
	if q.Year > 0 {
		return q.Year
	}
	return calculator.LatestYear(records, h.opts.Now().Year())
}

// ListRecords 工作集明细（按导入顺序）
// GET /api/records
func (h *Handler) ListRecords(c *gin.Context) {
	records := h.store.Records()
	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"total":   len(records),
	})
}

// TotalsResponse 汇总响应
type TotalsResponse struct {
	ByPlantMap map[string]float64 `json:"byPlantMap"` // 表格页脚使用
	ByPlant    []model.KeyTotal   `json:"byPlant"`
	ByMonth    []model.KeyTotal   `json:"byMonth"`
	GrandTotal float64            `json:"grandTotal"`
}

// GetTotals 按工厂、按月汇总
// GET /api/totals
func (h *Handler) GetTotals(c *gin.Context) {
	records := h.store.Records()
	c.JSON(http.StatusOK, TotalsResponse{
		ByPlantMap: calculator.PlantTotals(records),
		ByPlant:    calculator.SumBy(records, calculator.DimensionPlant),
		ByMonth:    calculator.SumBy(records, calculator.DimensionMonth),
		GrandTotal: calculator.GrandTotal(records),
	})
}

// GetMonthly 指定年份 12 个月序列
// GET /api/monthly?year=&plant=
func (h *Handler) GetMonthly(c *gin.Context) {
	var q PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	records := h.store.Records()
	year := h.resolveYear(q, records)
	c.JSON(http.StatusOK, gin.H{
		"year":   year,
		"plant":  q.Plant,
		"months": calculator.MonthlyBuckets(records, year, q.Plant),
	})
}

// GetSummary 汇总卡片
// GET /api/summary
func (h *Handler) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, calculator.Summarize(h.store.Records()))
}

// GetFilters 可选年份与工厂
// GET /api/filters
func (h *Handler) GetFilters(c *gin.Context) {
	records := h.store.Records()
	c.JSON(http.StatusOK, gin.H{
		"years":       calculator.Years(records),
		"plants":      calculator.Plants(records),
		"defaultYear": calculator.LatestYear(records, h.opts.Now().Year()),
	})
}
