package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dhaniamnd/co2-reporter/internal/model"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Initialized bool                  `json:"initialized"` // 是否已有数据
	Records     int                   `json:"records"`     // 工作集记录数
	Factors     model.EmissionFactors `json:"factors"`     // 当前排放因子
	Reports     []model.FileReport    `json:"reports"`     // 最近导入的文件报告
	UpdatedAt   string                `json:"updatedAt"`   // 最近变更时间
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	count := h.store.Count()
	updated := ""
	if t := h.store.UpdatedAt(); !t.IsZero() {
		updated = t.Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, StatusResponse{
		Initialized: count > 0,
		Records:     count,
		Factors:     h.store.Factors(),
		Reports:     h.store.Reports(),
		UpdatedAt:   updated,
	})
}
