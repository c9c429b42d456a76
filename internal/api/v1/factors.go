package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dhaniamnd/co2-reporter/internal/model"
)

// UpdateFactorsRequest 更新排放因子请求
type UpdateFactorsRequest struct {
	ProcessEF *float64 `json:"processEF" binding:"required,gte=0"`
	FuelEF    *float64 `json:"fuelEF" binding:"required,gte=0"`
	GridEF    *float64 `json:"gridEF" binding:"required,gte=0"`
}

// GetFactors 当前排放因子
// GET /api/factors
func (h *Handler) GetFactors(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Factors())
}

// UpdateFactors 更新排放因子并重算工作集
// PUT /api/factors
func (h *Handler) UpdateFactors(c *gin.Context) {
	var req UpdateFactorsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f := model.EmissionFactors{
		ProcessEF: *req.ProcessEF,
		FuelEF:    *req.FuelEF,
		GridEF:    *req.GridEF,
	}
	records := h.store.SetFactors(f)
	h.logger.Info("emission factors updated",
		"process_ef", f.ProcessEF,
		"fuel_ef", f.FuelEF,
		"grid_ef", f.GridEF,
		"recalculated", len(records),
	)
	c.JSON(http.StatusOK, gin.H{
		"factors":      f,
		"recalculated": len(records),
	})
}
