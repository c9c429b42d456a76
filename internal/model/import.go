package model

import "time"

// Strategy 版式解析策略
type Strategy string

const (
	StrategyTidy   Strategy = "tidy"   // 逐行明细
	StrategyMatrix Strategy = "matrix" // 指标 × 工厂 转置矩阵
	StrategyNone   Strategy = "none"
)

// RejectReason 行被丢弃的原因
type RejectReason string

const (
	RejectMissingPlant   RejectReason = "missing_plant"
	RejectMissingDate    RejectReason = "missing_date"
	RejectInvalidDate    RejectReason = "invalid_date"
	RejectMissingClinker RejectReason = "missing_clinker"
	RejectNegativeValue  RejectReason = "negative_value"
	RejectNonFinite      RejectReason = "non_finite_value"
)

// Rejection 被丢弃的候选行
type Rejection struct {
	Row    int          `json:"row"` // Excel 行号（1 起）或矩阵列号
	Reason RejectReason `json:"reason"`
	Detail string       `json:"detail,omitempty"`
}

// 文件级告警
const (
	WarnYearUnresolved = "year_unresolved" // 矩阵版式无法确定年份，日期取当天
	WarnNoRecords      = "no_records"
)

// FileReport 单个文件的导入诊断
type FileReport struct {
	ID           string               `json:"id"`
	Filename     string               `json:"filename"`
	Sheet        string               `json:"sheet"`
	Strategy     Strategy             `json:"strategy"`
	RowsRead     int                  `json:"rowsRead"`
	RowsAccepted int                  `json:"rowsAccepted"`
	Rejected     map[RejectReason]int `json:"rejected,omitempty"`
	Warnings     []string             `json:"warnings,omitempty"`
	Duration     time.Duration        `json:"duration"`
}

// AddRejection 记录一条丢弃原因
func (r *FileReport) AddRejection(reason RejectReason) {
	if r.Rejected == nil {
		r.Rejected = make(map[RejectReason]int)
	}
	r.Rejected[reason]++
}

// RowsRejected 丢弃行数
func (r *FileReport) RowsRejected() int {
	n := 0
	for _, c := range r.Rejected {
		n += c
	}
	return n
}
