package store

import (
	"sync"
	"time"

	"github.com/dhaniamnd/co2-reporter/internal/calculator"
	"github.com/dhaniamnd/co2-reporter/internal/model"
)

// MemoryStore 内存报告会话：当前工作集、排放因子、最近一次导入的文件报告
// 不做持久化，进程退出即丢弃
type MemoryStore struct {
	records   []model.OutputRecord
	factors   model.EmissionFactors
	reports   []model.FileReport
	updatedAt time.Time
	mu        sync.RWMutex
}

// NewMemoryStore 创建内存存储
func NewMemoryStore(factors model.EmissionFactors) *MemoryStore {
	return &MemoryStore{factors: factors}
}

// Replace 用新的导入结果替换工作集
// 记录按当前排放因子重算，导入期间因子被修改时仍保持一致
func (s *MemoryStore) Replace(records []model.OutputRecord, reports []model.FileReport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = calculator.Recalculate(records, s.factors)
	s.reports = append([]model.FileReport(nil), reports...)
	s.updatedAt = time.Now()
}

// Append 追加导入结果，保持提交顺序，新记录按当前排放因子重算
func (s *MemoryStore) Append(records []model.OutputRecord, reports []model.FileReport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, calculator.Recalculate(records, s.factors)...)
	s.reports = append(s.reports, reports...)
	s.updatedAt = time.Now()
}

// Records 当前工作集（副本）
func (s *MemoryStore) Records() []model.OutputRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]model.OutputRecord(nil), s.records...)
}

// Factors 当前排放因子
func (s *MemoryStore) Factors() model.EmissionFactors {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.factors
}

// SetFactors 更新排放因子并同步重算整个工作集
func (s *MemoryStore) SetFactors(f model.EmissionFactors) []model.OutputRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.factors = f
	s.records = calculator.Recalculate(s.records, f)
	s.updatedAt = time.Now()
	return append([]model.OutputRecord(nil), s.records...)
}

// Reports 最近导入的文件报告（副本）
func (s *MemoryStore) Reports() []model.FileReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]model.FileReport(nil), s.reports...)
}

// Count 工作集记录数
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

// UpdatedAt 工作集最近一次变更时间
func (s *MemoryStore) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.updatedAt
}

// Clear 清空工作集与报告，保留排放因子
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	s.reports = nil
	s.updatedAt = time.Now()
}
