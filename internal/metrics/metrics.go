package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dhaniamnd/co2-reporter/internal/model"
)

const namespace = "co2reporter"

// Metrics 导入相关指标
type Metrics struct {
	FilesTotal    *prometheus.CounterVec
	RowsRead      prometheus.Counter
	RowsAccepted  prometheus.Counter
	RowsRejected  *prometheus.CounterVec
	ParseDuration prometheus.Histogram
	WorkingSet    prometheus.Gauge
}

// New 在指定注册表上创建指标，reg 为空时使用独立注册表
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Metrics{
		FilesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_files_total",
			Help:      "Workbooks ingested, by winning layout strategy.",
		}, []string{"strategy"}),
		RowsRead: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_rows_read_total",
			Help:      "Candidate rows read from workbooks.",
		}),
		RowsAccepted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_rows_accepted_total",
			Help:      "Rows that passed validation.",
		}),
		RowsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_rows_rejected_total",
			Help:      "Rows dropped during ingestion, by reason.",
		}, []string{"reason"}),
		ParseDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "import_parse_seconds",
			Help:      "Time spent parsing a single workbook.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		WorkingSet: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "working_set_records",
			Help:      "Output records currently held in the report session.",
		}),
	}
}

// ObserveFile 记录单个文件的导入诊断
func (m *Metrics) ObserveFile(r model.FileReport) {
	if m == nil {
		return
	}
	m.FilesTotal.WithLabelValues(string(r.Strategy)).Inc()
	m.RowsRead.Add(float64(r.RowsRead))
	m.RowsAccepted.Add(float64(r.RowsAccepted))
	for reason, n := range r.Rejected {
		m.RowsRejected.WithLabelValues(string(reason)).Add(float64(n))
	}
	m.ParseDuration.Observe(r.Duration.Seconds())
}

// SetWorkingSet 更新工作集记录数
func (m *Metrics) SetWorkingSet(n int) {
	if m == nil {
		return
	}
	m.WorkingSet.Set(float64(n))
}
