package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/dhaniamnd/co2-reporter/internal/model"
)

func TestObserveFile(t *testing.T) {
	t.Parallel()

	m := New(prometheus.NewRegistry())
	m.ObserveFile(model.FileReport{
		Strategy:     model.StrategyTidy,
		RowsRead:     5,
		RowsAccepted: 3,
		Rejected:     map[model.RejectReason]int{model.RejectNegativeValue: 2},
		Duration:     20 * time.Millisecond,
	})
	m.SetWorkingSet(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FilesTotal.WithLabelValues("tidy")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.RowsRead))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.RowsAccepted))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RowsRejected.WithLabelValues("negative_value")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.WorkingSet))
}

func TestNilMetricsIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.ObserveFile(model.FileReport{})
	m.SetWorkingSet(1)
}
