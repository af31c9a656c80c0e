package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "xl2pdf"

// Result label values for files_total.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Recorder collects conversion metrics into a private registry.
// It implements orchestration.Recorder.
type Recorder struct {
	reg          *prometheus.Registry
	files        *prometheus.CounterVec
	fileDuration prometheus.Histogram
	inputBytes   prometheus.Counter
	batches      *prometheus.CounterVec
	lastBatch    prometheus.Gauge
	lastDuration prometheus.Gauge
}

// NewRecorder creates a Recorder with all metrics registered, including a
// heap gauge sampled from mem (nil selects a new MemoryCollector).
func NewRecorder(mem *MemoryCollector) *Recorder {
	if mem == nil {
		mem = NewMemoryCollector()
	}
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_total",
			Help:      "Workbooks processed, by result.",
		}, []string{"result"}),
		fileDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "file_duration_seconds",
			Help:      "Time to open, export and close one workbook.",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		inputBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "input_bytes_total",
			Help:      "Bytes of workbooks read.",
		}),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Batches run, by outcome.",
		}, []string{"outcome"}),
		lastBatch: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_batch_timestamp_seconds",
			Help:      "Unix time the last batch finished.",
		}),
		lastDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_batch_duration_seconds",
			Help:      "Wall time of the last batch.",
		}),
	}
	heap := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "heap_alloc_bytes",
		Help:      "Heap bytes in use when metrics were gathered.",
	}, func() float64 { return float64(mem.Snapshot().HeapAlloc) })

	r.reg.MustRegister(r.files, r.fileDuration, r.inputBytes, r.batches, r.lastBatch, r.lastDuration, heap)
	r.reg.MustRegister(collectors.NewBuildInfoCollector())
	return r
}

// Registry returns the registry holding every metric of the Recorder.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// ObserveFile records one converted or failed workbook.
func (r *Recorder) ObserveFile(success bool, d time.Duration, inputBytes int64) {
	result := ResultFailure
	if success {
		result = ResultSuccess
	}
	r.files.WithLabelValues(result).Inc()
	r.fileDuration.Observe(d.Seconds())
	if inputBytes > 0 {
		r.inputBytes.Add(float64(inputBytes))
	}
}

// ObserveBatch records a finished batch.
func (r *Recorder) ObserveBatch(outcome string, _, _ int, d time.Duration) {
	r.batches.WithLabelValues(outcome).Inc()
	r.lastBatch.SetToCurrentTime()
	r.lastDuration.Set(d.Seconds())
}

// WriteTextfile writes all metrics in the text exposition format to path,
// atomically, for the node_exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
