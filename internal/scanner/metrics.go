package scanner

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"codemetrics/internal/model"
)

const metricsNamespace = "codemetrics"

// Metrics 汇总一次进程内扫描的 Prometheus 指标。
// 每个实例持有独立的 registry，可多次创建而不会冲突；nil 指针上的记录方法为空操作。
type Metrics struct {
	registry *prometheus.Registry

	filesAnalyzed     *prometheus.CounterVec
	filesSkipped      *prometheus.CounterVec
	fileErrors        prometheus.Counter
	bytesAnalyzed     prometheus.Counter
	analyzeDuration   prometheus.Histogram
	scanDuration      prometheus.Histogram
	qualityScore      prometheus.Histogram
	complexityPerFile prometheus.Histogram
}

// NewMetrics 创建并注册全部扫描指标。
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		filesAnalyzed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "files_analyzed_total",
			Help:      "Number of analyzed files by language.",
		}, []string{"language"}),
		filesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "files_skipped_total",
			Help:      "Number of skipped files and directories by reason.",
		}, []string{"reason"}),
		fileErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "file_errors_total",
			Help:      "Number of files that could not be read or decoded.",
		}),
		bytesAnalyzed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "bytes_analyzed_total",
			Help:      "Total size of analyzed source content in bytes.",
		}),
		analyzeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "file_analyze_duration_seconds",
			Help:      "Time spent analyzing a single file.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		scanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "scan_duration_seconds",
			Help:      "Wall time of a complete scan.",
			Buckets:   prometheus.DefBuckets,
		}),
		qualityScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "quality_score",
			Help:      "Distribution of per-file quality scores.",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		}),
		complexityPerFile: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "file_complexity",
			Help:      "Distribution of per-file cyclomatic complexity estimates.",
			Buckets:   []float64{1, 5, 10, 20, 50, 100},
		}),
	}

	m.registry.MustRegister(
		m.filesAnalyzed,
		m.filesSkipped,
		m.fileErrors,
		m.bytesAnalyzed,
		m.analyzeDuration,
		m.scanDuration,
		m.qualityScore,
		m.complexityPerFile,
	)
	return m
}

// Gatherer 返回指标所在的 registry。
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile 以 node_exporter textfile 格式把指标写入 path。
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

func (m *Metrics) observeFile(result model.FileAnalysisResult, size int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.filesAnalyzed.WithLabelValues(result.Language).Inc()
	m.bytesAnalyzed.Add(float64(size))
	m.analyzeDuration.Observe(elapsed.Seconds())
	m.qualityScore.Observe(float64(result.CodeQuality.Score))
	m.complexityPerFile.Observe(float64(result.Complexity.Total))
}

func (m *Metrics) observeSkip(reason string) {
	if m == nil {
		return
	}
	m.filesSkipped.WithLabelValues(reason).Inc()
}

func (m *Metrics) observeError() {
	if m == nil {
		return
	}
	m.fileErrors.Inc()
}

func (m *Metrics) observeScan(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.scanDuration.Observe(elapsed.Seconds())
}
