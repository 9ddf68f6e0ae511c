// Package metrics はsubscriber-apiのPrometheusメトリクスを提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/validate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 検証結果ラベル
const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

// Metrics は専用レジストリに登録したメトリクス群。
type Metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	validations *prometheus.CounterVec
	violations  *prometheus.CounterVec
}

// New は新しいMetricsを生成し、プロセス/Goランタイムのコレクタも登録する。
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "subscriber_api_requests_total",
				Help: "Total number of HTTP requests handled by subscriber-api",
			},
			[]string{"method", "route", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "subscriber_api_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "subscriber_validation_total",
				Help: "Subscriber document validations by result",
			},
			[]string{"result"},
		),
		violations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "subscriber_violations_total",
				Help: "Validation violations by error kind",
			},
			[]string{"error_kind"},
		),
	}

	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.validations,
		m.violations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry はメトリクスのレジストリを返す。
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler は /metrics 用のHTTPハンドラーを返す。
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest はHTTPリクエスト1件を記録する。
// route はパスパラメータを含まないルートテンプレートを渡す。
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveValidation は検証結果を記録する。
// 違反リストの場合は種別ごとの件数も加算する。nilレシーバでは何もしない。
func (m *Metrics) ObserveValidation(err error) {
	if m == nil {
		return
	}
	if err == nil {
		m.validations.WithLabelValues(ResultValid).Inc()
		return
	}
	vs, ok := validate.AsViolations(err)
	if !ok {
		m.validations.WithLabelValues(ResultError).Inc()
		return
	}
	m.validations.WithLabelValues(ResultInvalid).Inc()
	for _, v := range vs {
		m.violations.WithLabelValues(string(v.ErrorKind)).Inc()
	}
}
