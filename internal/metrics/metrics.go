package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	BusinessesGeocoded *prometheus.CounterVec
	ProviderErrors     prometheus.Counter
	RequestSeconds     *prometheus.HistogramVec
	ActiveWorkers      prometheus.Gauge
	ImagesUploaded     *prometheus.CounterVec
	CalendarExports    *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		BusinessesGeocoded: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "backfill_businesses_geocoded_total",
			Help: "Total number of businesses processed by the coordinate backfill.",
		}, []string{"status"}),
		ProviderErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "geocoding_provider_api_errors_total",
			Help: "Total number of errors received from the geocoding provider API.",
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geocoding_provider_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "backfill_active_workers",
			Help: "Current number of active workers geocoding businesses.",
		}),
		ImagesUploaded: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "images_uploaded_total",
			Help: "Total number of image uploads by category and outcome.",
		}, []string{"category", "status"}),
		CalendarExports: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "calendar_exports_total",
			Help: "Total number of appointment calendar files generated.",
		}, []string{"status"}),
	}
}
