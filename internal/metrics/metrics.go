// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/jonathan/diploma-scanner/internal/types"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "diploma_scanner"

var (
	Extractions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "extractions_total", Help: "Number of documents run through the extractor, by schema mode."},
		[]string{"mode"},
	)
	FieldFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "field_fallbacks_total", Help: "Number of fields that took their default, by field."},
		[]string{"field"},
	)
	MatchedFields = prometheus.NewHistogram(
		prometheus.HistogramOpts{Namespace: namespace, Name: "matched_fields", Help: "Fields matched per extraction.", Buckets: prometheus.LinearBuckets(0, 3, 6)},
	)
	GalleryRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "gallery_requests_total", Help: "Upstream requests made by the repository gallery, by kind and result."},
		[]string{"kind", "result"},
	)
	GalleryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Namespace: namespace, Name: "gallery_build_seconds", Help: "Time to list repositories and probe previews.", Buckets: prometheus.DefBuckets},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_allowed_total", Help: "Number of allowed requests by endpoint."},
		[]string{"endpoint"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_rejected_total", Help: "Number of rejected requests by endpoint."},
		[]string{"endpoint"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests served, by method, route and status."},
		[]string{"method", "route", "status"},
	)
)

// RegisterCollectors registers every collector with reg.
func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(Extractions)
	reg.MustRegister(FieldFallbacks)
	reg.MustRegister(MatchedFields)
	reg.MustRegister(GalleryRequests)
	reg.MustRegister(GalleryDuration)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(HTTPRequests)
}

// Schema modes used as the "mode" label.
const (
	ModeStandard = "standard"
	ModeLegacy   = "legacy"
)

// ObserveReport records one extraction and its per-field outcomes.
func ObserveReport(mode string, outcomes []types.FieldOutcome) {
	Extractions.WithLabelValues(mode).Inc()
	matched := 0
	for _, o := range outcomes {
		if o.Matched {
			matched++
			continue
		}
		FieldFallbacks.WithLabelValues(o.Field).Inc()
	}
	MatchedFields.Observe(float64(matched))
}

// ObserveGalleryRequest counts one upstream request; kind is "list" or "probe".
func ObserveGalleryRequest(kind string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	GalleryRequests.WithLabelValues(kind, result).Inc()
}

// ObserveGalleryBuild records how long a full gallery build took.
func ObserveGalleryBuild(d time.Duration) {
	GalleryDuration.Observe(d.Seconds())
}

// ObserveRateLimit counts one rate-limit decision for endpoint.
func ObserveRateLimit(endpoint string, allowed bool) {
	if allowed {
		RateLimitAllowed.WithLabelValues(endpoint).Inc()
		return
	}
	RateLimitRejected.WithLabelValues(endpoint).Inc()
}

// ObserveHTTP counts one served request.
func ObserveHTTP(method, route string, status int) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
