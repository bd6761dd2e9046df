// Package observability defines Prometheus metrics for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "esperanca_redis_errors_total",
		Help: "Total number of Redis command errors",
	}, []string{"command"})

	// UploadsTotal counts processed uploads by folder and outcome.
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "esperanca_uploads_total",
		Help: "Total number of file uploads processed",
	}, []string{"folder", "status"})

	// UploadProcessingDuration observes the time spent processing uploads
	// (image decode, resize and re-encode included).
	UploadProcessingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "esperanca_upload_processing_seconds",
		Help:    "Time spent processing uploaded files",
		Buckets: prometheus.DefBuckets,
	}, []string{"folder"})

	// StoreWriteErrors counts failed writes of the product JSON document.
	StoreWriteErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "esperanca_store_write_errors_total",
		Help: "Total number of failed product store writes",
	})
)
