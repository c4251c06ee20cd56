// Package observability exposes prometheus counters for moderation activity
// and serves them over HTTP.
package observability

import (
	"context"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace"
)

var (
	filteredMessagesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "guardian_messages_filtered_total",
			Help: "Messages deleted by the banned-word filter",
		},
	)

	warnsIssuedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "guardian_warns_issued_total",
			Help: "Warns issued by moderators",
		},
	)

	escalationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "guardian_warn_escalations_total",
			Help: "Automatic mutes triggered by the warn threshold",
		},
	)

	aiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guardian_ai_requests_total",
			Help: "AI-assisted replies by outcome",
		},
		[]string{"status"},
	)

	registerOnce sync.Once
)

func registerMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(filteredMessagesTotal)
		prometheus.MustRegister(warnsIssuedTotal)
		prometheus.MustRegister(escalationsTotal)
		prometheus.MustRegister(aiRequestsTotal)
		otel.SetTracerProvider(trace.NewTracerProvider())
	})
}

func RecordFilteredMessage() {
	filteredMessagesTotal.Inc()
}

func RecordWarnIssued() {
	warnsIssuedTotal.Inc()
}

func RecordEscalation() {
	escalationsTotal.Inc()
}

// RecordAIRequest counts a gated AI request; status is ok, error or denied.
func RecordAIRequest(status string) {
	aiRequestsTotal.WithLabelValues(status).Inc()
}

// Server is a lifecycle component serving /metrics.
type Server struct {
	addr string
	srv  *http.Server
}

func NewServer(addr string) *Server {
	return &Server{addr: addr}
}

func (s *Server) Start(ctx context.Context) error {
	registerMetrics()
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	s.srv = &http.Server{Addr: s.addr, Handler: mux}
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("metrics server failed")
		}
	}()
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
