package drip

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/evm-faucet/drip/internal/drip/store"
)

const (
	resultSent     = "sent"
	resultFailed   = "failed"
	resultDeferred = "deferred"
	resultRetried  = "retried"
)

type Stats struct {
	Drips              *prometheus.CounterVec
	Duplicates         prometheus.Counter
	SignerLockBusy     prometheus.Counter
	ReconcilerResolved *prometheus.CounterVec
	ReconcilerSkipped  prometheus.Counter
	RequestsByStatus   *prometheus.GaugeVec
}

func NewStats() *Stats {
	return &Stats{
		Drips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "drip_pipeline_results_total",
			Help: "Number of processed work items by result",
		}, []string{"result"}),
		Duplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "drip_pipeline_duplicates_total",
			Help: "Number of redelivered work items for requests already broadcast or sent",
		}),
		SignerLockBusy: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "drip_signer_lock_unavailable_total",
			Help: "Number of work items which could not acquire the signer lock",
		}),
		ReconcilerResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "drip_reconciler_resolved_total",
			Help: "Number of broadcast requests examined by the reconciler by outcome",
		}, []string{"outcome"}),
		ReconcilerSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "drip_reconciler_skipped_total",
			Help: "Number of reconciliation cycles skipped because another instance held the lock",
		}),
		RequestsByStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "drip_requests",
			Help: "Shows the number of requests by status",
		}, []string{"status"}),
	}
}

func (s *Stats) collectors() []prometheus.Collector {
	return []prometheus.Collector{s.Drips, s.Duplicates, s.SignerLockBusy, s.ReconcilerResolved, s.ReconcilerSkipped, s.RequestsByStatus}
}

func (s *Stats) Register(reg prometheus.Registerer) error {
	for _, c := range s.collectors() {
		err := reg.Register(c)
		if err != nil {
			var alreadyRegistered prometheus.AlreadyRegisteredError
			if errors.As(err, &alreadyRegistered) {
				continue
			}
			return err
		}
	}

	return nil
}

func (s *Stats) Unregister(reg prometheus.Registerer) {
	for _, c := range s.collectors() {
		reg.Unregister(c)
	}
}

func (s *Stats) drip(result string) {
	if s == nil {
		return
	}
	s.Drips.WithLabelValues(result).Inc()
}

func (s *Stats) duplicate() {
	if s == nil {
		return
	}
	s.Duplicates.Inc()
}

func (s *Stats) signerLockBusy() {
	if s == nil {
		return
	}
	s.SignerLockBusy.Inc()
}

func (s *Stats) resolved(outcome string) {
	if s == nil {
		return
	}
	s.ReconcilerResolved.WithLabelValues(outcome).Inc()
}

func (s *Stats) skipped() {
	if s == nil {
		return
	}
	s.ReconcilerSkipped.Inc()
}

func (s *Stats) requests(counts map[store.Status]int64) {
	if s == nil {
		return
	}
	for status, count := range counts {
		s.RequestsByStatus.WithLabelValues(string(status)).Set(float64(count))
	}
}
