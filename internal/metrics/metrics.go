// Package metrics defines the Prometheus instruments of the forwarding
// controller.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fabricfwd"

// Label names.
const (
	LabelFrameType = "type"
	LabelOutcome   = "outcome"
)

// Metrics groups the controller's instruments. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	Frames           *prometheus.CounterVec
	Outcomes         *prometheus.CounterVec
	RulesSubmitted   prometheus.Counter
	RuleSubmitErrors prometheus.Counter
	PacketOuts       prometheus.Counter
	PacketOutErrors  prometheus.Counter
}

// New creates the instruments and registers them on reg. When sessions is
// not nil it backs the fabricfwd_sessions gauge.
func New(reg prometheus.Registerer, sessions func() int) *Metrics {
	f := promauto.With(reg)
	m := &Metrics{
		Frames: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Packet-in frames received, by Ethernet frame type.",
		}, []string{LabelFrameType}),
		Outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatch_outcomes_total",
			Help:      "Frames dispatched, by outcome.",
		}, []string{LabelOutcome}),
		RulesSubmitted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rules_submitted_total",
			Help:      "Flow rules handed to the rule sink.",
		}),
		RuleSubmitErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rule_submit_errors_total",
			Help:      "Rule batches the sink rejected.",
		}),
		PacketOuts: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "packet_outs_total",
			Help:      "Frames re-emitted into the data plane.",
		}),
		PacketOutErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "packet_out_errors_total",
			Help:      "Packet-outs that failed.",
		}),
	}
	if sessions != nil {
		f.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions",
			Help:      "Host pairs currently recorded in the session ledger.",
		}, func() float64 { return float64(sessions()) })
	}
	return m
}

// Frame counts one received frame of the given type.
func (m *Metrics) Frame(frameType string) {
	if m == nil {
		return
	}
	m.Frames.WithLabelValues(frameType).Inc()
}

// Outcome counts one dispatch result.
func (m *Metrics) Outcome(outcome string) {
	if m == nil {
		return
	}
	m.Outcomes.WithLabelValues(outcome).Inc()
}

// Submitted counts a rule batch. Failed batches are counted as submitted
// and as errors.
func (m *Metrics) Submitted(rules int, err error) {
	if m == nil {
		return
	}
	m.RulesSubmitted.Add(float64(rules))
	if err != nil {
		m.RuleSubmitErrors.Inc()
	}
}

// PacketOut counts one packet-out attempt.
func (m *Metrics) PacketOut(err error) {
	if m == nil {
		return
	}
	m.PacketOuts.Inc()
	if err != nil {
		m.PacketOutErrors.Inc()
	}
}
