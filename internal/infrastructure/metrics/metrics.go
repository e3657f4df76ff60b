// Package metrics defines and registers the custom Prometheus metrics of the
// Revit marketplace API. Metric names, labels and help strings live here only.
//
// All collectors are registered with the default registry through promauto
// when the package is imported.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "revit"

// ── Job metrics ───────────────────────────────────────────────────────────────

// JobsCreatedTotal counts newly posted jobs.
var JobsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_created_total",
		Help:      "Total number of jobs created.",
	},
)

// JobTransitionsTotal counts applied job status changes.
// Labels:
//   - from, to: job statuses (e.g. "open" → "assigned")
var JobTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_transitions_total",
		Help:      "Total number of job status transitions applied.",
	},
	[]string{"from", "to"},
)

// ── Application metrics ───────────────────────────────────────────────────────

// ApplicationsSubmittedTotal counts applications stored successfully.
var ApplicationsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_submitted_total",
		Help:      "Total number of applications submitted.",
	},
)

// ApplicationDecisionsTotal counts client decisions on applications.
// Label:
//   - decision: "accept" or "reject"
var ApplicationDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "application_decisions_total",
		Help:      "Total number of application decisions, by decision.",
	},
	[]string{"decision"},
)

// EligibilityDenialsTotal counts refused submissions and eligibility checks.
// Label:
//   - reason: the ineligibility reason (e.g. "already_applied")
var EligibilityDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "eligibility_denials_total",
		Help:      "Total number of applications refused, by ineligibility reason.",
	},
	[]string{"reason"},
)

// ── Activity dispatcher metrics ───────────────────────────────────────────────

// ActivityEventsTotal counts job events handled by the dispatcher.
// Labels:
//   - type: the event type (e.g. "job_assigned")
//   - result: "recorded", "failed" or "dropped"
var ActivityEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_events_total",
		Help:      "Total number of job events handled by the activity dispatcher.",
	},
	[]string{"type", "result"},
)

// ActivityQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityRecordDuration measures how long recording one event takes.
var ActivityRecordDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_record_duration_seconds",
		Help:      "Duration of recording a job event, from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"type"},
)
