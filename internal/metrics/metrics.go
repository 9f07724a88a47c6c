// Package metrics defines the Prometheus collectors for golden-profile.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "golden"

var (
	// SubmissionsTotal counts comment submissions by outcome
	// (posted, rejected, failed, in_flight).
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "comments",
			Name:      "submissions_total",
			Help:      "Total comment submissions by outcome",
		},
		[]string{"outcome"},
	)

	// LikesTotal counts local like acknowledgments.
	LikesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "comments",
			Name:      "likes_total",
			Help:      "Total like acknowledgments",
		},
	)

	// FeedRefreshesTotal counts feed queries by result (ok, absent, error).
	FeedRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "refreshes_total",
			Help:      "Total message feed refreshes by result",
		},
		[]string{"result"},
	)

	// FeedSize is the number of comments in the cached feed.
	FeedSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "comments",
			Help:      "Number of comments currently cached by the feed",
		},
	)

	// UpstreamCallsTotal counts third-party proxy calls by upstream and result.
	UpstreamCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "proxy",
			Name:      "upstream_calls_total",
			Help:      "Total third-party API calls by upstream and result",
		},
		[]string{"upstream", "result"},
	)
)
