package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RedirectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "biolink_redirects_total",
		Help: "Click redirect attempts by outcome.",
	}, []string{"status"})

	ClicksRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "biolink_clicks_recorded_total",
		Help: "Click event rows successfully written to the database.",
	})

	ClicksRecordErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "biolink_clicks_record_errors_total",
		Help: "Click event insert failures.",
	})

	ClicksDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "biolink_clicks_dropped_total",
		Help: "Click events dropped because the writer queue was full.",
	})

	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "biolink_logins_total",
		Help: "Login attempts by outcome.",
	}, []string{"status"})

	RegistrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "biolink_registrations_total",
		Help: "Successfully created user accounts.",
	})
)
