// Package metric registers the process-wide Prometheus collectors. Counters
// are incremented from the service layer; cmd/api exposes them on /metrics.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RegistrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "igniters_registrations_total",
		Help: "Registration attempts by result",
	}, []string{"result"})

	ScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "igniters_scans_total",
		Help: "QR credential scans by result",
	}, []string{"result"})

	AttendanceMarksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "igniters_attendance_marks_total",
		Help: "Attendance upserts by mutation path",
	}, []string{"source"})

	PassEmailsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "igniters_pass_emails_total",
		Help: "QR pass email deliveries by result",
	}, []string{"result"})
)

// Label values used across services.
const (
	ResultOK         = "ok"
	ResultDuplicate  = "duplicate"
	ResultInvalid    = "invalid"
	ResultWrongEvent = "wrong_event"
	ResultNotFound   = "not_found"
	ResultError      = "error"

	SourceScan   = "scan"
	SourceManual = "manual"
)
