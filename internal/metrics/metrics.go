package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes
const (
	OutcomeComplete = "complete"
	OutcomeDegraded = "degraded"
	OutcomeFailed   = "failed"
	OutcomeRejected = "rejected"
)

var (
	submissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leaddesk_submissions_total",
			Help: "Total number of form submissions by kind and outcome",
		},
		[]string{"form_type", "outcome"},
	)

	emailsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leaddesk_emails_total",
			Help: "Total number of outbound emails by role and status",
		},
		[]string{"role", "status"},
	)

	persistenceFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leaddesk_persistence_failures_total",
			Help: "Total number of failed submission writes by classified reason",
		},
		[]string{"reason"},
	)

	adminLoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leaddesk_admin_logins_total",
			Help: "Total number of admin login attempts",
		},
		[]string{"status"},
	)
)

// FormTypeOther labels every form kind the site does not define
const FormTypeOther = "other"

// knownFormTypes bounds the form_type label; kinds come from anonymous requests
var knownFormTypes = map[string]bool{
	"contact":       true,
	"quote":         true,
	"certification": true,
}

// FormTypeLabel maps a client supplied form kind onto the fixed label set
func FormTypeLabel(formType string) string {
	formType = strings.ToLower(strings.TrimSpace(formType))
	if knownFormTypes[formType] {
		return formType
	}
	return FormTypeOther
}

// RecordSubmission records the final outcome of one ingestion request
func RecordSubmission(formType, outcome string) {
	submissionsTotal.WithLabelValues(FormTypeLabel(formType), outcome).Inc()
}

// RecordEmail records one send attempt; role is admin, customer or alert
func RecordEmail(role string, success bool) {
	emailsTotal.WithLabelValues(role, status(success)).Inc()
}

// RecordPersistenceFailure records a classified database write failure
func RecordPersistenceFailure(reason string) {
	persistenceFailuresTotal.WithLabelValues(reason).Inc()
}

// RecordAdminLogin records a login attempt
func RecordAdminLogin(success bool) {
	adminLoginsTotal.WithLabelValues(status(success)).Inc()
}

func status(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
