package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestFormTypeLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"contact", "contact"},
		{" Quote ", "quote"},
		{"certification", "certification"},
		{"", FormTypeOther},
		{"partnership", FormTypeOther},
		{"<script>", FormTypeOther},
	}

	for _, tt := range tests {
		if got := FormTypeLabel(tt.in); got != tt.want {
			t.Errorf("FormTypeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRecordSubmissionBoundsSeries(t *testing.T) {
	// seed the series the loop below may touch
	RecordSubmission("other", OutcomeRejected)
	before := testutil.CollectAndCount(submissionsTotal)
	otherBefore := testutil.ToFloat64(submissionsTotal.WithLabelValues(FormTypeOther, OutcomeRejected))

	for i := 0; i < 50; i++ {
		RecordSubmission(fmt.Sprintf("random-%d", i), OutcomeRejected)
	}

	if after := testutil.CollectAndCount(submissionsTotal); after != before {
		t.Errorf("Expected %d series, got %d", before, after)
	}
	if got := testutil.ToFloat64(submissionsTotal.WithLabelValues(FormTypeOther, OutcomeRejected)); got != otherBefore+50 {
		t.Errorf("Expected other counter %v, got %v", otherBefore+50, got)
	}
}
