package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_BusinessCounters(t *testing.T) {
	m := NewWithRegisterer("salon-test", prometheus.NewRegistry())

	m.IncAppointmentsCreated()
	m.IncAppointmentsCreated()
	m.IncBookingRejection("PAST_DATE")
	m.IncNotificationFailures()
	m.IncGoalsCompleted()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AppointmentsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingRejections.WithLabelValues("PAST_DATE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GoalsCompleted))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncAppointmentsCreated()
		m.IncBookingRejection("BUSINESS_HOURS")
		m.IncNotificationFailures()
		m.IncEventPublishFailures()
		m.IncRewardExchanges()
		m.IncGoalsCompleted()
		m.ObserveHTTPRequest("GET", "/api/v1/services", 200, time.Millisecond)
	})
}

func TestMetrics_ObserveHTTPRequest(t *testing.T) {
	m := NewWithRegisterer("salon-test", prometheus.NewRegistry())

	m.ObserveHTTPRequest("POST", "/api/v1/appointments", 201, 30*time.Millisecond)
	m.ObserveHTTPRequest("POST", "/api/v1/appointments", 409, 10*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/appointments", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/appointments", "409")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestDuration))
}
