package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordGatewaySend(t *testing.T) {
	before := testutil.ToFloat64(gatewaySends.WithLabelValues("sent"))
	RecordGatewaySend("sent")
	assert.Equal(t, before+1, testutil.ToFloat64(gatewaySends.WithLabelValues("sent")))
}

func TestPendingTimersAndSessions(t *testing.T) {
	timers := testutil.ToFloat64(pendingTimers)
	AddPendingTimers(3)
	AddPendingTimers(-1)
	assert.Equal(t, timers+2, testutil.ToFloat64(pendingTimers))

	sessions := testutil.ToFloat64(activeSessions)
	RecordSessionStarted()
	RecordSessionEnded()
	assert.Equal(t, sessions, testutil.ToFloat64(activeSessions))
}

func TestRecordTriggerFireAndLeadCreated(t *testing.T) {
	fires := testutil.ToFloat64(triggerFires.WithLabelValues("scheduled"))
	RecordTriggerFire("scheduled")
	assert.Equal(t, fires+1, testutil.ToFloat64(triggerFires.WithLabelValues("scheduled")))

	leads := testutil.ToFloat64(leadsCreated.WithLabelValues("manual"))
	RecordLeadCreated("manual")
	assert.Equal(t, leads+1, testutil.ToFloat64(leadsCreated.WithLabelValues("manual")))
}
