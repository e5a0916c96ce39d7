package watchdog

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/matryer/is"
	"github.com/yikaimao/ros-alarms/internal/pkg/application/alarms"
	"github.com/yikaimao/ros-alarms/pkg/types"
)

func TestStaleAlarmIsRaised(t *testing.T) {
	is, ctx := testSetup(t)

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	svc := &alarms.AlarmServiceMock{
		SnapshotFunc: func(ctx context.Context) types.AlarmSnapshot {
			return types.AlarmSnapshot{
				Timestamp: now,
				Alarms: []types.Alarm{
					{Name: "heartbeat-lost", Raised: false, UpdatedAt: now.Add(-time.Minute)},
				},
			}
		},
		SetFunc: func(ctx context.Context, update types.AlarmUpdate) error {
			return nil
		},
	}

	published := []string{}

	m := &messaging.MsgContextMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			var stale AlarmStale
			json.Unmarshal(message.Body(), &stale)
			published = append(published, stale.AlarmName)
			return nil
		},
	}

	w := deadmanWatcher{
		alarmService: svc,
		messenger:    m,
		deadmen:      []alarms.DeadmanConfig{{AlarmName: "heartbeat-lost", Timeout: 15}},
		interval:     defaultCheckInterval,
		running:      false,
	}

	w.checkStaleAlarms(ctx, now)

	is.Equal(1, len(svc.SetCalls()))

	raised := svc.SetCalls()[0].Update
	is.Equal("heartbeat-lost", raised.Name)
	is.Equal(true, raised.Raised)
	is.Equal(WatchdogNodeName, raised.NodeName)
	is.Equal(1, raised.Severity)

	is.Equal([]string{"heartbeat-lost"}, published)
}

func TestFreshAlarmIsLeftAlone(t *testing.T) {
	is, ctx := testSetup(t)

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	svc := &alarms.AlarmServiceMock{
		SnapshotFunc: func(ctx context.Context) types.AlarmSnapshot {
			return types.AlarmSnapshot{
				Timestamp: now,
				Alarms: []types.Alarm{
					{Name: "heartbeat-lost", Raised: false, UpdatedAt: now.Add(-5 * time.Second)},
				},
			}
		},
	}

	w := deadmanWatcher{
		alarmService: svc,
		messenger:    &messaging.MsgContextMock{},
		deadmen:      []alarms.DeadmanConfig{{AlarmName: "heartbeat-lost", Timeout: 15}},
		interval:     defaultCheckInterval,
	}

	w.checkStaleAlarms(ctx, now)

	is.Equal(0, len(svc.SetCalls()))
}

func TestAlreadyRaisedAlarmIsNotRaisedAgain(t *testing.T) {
	is, ctx := testSetup(t)

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	svc := &alarms.AlarmServiceMock{
		SnapshotFunc: func(ctx context.Context) types.AlarmSnapshot {
			return types.AlarmSnapshot{
				Timestamp: now,
				Alarms: []types.Alarm{
					{Name: "heartbeat-lost", Raised: true, UpdatedAt: now.Add(-time.Hour)},
				},
			}
		},
	}

	w := deadmanWatcher{
		alarmService: svc,
		messenger:    &messaging.MsgContextMock{},
		deadmen:      []alarms.DeadmanConfig{{AlarmName: "heartbeat-lost", Timeout: 15}},
		interval:     defaultCheckInterval,
	}

	w.checkStaleAlarms(ctx, now)

	is.Equal(0, len(svc.SetCalls()))
}

func TestAlarmThatWasNeverReportedIsRaised(t *testing.T) {
	is, ctx := testSetup(t)

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	svc := &alarms.AlarmServiceMock{
		SnapshotFunc: func(ctx context.Context) types.AlarmSnapshot {
			return types.AlarmSnapshot{Timestamp: now}
		},
		SetFunc: func(ctx context.Context, update types.AlarmUpdate) error {
			return nil
		},
	}

	m := &messaging.MsgContextMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			return nil
		},
	}

	severity := 0

	w := deadmanWatcher{
		alarmService: svc,
		messenger:    m,
		deadmen:      []alarms.DeadmanConfig{{AlarmName: "heartbeat-lost", Timeout: 15, Severity: &severity}},
		interval:     defaultCheckInterval,
	}

	w.checkStaleAlarms(ctx, now)

	is.Equal(1, len(svc.SetCalls()))
	is.Equal(0, svc.SetCalls()[0].Update.Severity)
}

func TestCheckLastUpdatedIsAfter(t *testing.T) {
	is, ctx := testSetup(t)

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	is.True(checkLastUpdatedIsAfter(ctx, now.Add(-5*time.Second), now, 10))
	is.True(!checkLastUpdatedIsAfter(ctx, now.Add(-15*time.Second), now, 10))
}

func testSetup(t *testing.T) (*is.I, context.Context) {
	return is.New(t), context.Background()
}
