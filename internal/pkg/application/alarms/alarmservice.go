package alarms

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/yikaimao/ros-alarms/internal/pkg/application/events"
	"github.com/yikaimao/ros-alarms/internal/pkg/infrastructure/storage"
	"github.com/yikaimao/ros-alarms/pkg/types"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/samber/lo"
)

//go:generate moq -rm -out alarmservice_mock.go . AlarmService
type AlarmService interface {
	Get(ctx context.Context, alarmName string) types.Alarm
	Set(ctx context.Context, update types.AlarmUpdate) error
	Snapshot(ctx context.Context) types.AlarmSnapshot
	History(ctx context.Context, alarmName string, offset, limit int) (types.Collection[types.Alarm], error)
}

//go:generate moq -rm -out eventstore_mock.go . EventStore
type EventStore interface {
	AddAlarmEvent(ctx context.Context, alarm types.Alarm) error
	QueryAlarmEvents(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.Alarm], error)
}

//go:generate moq -rm -out broadcaster_mock.go . Broadcaster
type Broadcaster interface {
	PublishRetained(ctx context.Context, snapshot types.AlarmSnapshot) error
}

var ErrNoEventStore = errors.New("no alarm event store configured")

// alarmSvc owns every alarm for the lifetime of the process. Alarms are never
// deleted. A single coarse lock is held for the whole duration of an external
// Set, including every meta alarm update it cascades into, so concurrent
// callers can never observe a partially applied update.
type alarmSvc struct {
	mu     sync.RWMutex
	alarms map[string]*alarm
	order  []string

	store       EventStore
	messenger   messaging.MsgContext
	broadcaster Broadcaster
	sender      events.EventSender

	notifications []events.NotificationConfig
}

func New(ctx context.Context, store EventStore, messenger messaging.MsgContext, broadcaster Broadcaster, sender events.EventSender, cfg *Config) (AlarmService, error) {
	svc := &alarmSvc{
		alarms:        map[string]*alarm{},
		store:         store,
		messenger:     messenger,
		broadcaster:   broadcaster,
		sender:        sender,
		notifications: cfg.Notifications,
	}

	err := svc.bindMetaAlarms(ctx, cfg.MetaAlarms)
	if err != nil {
		return nil, err
	}

	err = svc.messenger.RegisterTopicMessageHandler("alarms.set", NewAlarmSetHandler(svc))
	if err != nil {
		return nil, err
	}

	return svc, nil
}

func (svc *alarmSvc) Get(ctx context.Context, alarmName string) types.Alarm {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	if a, ok := svc.alarms[alarmName]; ok {
		return a.snapshot()
	}

	// reads have no side effect, the blank is not inserted
	return newBlankAlarm(alarmName).snapshot()
}

func (svc *alarmSvc) Set(ctx context.Context, update types.AlarmUpdate) error {
	if update.Name == "" {
		return fmt.Errorf("no alarm name is set on update")
	}

	log := logging.GetFromContext(ctx)

	svc.mu.Lock()
	defer svc.mu.Unlock()

	if existing, ok := svc.alarms[update.Name]; ok {
		log.Info("updating alarm", "alarm_name", update.Name, "raised", update.Raised)

		err := existing.update(log, update)
		if err != nil {
			return err
		}
	} else {
		log.Info("adding alarm", "alarm_name", update.Name, "raised", update.Raised)

		a, err := newAlarmFromUpdate(update)
		if err != nil {
			return err
		}

		svc.insertLocked(ctx, a)
	}

	svc.recordAndPublishLocked(ctx, update.Name)

	return nil
}

func (svc *alarmSvc) Snapshot(ctx context.Context) types.AlarmSnapshot {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	return svc.snapshotLocked()
}

func (svc *alarmSvc) History(ctx context.Context, alarmName string, offset, limit int) (types.Collection[types.Alarm], error) {
	if svc.store == nil {
		return types.Collection[types.Alarm]{}, ErrNoEventStore
	}

	return svc.store.QueryAlarmEvents(ctx,
		storage.WithAlarmName(alarmName), storage.WithOffset(offset), storage.WithLimit(limit),
	)
}

// insertLocked adds a new alarm to the registry and hooks up any configured
// external subscribers. Immediate fire semantics in addCallback make sure a
// subscriber to an alarm that is born raised hears about it right away.
func (svc *alarmSvc) insertLocked(ctx context.Context, a *alarm) {
	svc.alarms[a.name] = a
	svc.order = append(svc.order, a.name)

	if svc.sender == nil {
		return
	}

	log := logging.GetFromContext(ctx)
	notifyCtx := context.WithoutCancel(ctx)

	for _, n := range svc.notifications {
		if n.AlarmName != a.name {
			continue
		}

		filter := SeverityAny
		if n.Severity != nil {
			filter = SeverityFilter(*n.Severity)
		}

		subscribers := n.Subscribers

		a.addCallback(log, func(state types.Alarm) {
			err := svc.sender.Send(notifyCtx, state, subscribers)
			if err != nil {
				log.Error("failed to notify subscribers", "alarm_name", state.Name, "err", err.Error())
			}
		}, true, true, filter)
	}
}

// recordAndPublishLocked persists the accepted update and broadcasts the full
// registry state. Neither persistence nor publishing can fail the request,
// the registry itself is already consistent at this point.
func (svc *alarmSvc) recordAndPublishLocked(ctx context.Context, alarmName string) {
	log := logging.GetFromContext(ctx)

	target := svc.alarms[alarmName].snapshot()

	if svc.store != nil {
		err := svc.store.AddAlarmEvent(ctx, target)
		if err != nil {
			log.Error("failed to store alarm event", "alarm_name", alarmName, "err", err.Error())
		}
	}

	var transition messaging.TopicMessage
	if target.Raised {
		transition = &AlarmRaised{Alarm: target, Timestamp: target.UpdatedAt}
	} else {
		transition = &AlarmCleared{Alarm: target, Timestamp: target.UpdatedAt}
	}

	err := svc.messenger.PublishOnTopic(ctx, transition)
	if err != nil {
		log.Error("failed to publish alarm transition", "alarm_name", alarmName, "err", err.Error())
	}

	snapshot := svc.snapshotLocked()

	err = svc.messenger.PublishOnTopic(ctx, &AlarmsUpdated{Timestamp: snapshot.Timestamp, Alarms: snapshot.Alarms})
	if err != nil {
		log.Error("failed to publish alarms snapshot", "err", err.Error())
	}

	if svc.broadcaster != nil {
		err = svc.broadcaster.PublishRetained(ctx, snapshot)
		if err != nil {
			log.Error("failed to publish retained snapshot", "err", err.Error())
		}
	}
}

func (svc *alarmSvc) snapshotLocked() types.AlarmSnapshot {
	return types.AlarmSnapshot{
		Timestamp: time.Now().UTC(),
		Alarms: lo.Map(svc.order, func(name string, _ int) types.Alarm {
			return svc.alarms[name].snapshot()
		}),
	}
}
