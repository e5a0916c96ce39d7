package watchdog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/yikaimao/ros-alarms/internal/pkg/application/alarms"
	"github.com/yikaimao/ros-alarms/pkg/types"
)

const defaultCheckInterval = 10 * time.Second

// WatchdogNodeName is the node name that deadman raises are attributed to.
const WatchdogNodeName string = "alarm-watchdog"

// Watchdog periodically checks the deadman alarms from the server
// configuration and raises any that have not been refreshed within their
// timeout. A node that is supposed to report regularly but has gone silent
// will therefore show up as a raised alarm instead of a stale clear.
type Watchdog interface {
	Start(ctx context.Context)
	Stop(ctx context.Context)
}

func New(svc alarms.AlarmService, messenger messaging.MsgContext, deadmen []alarms.DeadmanConfig) Watchdog {
	w := &watchdogImpl{
		done: make(chan bool),
		watcher: &deadmanWatcher{
			alarmService: svc,
			messenger:    messenger,
			deadmen:      deadmen,
			interval:     defaultCheckInterval,
		},
	}

	return w
}

type watchdogImpl struct {
	done    chan bool
	watcher *deadmanWatcher
}

func (w *watchdogImpl) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *watchdogImpl) Stop(ctx context.Context) {
	w.done <- true
}

func (w *watchdogImpl) run(ctx context.Context) {
	logger := logging.GetFromContext(ctx)
	logger.Info("starting alarm watchdog")

	ticker := time.NewTicker(w.watcher.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			logger.Info("alarm watchdog exiting")
			return
		case <-ticker.C:
			w.watcher.checkStaleAlarms(ctx, time.Now().UTC())
		}
	}
}

type deadmanWatcher struct {
	alarmService alarms.AlarmService
	messenger    messaging.MsgContext
	deadmen      []alarms.DeadmanConfig

	interval time.Duration

	mu      sync.Mutex
	running bool
}

func (w *deadmanWatcher) checkStaleAlarms(ctx context.Context, now time.Time) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	log := logging.GetFromContext(ctx)

	snapshot := w.alarmService.Snapshot(ctx)

	byName := map[string]types.Alarm{}
	for _, a := range snapshot.Alarms {
		byName[a.Name] = a
	}

	for _, d := range w.deadmen {
		current, known := byName[d.AlarmName]

		if known && current.Raised {
			continue
		}

		if known && checkLastUpdatedIsAfter(ctx, current.UpdatedAt, now, d.Timeout) {
			continue
		}

		err := w.alarmService.Set(ctx, types.AlarmUpdate{
			Name:               d.AlarmName,
			Raised:             true,
			NodeName:           WatchdogNodeName,
			ActionRequired:     true,
			ProblemDescription: fmt.Sprintf("no update received in %d seconds", d.Timeout),
			Severity:           d.RaiseSeverity(),
		})
		if err != nil {
			log.Error("failed to raise stale alarm", "alarm_name", d.AlarmName, "err", err.Error())
			continue
		}

		err = w.messenger.PublishOnTopic(ctx, &AlarmStale{
			AlarmName:   d.AlarmName,
			LastUpdated: current.UpdatedAt,
			ObservedAt:  now,
		})
		if err != nil {
			log.Error("failed to publish stale alarm notification", "alarm_name", d.AlarmName, "err", err.Error())
		}
	}
}

func checkLastUpdatedIsAfter(ctx context.Context, lastUpdated, now time.Time, timeoutSeconds int) bool {
	return lastUpdated.After(now.Add(-time.Duration(timeoutSeconds) * time.Second))
}
