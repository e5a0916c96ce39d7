package events

import (
	"context"
	"errors"
	"fmt"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"golang.org/x/sys/unix"

	"github.com/yikaimao/ros-alarms/pkg/types"
)

// NotificationConfig subscribes a set of endpoints to state changes of one
// named alarm. Severity limits delivery to one exact severity, nil means all.
type NotificationConfig struct {
	AlarmName   string             `yaml:"alarmName"`
	Severity    *int               `yaml:"severity,omitempty"`
	Subscribers []SubscriberConfig `yaml:"subscribers"`
}

type SubscriberConfig struct {
	Endpoint string `yaml:"endpoint"`
}

//go:generate moq -rm -out eventsender_mock.go . EventSender
type EventSender interface {
	Send(ctx context.Context, alarm types.Alarm, subscribers []SubscriberConfig) error
}

type eventSender struct{}

func New() EventSender {
	return &eventSender{}
}

func (e *eventSender) Send(ctx context.Context, alarm types.Alarm, subscribers []SubscriberConfig) error {
	if len(subscribers) == 0 {
		return nil
	}

	c, err := cloudevents.NewClientHTTP()
	if err != nil {
		return err
	}

	event := cloudevents.NewEvent()
	event.SetID(fmt.Sprintf("%s:%d", alarm.Name, alarm.UpdatedAt.Unix()))
	event.SetTime(alarm.UpdatedAt)
	event.SetSource("github.com/yikaimao/ros-alarms")
	event.SetType("ros.alarmstatus")

	err = event.SetData(cloudevents.ApplicationJSON, alarm)
	if err != nil {
		return err
	}

	logger := logging.GetFromContext(ctx)

	for _, s := range subscribers {
		ctxWithTarget := cloudevents.ContextWithTarget(ctx, s.Endpoint)

		result := c.Send(ctxWithTarget, event)
		if cloudevents.IsUndelivered(result) || errors.Is(result, unix.ECONNREFUSED) {
			logger.Error("failed to send event", "endpoint", s.Endpoint, "err", result.Error())
			err = fmt.Errorf("%w", result)
		}
	}

	return err
}
