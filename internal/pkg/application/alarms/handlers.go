package alarms

import (
	"context"
	"encoding/json"

	"log/slog"

	"go.opentelemetry.io/otel"

	"github.com/yikaimao/ros-alarms/pkg/types"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
)

var tracer = otel.Tracer("ros-alarms/alarms")

// NewAlarmSetHandler lets other services raise or clear alarms over the
// message bus, using the same update path as the http api.
func NewAlarmSetHandler(svc AlarmService) messaging.TopicMessageHandler {
	return func(ctx context.Context, itm messaging.IncomingTopicMessage, l *slog.Logger) {
		var err error

		ctx, span := tracer.Start(ctx, "set-alarm")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, l, ctx)

		update := types.AlarmUpdate{}

		err = json.Unmarshal(itm.Body(), &update)
		if err != nil {
			log.Error("failed to unmarshal message", "err", err.Error())
			return
		}

		err = svc.Set(ctx, update)
		if err != nil {
			log.Error("could not set alarm", "alarm_name", update.Name, "err", err.Error())
			return
		}
	}
}
