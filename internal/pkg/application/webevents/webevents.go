package webevents

import (
	"context"
	"encoding/json"

	"log/slog"

	gosse "github.com/alexandrevicenzi/go-sse"
	"github.com/diwise/messaging-golang/pkg/messaging"
)

// WebEvents pushes alarm activity to connected web clients over server
// sent events, so a dashboard can follow the registry without polling.
type WebEvents interface {
	Server() *gosse.Server
	Shutdown()
	Publish(event string, data any) error
}

type webEvents struct {
	s *gosse.Server
}

func New() WebEvents {
	return &webEvents{
		s: gosse.NewServer(&gosse.Options{}),
	}
}

func (we *webEvents) Server() *gosse.Server {
	return we.s
}

func (we *webEvents) Shutdown() {
	we.s.Shutdown()
}

func (we *webEvents) Publish(event string, data any) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}

	message := gosse.NewMessage("", string(b), event)
	we.s.SendMessage("", message)

	return nil
}

// NewTopicForwarder republishes bus messages to the web event stream,
// under an event name matching the topic they arrived on.
func NewTopicForwarder(we WebEvents) messaging.TopicMessageHandler {
	return func(ctx context.Context, itm messaging.IncomingTopicMessage, log *slog.Logger) {
		err := we.Publish(itm.TopicName(), json.RawMessage(itm.Body()))
		if err != nil {
			log.Error("failed to forward message to web clients", "topic", itm.TopicName(), "err", err.Error())
		}
	}
}
