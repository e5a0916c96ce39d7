package broadcast

import (
	"context"
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/yikaimao/ros-alarms/pkg/types"
)

type Config struct {
	Broker   string
	ClientID string
	Topic    string
	Username string
	Password string
}

// Publisher pushes the full alarm snapshot to an mqtt topic with the retained
// flag set, so a consumer that connects later immediately receives the latest
// published state.
type Publisher struct {
	client mqtt.Client
	topic  string
}

func New(cfg Config) (*Publisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)

	client := mqtt.NewClient(opts)

	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to mqtt broker: %w", token.Error())
	}

	return &Publisher{
		client: client,
		topic:  cfg.Topic,
	}, nil
}

func (p *Publisher) PublishRetained(ctx context.Context, snapshot types.AlarmSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	token := p.client.Publish(p.topic, 1, true, payload)
	token.Wait()

	if token.Error() != nil {
		return fmt.Errorf("failed to publish to topic %s: %w", p.topic, token.Error())
	}

	return nil
}

func (p *Publisher) Disconnect() {
	p.client.Disconnect(250)
}
