package alarms

import (
	"errors"
	"fmt"
	"io"

	"github.com/yikaimao/ros-alarms/internal/pkg/application/events"

	yaml "gopkg.in/yaml.v2"
)

var ErrNoTopology = errors.New("no meta alarm topology in configuration")

// Config is the static part of the alarm server, loaded once at startup.
// MetaAlarms maps each meta alarm to the member alarms that raise it.
type Config struct {
	MetaAlarms    map[string][]string         `yaml:"metaAlarms"`
	Notifications []events.NotificationConfig `yaml:"notifications"`
	Deadmen       []DeadmanConfig             `yaml:"deadmen,omitempty"`
}

// DeadmanConfig names an alarm that some node is expected to refresh at
// least every Timeout seconds. When it goes stale the watchdog raises it
// with the configured severity.
type DeadmanConfig struct {
	AlarmName string `yaml:"alarmName"`
	Timeout   int    `yaml:"timeoutSeconds"`
	Severity  *int   `yaml:"severity,omitempty"`
}

func (d DeadmanConfig) RaiseSeverity() int {
	if d.Severity != nil {
		return *d.Severity
	}
	return 1
}

func LoadConfiguration(r io.Reader) (*Config, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read configuration: %w", err)
	}

	cfg := &Config{}

	err = yaml.Unmarshal(b, cfg)
	if err != nil {
		return nil, fmt.Errorf("could not unmarshal configuration: %w", err)
	}

	if cfg.MetaAlarms == nil {
		return nil, ErrNoTopology
	}

	return cfg, nil
}
