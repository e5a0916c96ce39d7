package alarms

import (
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestLoadConfiguration(t *testing.T) {
	is := is.New(t)

	cfg, err := LoadConfiguration(strings.NewReader(configYaml))
	is.NoErr(err)

	is.Equal([]string{"odom-lost", "gps-lost"}, cfg.MetaAlarms["navigation-degraded"])

	is.Equal(1, len(cfg.Notifications))
	is.Equal("battery-critical", cfg.Notifications[0].AlarmName)
	is.Equal(0, *cfg.Notifications[0].Severity)
	is.Equal("http://diagnostics:8080/api/alarms", cfg.Notifications[0].Subscribers[0].Endpoint)

	is.Equal(1, len(cfg.Deadmen))
	is.Equal("heartbeat-lost", cfg.Deadmen[0].AlarmName)
	is.Equal(15, cfg.Deadmen[0].Timeout)
	is.Equal(0, cfg.Deadmen[0].RaiseSeverity())
}

func TestLoadConfigurationRequiresATopology(t *testing.T) {
	is := is.New(t)

	_, err := LoadConfiguration(strings.NewReader("notifications: []\n"))
	is.True(errors.Is(err, ErrNoTopology))
}

func TestDeadmanSeverityDefaults(t *testing.T) {
	is := is.New(t)

	d := DeadmanConfig{AlarmName: "heartbeat-lost", Timeout: 15}
	is.Equal(1, d.RaiseSeverity())
}

const configYaml string = `
metaAlarms:
  navigation-degraded:
    - odom-lost
    - gps-lost
  vehicle-unhealthy:
    - navigation-degraded
    - battery-critical
notifications:
  - alarmName: battery-critical
    severity: 0
    subscribers:
      - endpoint: http://diagnostics:8080/api/alarms
deadmen:
  - alarmName: heartbeat-lost
    timeoutSeconds: 15
    severity: 0
`
