package alarms

import (
	"encoding/json"
	"time"

	"github.com/yikaimao/ros-alarms/pkg/types"
)

type AlarmRaised struct {
	Alarm     types.Alarm `json:"alarm"`
	Timestamp time.Time   `json:"timestamp"`
}

func (a *AlarmRaised) ContentType() string {
	return "application/json"
}
func (a *AlarmRaised) TopicName() string {
	return "alarms.alarmRaised"
}
func (a *AlarmRaised) Body() []byte {
	b, _ := json.Marshal(a)
	return b
}

type AlarmCleared struct {
	Alarm     types.Alarm `json:"alarm"`
	Timestamp time.Time   `json:"timestamp"`
}

func (a *AlarmCleared) ContentType() string {
	return "application/json"
}
func (a *AlarmCleared) TopicName() string {
	return "alarms.alarmCleared"
}
func (a *AlarmCleared) Body() []byte {
	b, _ := json.Marshal(a)
	return b
}

// AlarmsUpdated carries the complete registry state and is published after
// every accepted set, never a delta.
type AlarmsUpdated struct {
	Timestamp time.Time     `json:"timestamp"`
	Alarms    []types.Alarm `json:"alarms"`
}

func (a *AlarmsUpdated) ContentType() string {
	return "application/json"
}
func (a *AlarmsUpdated) TopicName() string {
	return "alarms.updated"
}
func (a *AlarmsUpdated) Body() []byte {
	b, _ := json.Marshal(a)
	return b
}
