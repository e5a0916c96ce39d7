package watchdog

import (
	"encoding/json"
	"time"
)

type AlarmStale struct {
	AlarmName   string    `json:"alarmName"`
	LastUpdated time.Time `json:"lastUpdated"`
	ObservedAt  time.Time `json:"observedAt"`
}

func (a *AlarmStale) ContentType() string {
	return "application/json"
}
func (a *AlarmStale) TopicName() string {
	return "watchdog.alarmStale"
}
func (a *AlarmStale) Body() []byte {
	b, _ := json.Marshal(a)
	return b
}
