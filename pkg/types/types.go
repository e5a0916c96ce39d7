package types

import (
	"encoding/json"
	"time"
)

// DefaultNodeName is used when an update does not say which node reported it.
const DefaultNodeName string = "unknown"

// BlankSeverity is the severity assigned to alarms that are synthesized
// before anyone has reported them. Lower values are more severe.
const BlankSeverity int = 5

type Alarm struct {
	Name               string         `json:"alarmName"`
	Raised             bool           `json:"raised"`
	NodeName           string         `json:"nodeName"`
	ActionRequired     bool           `json:"actionRequired"`
	ProblemDescription string         `json:"problemDescription,omitempty"`
	Parameters         map[string]any `json:"parameters,omitempty"`
	Severity           int            `json:"severity"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

// AlarmUpdate is an inbound request to raise or clear a single alarm.
// Parameters carries an optional serialized json object with free-form
// diagnostic data.
type AlarmUpdate struct {
	Name               string          `json:"alarmName"`
	Raised             bool            `json:"raised"`
	NodeName           string          `json:"nodeName,omitempty"`
	ActionRequired     bool            `json:"actionRequired,omitempty"`
	ProblemDescription string          `json:"problemDescription,omitempty"`
	Parameters         json.RawMessage `json:"parameters,omitempty"`
	Severity           int             `json:"severity"`
}

type AlarmSnapshot struct {
	Timestamp time.Time `json:"timestamp"`
	Alarms    []Alarm   `json:"alarms"`
}

type Collection[T any] struct {
	Data       []T
	Count      uint64
	Offset     uint64
	Limit      uint64
	TotalCount uint64
}
