package alarms

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/yikaimao/ros-alarms/pkg/types"
)

var ErrParameterDecode = errors.New("alarm parameters are not a valid json object")

// SeverityFilter selects which severities a callback should fire for.
// SeverityAny matches everything, any other value matches exactly.
type SeverityFilter int

const SeverityAny SeverityFilter = -1

func (f SeverityFilter) matches(severity int) bool {
	return f == SeverityAny || int(f) == severity
}

// AlarmCallback receives a consistent snapshot of the alarm that triggered it.
// Callbacks never get access to the registry owned alarm itself.
type AlarmCallback func(alarm types.Alarm)

type subscription struct {
	filter   SeverityFilter
	callback AlarmCallback
}

// alarm is a single named fault condition. Instances are owned by the alarm
// service and must only be touched while its lock is held.
type alarm struct {
	name               string
	raised             bool
	nodeName           string
	actionRequired     bool
	problemDescription string
	parameters         map[string]any
	severity           int
	updatedAt          time.Time

	raisedSubscribers  []subscription
	clearedSubscribers []subscription
}

func newBlankAlarm(name string) *alarm {
	return &alarm{
		name:       name,
		raised:     false,
		nodeName:   types.DefaultNodeName,
		parameters: map[string]any{},
		severity:   types.BlankSeverity,
		updatedAt:  time.Now().UTC(),
	}
}

func newAlarmFromUpdate(update types.AlarmUpdate) (*alarm, error) {
	parameters, err := decodeParameters(update.Parameters)
	if err != nil {
		return nil, err
	}

	nodeName := update.NodeName
	if nodeName == "" {
		nodeName = types.DefaultNodeName
	}

	return &alarm{
		name:               update.Name,
		raised:             update.Raised,
		nodeName:           nodeName,
		actionRequired:     update.ActionRequired,
		problemDescription: update.ProblemDescription,
		parameters:         parameters,
		severity:           update.Severity,
		updatedAt:          time.Now().UTC(),
	}, nil
}

func decodeParameters(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 {
		return map[string]any{}, nil
	}

	parameters := map[string]any{}

	err := json.Unmarshal(raw, &parameters)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrParameterDecode, err.Error())
	}

	return parameters, nil
}

// addCallback registers fn on the raised and/or cleared list. If the alarm is
// already in a state that the list triggers on, and the severity filter
// matches, fn is invoked once right away so that late subscribers do not miss
// the current state.
func (a *alarm) addCallback(log *slog.Logger, fn AlarmCallback, onRaise, onClear bool, filter SeverityFilter) {
	if onRaise {
		a.raisedSubscribers = append(a.raisedSubscribers, subscription{filter: filter, callback: fn})
		if a.raised && filter.matches(a.severity) {
			a.invoke(log, fn, a.snapshot())
		}
	}

	if onClear {
		a.clearedSubscribers = append(a.clearedSubscribers, subscription{filter: filter, callback: fn})
		if !a.raised && filter.matches(a.severity) {
			a.invoke(log, fn, a.snapshot())
		}
	}
}

// update overwrites every mutable field from the incoming request and then
// dispatches the subscriber list that matches the new state. Fields that the
// caller left out are reset to their defaults, not preserved. Dispatch is not
// edge triggered: setting the same state twice fires the callbacks twice.
func (a *alarm) update(log *slog.Logger, update types.AlarmUpdate) error {
	parameters, err := decodeParameters(update.Parameters)
	if err != nil {
		return err
	}

	nodeName := update.NodeName
	if nodeName == "" {
		nodeName = types.DefaultNodeName
	}

	a.raised = update.Raised
	a.nodeName = nodeName
	a.actionRequired = update.ActionRequired
	a.problemDescription = update.ProblemDescription
	a.parameters = parameters
	a.severity = update.Severity
	a.updatedAt = time.Now().UTC()

	subscribers := a.clearedSubscribers
	if a.raised {
		subscribers = a.raisedSubscribers
	}

	state := a.snapshot()

	for _, s := range subscribers {
		if !s.filter.matches(a.severity) {
			continue
		}

		a.invoke(log, s.callback, state)
	}

	return nil
}

// invoke runs a single callback and absorbs any panic so that one bad
// subscriber cannot take down the dispatch pass or the enclosing request.
func (a *alarm) invoke(log *slog.Logger, fn AlarmCallback, state types.Alarm) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("a callback for this alarm panicked", "alarm_name", a.name, "recovered", fmt.Sprintf("%v", r))
		}
	}()

	fn(state)
}

func (a *alarm) snapshot() types.Alarm {
	parameters := make(map[string]any, len(a.parameters))
	for k, v := range a.parameters {
		parameters[k] = v
	}

	return types.Alarm{
		Name:               a.name,
		Raised:             a.raised,
		NodeName:           a.nodeName,
		ActionRequired:     a.actionRequired,
		ProblemDescription: a.problemDescription,
		Parameters:         parameters,
		Severity:           a.severity,
		UpdatedAt:          a.updatedAt,
	}
}

// asUpdate turns the current state back into an update request, used when a
// member alarm needs to derive a new request for its meta alarm.
func (a *alarm) asUpdate() types.AlarmUpdate {
	var parameters json.RawMessage
	if len(a.parameters) > 0 {
		parameters, _ = json.Marshal(a.parameters)
	}

	return types.AlarmUpdate{
		Name:               a.name,
		Raised:             a.raised,
		NodeName:           a.nodeName,
		ActionRequired:     a.actionRequired,
		ProblemDescription: a.problemDescription,
		Parameters:         parameters,
		Severity:           a.severity,
	}
}
