package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yikaimao/ros-alarms/pkg/types"
)

// AddAlarmEvent appends one row per accepted set request. The registry itself
// is in memory only, this table is the durable audit trail behind it.
func (s *Storage) AddAlarmEvent(ctx context.Context, alarm types.Alarm) error {
	var parameters []byte
	if len(alarm.Parameters) > 0 {
		var err error
		parameters, err = json.Marshal(alarm.Parameters)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrStoreFailed, err.Error())
		}
	}

	args := pgx.NamedArgs{
		"event_id":            uuid.NewString(),
		"alarm_name":          alarm.Name,
		"raised":              alarm.Raised,
		"node_name":           alarm.NodeName,
		"action_required":     alarm.ActionRequired,
		"problem_description": alarm.ProblemDescription,
		"parameters":          parameters,
		"severity":            alarm.Severity,
		"observed_at":         alarm.UpdatedAt,
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO alarm_events (event_id, alarm_name, raised, node_name, action_required, problem_description, parameters, severity, observed_at)
		VALUES (@event_id, @alarm_name, @raised, @node_name, @action_required, @problem_description, @parameters, @severity, @observed_at);
	`, args)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrStoreFailed, err.Error())
	}

	return nil
}

func (s *Storage) QueryAlarmEvents(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.Alarm], error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	args := condition.NamedArgs()
	where := condition.Where()

	var offsetLimit string

	if condition.offset != nil {
		offsetLimit += fmt.Sprintf("OFFSET %d ", condition.Offset())
	}

	if condition.limit != nil {
		offsetLimit += fmt.Sprintf("LIMIT %d ", condition.Limit())
	}

	query := fmt.Sprintf(`
		SELECT alarm_name, raised, node_name, action_required, problem_description, parameters, severity, observed_at, count(*) OVER () AS count
		FROM alarm_events
		WHERE %s
		ORDER BY observed_at DESC
		%s;
	`, where, offsetLimit)

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return types.Collection[types.Alarm]{}, fmt.Errorf("%w: %s", ErrQueryRow, err.Error())
	}

	var (
		alarmName          string
		raised             bool
		nodeName           string
		actionRequired     bool
		problemDescription *string
		parameters         []byte
		severity           int
		observedAt         time.Time
		count              int64
	)

	events := make([]types.Alarm, 0)

	_, err = pgx.ForEachRow(rows, []any{&alarmName, &raised, &nodeName, &actionRequired, &problemDescription, &parameters, &severity, &observedAt, &count}, func() error {
		event := types.Alarm{
			Name:           alarmName,
			Raised:         raised,
			NodeName:       nodeName,
			ActionRequired: actionRequired,
			Severity:       severity,
			UpdatedAt:      observedAt,
		}

		if problemDescription != nil {
			event.ProblemDescription = *problemDescription
		}

		if len(parameters) > 0 {
			err := json.Unmarshal(parameters, &event.Parameters)
			if err != nil {
				return err
			}
		}

		events = append(events, event)

		return nil
	})
	if err != nil {
		return types.Collection[types.Alarm]{}, err
	}

	return types.Collection[types.Alarm]{
		Data:       events,
		Count:      uint64(len(events)),
		Offset:     uint64(condition.Offset()),
		Limit:      uint64(condition.Limit()),
		TotalCount: uint64(count),
	}, nil
}
