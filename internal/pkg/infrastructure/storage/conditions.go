package storage

import (
	"strings"

	"github.com/jackc/pgx/v5"
)

type ConditionFunc func(*Condition) *Condition

type Condition struct {
	AlarmName string
	Raised    *bool

	offset *int
	limit  *int
}

func (c Condition) NamedArgs() pgx.NamedArgs {
	args := pgx.NamedArgs{}

	if c.AlarmName != "" {
		args["alarm_name"] = c.AlarmName
	}
	if c.Raised != nil {
		args["raised"] = *c.Raised
	}
	if c.offset != nil {
		args["offset"] = *c.offset
	}
	if c.limit != nil {
		args["limit"] = *c.limit
	}

	return args
}

func (c Condition) Where() string {
	where := []string{}

	if c.AlarmName != "" {
		where = append(where, "alarm_name = @alarm_name")
	}

	if c.Raised != nil {
		where = append(where, "raised = @raised")
	}

	if len(where) == 0 {
		return "TRUE"
	}

	return strings.Join(where, " AND ")
}

func (c Condition) Offset() int {
	if c.offset != nil {
		return *c.offset
	}
	return 0
}

func (c Condition) Limit() int {
	if c.limit != nil {
		return *c.limit
	}
	return 100
}

func WithAlarmName(alarmName string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.AlarmName = alarmName
		return c
	}
}

func WithRaised(raised bool) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Raised = &raised
		return c
	}
}

func WithOffset(offset int) ConditionFunc {
	return func(c *Condition) *Condition {
		c.offset = &offset
		return c
	}
}

func WithLimit(limit int) ConditionFunc {
	return func(c *Condition) *Condition {
		c.limit = &limit
		return c
	}
}
