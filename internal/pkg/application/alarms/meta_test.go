package alarms

import (
	"errors"
	"testing"

	"github.com/yikaimao/ros-alarms/pkg/types"
)

func TestTopologyMembersAreInsertedAsBlanks(t *testing.T) {
	is, ctx, m := testSetup(t)

	cfg := &Config{MetaAlarms: map[string][]string{
		"navigation-degraded": {"odom-lost", "gps-lost"},
	}}

	svc, err := New(ctx, nil, m, nil, nil, cfg)
	is.NoErr(err)

	snapshot := svc.Snapshot(ctx)
	is.Equal(3, len(snapshot.Alarms))

	for _, a := range snapshot.Alarms {
		is.Equal(false, a.Raised)
		is.Equal(types.BlankSeverity, a.Severity)
	}
}

func TestRaisingAMemberRaisesItsMeta(t *testing.T) {
	is, ctx, m := testSetup(t)

	cfg := &Config{MetaAlarms: map[string][]string{
		"navigation-degraded": {"odom-lost", "gps-lost"},
	}}

	svc, err := New(ctx, nil, m, nil, nil, cfg)
	is.NoErr(err)

	err = svc.Set(ctx, types.AlarmUpdate{
		Name:     "odom-lost",
		Raised:   true,
		NodeName: "localization",
		Severity: 2,
	})
	is.NoErr(err)

	meta := svc.Get(ctx, "navigation-degraded")
	is.Equal(true, meta.Raised)
	is.Equal("localization", meta.NodeName)
	is.Equal(2, meta.Severity)
}

func TestMetaKeepsItsMostSevereReport(t *testing.T) {
	is, ctx, m := testSetup(t)

	cfg := &Config{MetaAlarms: map[string][]string{
		"navigation-degraded": {"odom-lost", "gps-lost"},
	}}

	svc, err := New(ctx, nil, m, nil, nil, cfg)
	is.NoErr(err)

	is.NoErr(svc.Set(ctx, types.AlarmUpdate{Name: "odom-lost", Raised: true, Severity: 3}))
	is.Equal(3, svc.Get(ctx, "navigation-degraded").Severity)

	is.NoErr(svc.Set(ctx, types.AlarmUpdate{Name: "gps-lost", Raised: true, Severity: 1}))
	is.Equal(1, svc.Get(ctx, "navigation-degraded").Severity)

	// a milder report never relaxes the meta severity
	is.NoErr(svc.Set(ctx, types.AlarmUpdate{Name: "odom-lost", Raised: true, Severity: 4}))
	is.Equal(1, svc.Get(ctx, "navigation-degraded").Severity)
}

func TestClearingAMemberDoesNotClearItsMeta(t *testing.T) {
	is, ctx, m := testSetup(t)

	cfg := &Config{MetaAlarms: map[string][]string{
		"navigation-degraded": {"odom-lost"},
	}}

	svc, err := New(ctx, nil, m, nil, nil, cfg)
	is.NoErr(err)

	is.NoErr(svc.Set(ctx, types.AlarmUpdate{Name: "odom-lost", Raised: true, Severity: 2}))
	is.NoErr(svc.Set(ctx, types.AlarmUpdate{Name: "odom-lost", Raised: false, Severity: 2}))

	is.Equal(false, svc.Get(ctx, "odom-lost").Raised)
	is.Equal(true, svc.Get(ctx, "navigation-degraded").Raised)

	// but an explicit clear of the meta itself is honored
	is.NoErr(svc.Set(ctx, types.AlarmUpdate{Name: "navigation-degraded", Raised: false, Severity: 2}))
	is.Equal(false, svc.Get(ctx, "navigation-degraded").Raised)
}

func TestRaisesCascadeThroughLayeredMetas(t *testing.T) {
	is, ctx, m := testSetup(t)

	cfg := &Config{MetaAlarms: map[string][]string{
		"vehicle-unhealthy":   {"navigation-degraded"},
		"navigation-degraded": {"odom-lost"},
	}}

	svc, err := New(ctx, nil, m, nil, nil, cfg)
	is.NoErr(err)

	err = svc.Set(ctx, types.AlarmUpdate{Name: "odom-lost", Raised: true, NodeName: "localization", Severity: 1})
	is.NoErr(err)

	is.Equal(true, svc.Get(ctx, "navigation-degraded").Raised)

	top := svc.Get(ctx, "vehicle-unhealthy")
	is.Equal(true, top.Raised)
	is.Equal(1, top.Severity)
	is.Equal("localization", top.NodeName)
}

func TestCyclicTopologiesAreRejected(t *testing.T) {
	is, ctx, m := testSetup(t)

	cfg := &Config{MetaAlarms: map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": {"a"},
	}}

	_, err := New(ctx, nil, m, nil, nil, cfg)
	is.True(errors.Is(err, ErrCyclicTopology))
}

func TestAnAlarmCanBeItsOwnCycle(t *testing.T) {
	is, ctx, m := testSetup(t)

	cfg := &Config{MetaAlarms: map[string][]string{
		"a": {"a"},
	}}

	_, err := New(ctx, nil, m, nil, nil, cfg)
	is.True(errors.Is(err, ErrCyclicTopology))
}

func TestSharedMembersRaiseAllTheirMetas(t *testing.T) {
	is, ctx, m := testSetup(t)

	cfg := &Config{MetaAlarms: map[string][]string{
		"navigation-degraded": {"odom-lost"},
		"sensors-degraded":    {"odom-lost"},
	}}

	svc, err := New(ctx, nil, m, nil, nil, cfg)
	is.NoErr(err)

	err = svc.Set(ctx, types.AlarmUpdate{Name: "odom-lost", Raised: true, Severity: 2})
	is.NoErr(err)

	is.Equal(true, svc.Get(ctx, "navigation-degraded").Raised)
	is.Equal(true, svc.Get(ctx, "sensors-degraded").Raised)
}
