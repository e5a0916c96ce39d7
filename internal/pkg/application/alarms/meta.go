package alarms

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/yikaimao/ros-alarms/pkg/types"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

var ErrCyclicTopology = errors.New("meta alarm topology contains a cycle")

// bindMetaAlarms wires raise propagation between member alarms and their meta
// alarms. It runs once, before the service accepts any requests. Every meta
// and member named by the topology is present in the registry afterwards, so
// later updates always find their aggregation targets.
func (svc *alarmSvc) bindMetaAlarms(ctx context.Context, topology map[string][]string) error {
	err := validateTopology(topology)
	if err != nil {
		return err
	}

	log := logging.GetFromContext(ctx)

	svc.mu.Lock()
	defer svc.mu.Unlock()

	metas := make([]string, 0, len(topology))
	for meta := range topology {
		metas = append(metas, meta)
	}
	sort.Strings(metas)

	for _, meta := range metas {
		if _, ok := svc.alarms[meta]; !ok {
			svc.insertLocked(ctx, newBlankAlarm(meta))
		}

		for _, member := range topology[meta] {
			if _, ok := svc.alarms[member]; !ok {
				svc.insertLocked(ctx, newBlankAlarm(member))
			}

			// each callback carries its own meta name, nothing is
			// captured from the loop variables themselves
			svc.alarms[member].addCallback(log, svc.raiseMeta(ctx, meta), true, false, SeverityAny)
		}
	}

	return nil
}

// raiseMeta returns the callback that a member alarm invokes to raise the
// named meta alarm. The derived request keeps the meta's current fields,
// takes the reporting node from the member, and keeps whichever severity is
// numerically smaller. Clearing never propagates, a meta alarm has to be
// cleared explicitly.
func (svc *alarmSvc) raiseMeta(ctx context.Context, metaName string) AlarmCallback {
	log := logging.GetFromContext(ctx)

	return func(member types.Alarm) {
		meta, ok := svc.alarms[metaName]
		if !ok {
			return
		}

		derived := meta.asUpdate()
		derived.NodeName = member.NodeName
		if member.Severity < derived.Severity {
			derived.Severity = member.Severity
		}
		derived.Raised = true

		// runs inside the lock already held by the outer Set, so a meta
		// that is itself a member cascades through this same path
		err := meta.update(log, derived)
		if err != nil {
			log.Error("failed to raise meta alarm", "alarm_name", metaName, "err", err.Error())
		}
	}
}

func validateTopology(topology map[string][]string) error {
	const (
		unvisited = iota
		visiting
		done
	)

	state := map[string]int{}

	var visit func(name string, trail []string) error
	visit = func(name string, trail []string) error {
		switch state[name] {
		case visiting:
			return fmt.Errorf("%w: %v", ErrCyclicTopology, append(trail, name))
		case done:
			return nil
		}

		state[name] = visiting

		for _, member := range topology[name] {
			err := visit(member, append(trail, name))
			if err != nil {
				return err
			}
		}

		state[name] = done

		return nil
	}

	for meta := range topology {
		err := visit(meta, nil)
		if err != nil {
			return err
		}
	}

	return nil
}
