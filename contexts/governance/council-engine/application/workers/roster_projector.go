package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	application "conclave/contexts/governance/council-engine/application"
	"conclave/contexts/governance/council-engine/domain/entities"
	"conclave/contexts/governance/council-engine/ports"
)

const defaultRosterCG = "council-engine-roster-cg"

// RosterProjector maintains the member snapshot read model from exported
// ledger events: MemberAdded seeds a row, VoteCast depletes energy,
// DissentScarred carries the resulting damage.
type RosterProjector struct {
	Subscriber    ports.EventSubscriber
	Snapshots     ports.MemberSnapshotStore
	Clock         ports.Clock
	ConsumerGroup string
	Logger        *slog.Logger
}

// Start subscribes the projector to the member-scoped governance topics.
func (p RosterProjector) Start(ctx context.Context) error {
	logger := application.ResolveLogger(p.Logger)
	group := strings.TrimSpace(p.ConsumerGroup)
	if group == "" {
		group = defaultRosterCG
	}

	topics := map[string]func(context.Context, ports.EventEnvelope) error{
		entities.EventTypeMemberAdded:    p.handleMemberAdded,
		entities.EventTypeVoteCast:       p.handleVoteCast,
		entities.EventTypeDissentScarred: p.handleDissentScarred,
	}
	for topic, handler := range topics {
		if err := p.Subscriber.Subscribe(ctx, topic, group, handler); err != nil {
			logger.Error("roster projector subscribe failed",
				"event", "council_roster_subscribe_failed",
				"module", "governance/council-engine",
				"layer", "worker",
				"topic", topic,
				"consumer_group", group,
				"error", err.Error(),
			)
			return err
		}
	}
	logger.Info("roster projector subscriptions active",
		"event", "council_roster_started",
		"module", "governance/council-engine",
		"layer", "worker",
		"consumer_group", group,
	)
	return nil
}

func (p RosterProjector) handleMemberAdded(ctx context.Context, event ports.EventEnvelope) error {
	var payload entities.MemberAdded
	if err := p.decode(event, &payload); err != nil {
		return err
	}
	return p.Snapshots.UpsertMemberSnapshot(ctx, ports.MemberSnapshot{
		MemberID:  payload.MemberID,
		Name:      payload.Name,
		Energy:    payload.Energy,
		UpdatedAt: resolveNow(p.Clock),
	})
}

func (p RosterProjector) handleVoteCast(ctx context.Context, event ports.EventEnvelope) error {
	var payload entities.VoteCast
	if err := p.decode(event, &payload); err != nil {
		return err
	}
	snapshot, found, err := p.Snapshots.GetMemberSnapshot(ctx, payload.MemberID)
	if err != nil {
		return err
	}
	if !found {
		// MemberAdded not projected yet; the relay replays in order, so the
		// next pass will catch up.
		return nil
	}
	if snapshot.Energy >= payload.EnergyCost {
		snapshot.Energy -= payload.EnergyCost
	} else {
		snapshot.Energy = 0
	}
	snapshot.UpdatedAt = resolveNow(p.Clock)
	return p.Snapshots.UpsertMemberSnapshot(ctx, snapshot)
}

func (p RosterProjector) handleDissentScarred(ctx context.Context, event ports.EventEnvelope) error {
	var payload entities.DissentScarred
	if err := p.decode(event, &payload); err != nil {
		return err
	}
	snapshot, found, err := p.Snapshots.GetMemberSnapshot(ctx, payload.MemberID)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	snapshot.Damage = payload.Damage
	snapshot.UpdatedAt = resolveNow(p.Clock)
	return p.Snapshots.UpsertMemberSnapshot(ctx, snapshot)
}

func (p RosterProjector) decode(event ports.EventEnvelope, target any) error {
	if err := json.Unmarshal(event.Data, target); err != nil {
		application.ResolveLogger(p.Logger).Error("roster projector payload decode failed",
			"event", "council_roster_decode_failed",
			"module", "governance/council-engine",
			"layer", "worker",
			"event_id", event.EventID,
			"event_type", event.EventType,
			"error", err.Error(),
		)
		return err
	}
	return nil
}
