package workers

import (
	"encoding/json"
	"time"

	"conclave/contexts/governance/council-engine/domain/entities"
	"conclave/contexts/governance/council-engine/ports"
)

// newGovernanceEnvelope builds the canonical envelope for one exported
// ledger event. Proposal-scoped events partition by proposal id so consumers
// see a proposal's history in order; MemberAdded partitions by member id.
func newGovernanceEnvelope(eventID string, event entities.GovernanceEvent) (ports.EventEnvelope, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	partitionKey, partitionKeyPath := partitionFor(event)
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        event.EventType(),
		OccurredAt:       event.OccurredAt().UTC(),
		SourceService:    "council-engine",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: partitionKeyPath,
		PartitionKey:     partitionKey,
		Data:             payload,
	}, nil
}

func partitionFor(event entities.GovernanceEvent) (key string, path string) {
	switch typed := event.(type) {
	case entities.MemberAdded:
		return typed.MemberID, "member_id"
	case entities.ProposalCreated:
		return typed.ProposalID, "proposal_id"
	case entities.VoteCast:
		return typed.ProposalID, "proposal_id"
	case entities.ProposalClosed:
		return typed.ProposalID, "proposal_id"
	case entities.DissentScarred:
		return typed.ProposalID, "proposal_id"
	case entities.ProposalExecuted:
		return typed.ProposalID, "proposal_id"
	default:
		return "", ""
	}
}

// eventScope extracts the archive index columns for one ledger entry.
func eventScope(event entities.GovernanceEvent) (proposalID string, memberID string) {
	switch typed := event.(type) {
	case entities.MemberAdded:
		return "", typed.MemberID
	case entities.ProposalCreated:
		return typed.ProposalID, ""
	case entities.VoteCast:
		return typed.ProposalID, typed.MemberID
	case entities.ProposalClosed:
		return typed.ProposalID, ""
	case entities.DissentScarred:
		return typed.ProposalID, typed.MemberID
	case entities.ProposalExecuted:
		return typed.ProposalID, ""
	default:
		return "", ""
	}
}

func resolveNow(clock ports.Clock) time.Time {
	if clock != nil {
		return clock.Now().UTC()
	}
	return time.Now().UTC()
}
