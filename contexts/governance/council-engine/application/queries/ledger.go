package queries

import (
	"context"
	"strings"

	"conclave/contexts/governance/council-engine/domain/council"
	"conclave/contexts/governance/council-engine/domain/entities"
)

type LedgerUseCase struct {
	Council *council.Council
}

// Events returns the full ledger in append order.
func (uc LedgerUseCase) Events(ctx context.Context) ([]entities.GovernanceEvent, error) {
	return uc.Council.LedgerEvents(), nil
}

// LedgerEntry pairs a ledger event with its global one-based sequence.
type LedgerEntry struct {
	Sequence uint64
	Event    entities.GovernanceEvent
}

// ProposalHistory filters the ledger down to one proposal's entries,
// preserving append order and global sequence numbers.
func (uc LedgerUseCase) ProposalHistory(ctx context.Context, proposalID string) ([]LedgerEntry, error) {
	resolved, err := uc.Council.ResolveProposalID(strings.TrimSpace(proposalID))
	if err != nil {
		return nil, err
	}
	history := make([]LedgerEntry, 0)
	for i, event := range uc.Council.LedgerEvents() {
		if eventProposalID(event) == resolved {
			history = append(history, LedgerEntry{Sequence: uint64(i) + 1, Event: event})
		}
	}
	return history, nil
}

// eventProposalID extracts the proposal scope of a ledger entry; member-only
// entries have none.
func eventProposalID(event entities.GovernanceEvent) string {
	switch typed := event.(type) {
	case entities.ProposalCreated:
		return typed.ProposalID
	case entities.VoteCast:
		return typed.ProposalID
	case entities.ProposalClosed:
		return typed.ProposalID
	case entities.DissentScarred:
		return typed.ProposalID
	case entities.ProposalExecuted:
		return typed.ProposalID
	case entities.MemberAdded:
		return ""
	default:
		return ""
	}
}
