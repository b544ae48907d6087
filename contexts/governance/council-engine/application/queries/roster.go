package queries

import (
	"context"

	"conclave/contexts/governance/council-engine/domain/council"
	"conclave/contexts/governance/council-engine/domain/entities"
)

type RosterUseCase struct {
	Council *council.Council
}

// Roster returns every member's standing in registration order.
func (uc RosterUseCase) Roster(ctx context.Context) ([]entities.MemberStanding, error) {
	return uc.Council.MemberStandings(), nil
}

// LastOutcome reports the most recently fixed proposal outcome.
func (uc RosterUseCase) LastOutcome(ctx context.Context) (entities.ProposalOutcome, bool) {
	return uc.Council.LastOutcome()
}
