package queries

import (
	"context"

	"conclave/contexts/governance/council-engine/domain/council"
	"conclave/contexts/governance/council-engine/domain/entities"
	domainerrors "conclave/contexts/governance/council-engine/domain/errors"
)

type ProposalsUseCase struct {
	Council *council.Council
}

// List returns every proposal in creation order, votes included.
func (uc ProposalsUseCase) List(ctx context.Context) ([]entities.Proposal, error) {
	ids := uc.Council.ProposalIDs()
	proposals := make([]entities.Proposal, 0, len(ids))
	for _, proposalID := range ids {
		if proposal, ok := uc.Council.Proposal(proposalID); ok {
			proposals = append(proposals, proposal)
		}
	}
	return proposals, nil
}

// Get resolves a full id or unique prefix to the proposal state.
func (uc ProposalsUseCase) Get(ctx context.Context, proposalID string) (entities.Proposal, error) {
	resolved, err := uc.Council.ResolveProposalID(proposalID)
	if err != nil {
		return entities.Proposal{}, err
	}
	proposal, ok := uc.Council.Proposal(resolved)
	if !ok {
		return entities.Proposal{}, domainerrors.ErrUnknownProposal
	}
	return proposal, nil
}
