package workers

import (
	"context"
	"log/slog"

	application "conclave/contexts/governance/council-engine/application"
	"conclave/contexts/governance/council-engine/application/commands"
	"conclave/contexts/governance/council-engine/domain/council"
	"conclave/contexts/governance/council-engine/domain/entities"
	"conclave/contexts/governance/council-engine/ports"
)

// ProposalCloser sweeps open proposals whose voting window has lapsed and
// closes them through the regular command path, so tallying and dissent
// scarring run exactly as for a manual close.
type ProposalCloser struct {
	Commands commands.CouncilUseCase
	Council  *council.Council
	Clock    ports.Clock
	Logger   *slog.Logger
}

func (c ProposalCloser) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(c.Logger)
	now := resolveNow(c.Clock)

	for _, proposalID := range c.Council.ProposalIDs() {
		proposal, ok := c.Council.Proposal(proposalID)
		if !ok || proposal.Status != entities.ProposalStatusOpen {
			continue
		}
		if now.Before(proposal.ClosesAt) {
			continue
		}
		result, err := c.Commands.CloseProposal(ctx, commands.CloseProposalCommand{
			ProposalID: proposalID,
		})
		if err != nil {
			logger.Warn("deadline close skipped",
				"event", "council_deadline_close_skipped",
				"module", "governance/council-engine",
				"layer", "worker",
				"proposal_id", proposalID,
				"error", err.Error(),
			)
			continue
		}
		logger.Info("proposal closed at deadline",
			"event", "council_deadline_closed",
			"module", "governance/council-engine",
			"layer", "worker",
			"proposal_id", proposalID,
			"outcome", string(result.Outcome),
		)
	}
	return nil
}
