package workers

import (
	"context"
	"log/slog"
	"math/rand"

	application "conclave/contexts/governance/council-engine/application"
	"conclave/contexts/governance/council-engine/application/commands"
	"conclave/contexts/governance/council-engine/domain/council"
	"conclave/contexts/governance/council-engine/domain/entities"
)

var simulatedChoices = []entities.VoteChoice{
	entities.VoteChoiceFor,
	entities.VoteChoiceAgainst,
	entities.VoteChoiceAbstain,
}

// Simulator stands in for absent voters: each cycle it walks the open
// proposals and casts random votes for members that have not voted yet. It
// goes through the same command path as any other caller, so the council
// cannot tell it apart from a human.
type Simulator struct {
	Commands      commands.CouncilUseCase
	Council       *council.Council
	Rand          *rand.Rand
	Participation float64
	Logger        *slog.Logger
}

// RunOnce casts at most one vote per (open proposal, silent member) pair.
// Vote rejections (depleted energy, a window that closed mid-cycle) are
// logged and skipped, never fatal to the cycle.
func (s Simulator) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(s.Logger)
	participation := s.Participation
	if participation <= 0 || participation > 1 {
		participation = 0.5
	}

	cast := 0
	for _, proposalID := range s.Council.ProposalIDs() {
		proposal, ok := s.Council.Proposal(proposalID)
		if !ok || proposal.Status != entities.ProposalStatusOpen {
			continue
		}
		for _, memberID := range s.Council.MemberIDs() {
			if proposal.HasVoteFrom(memberID) {
				continue
			}
			if s.Rand.Float64() > participation {
				continue
			}
			choice := simulatedChoices[s.Rand.Intn(len(simulatedChoices))]
			if _, err := s.Commands.CastVote(ctx, commands.CastVoteCommand{
				ProposalID: proposalID,
				MemberID:   memberID,
				Choice:     choice,
			}); err != nil {
				logger.Debug("simulated vote skipped",
					"event", "council_simulator_vote_skipped",
					"module", "governance/council-engine",
					"layer", "worker",
					"proposal_id", proposalID,
					"member_id", memberID,
					"error", err.Error(),
				)
				continue
			}
			cast++
		}
	}

	if cast > 0 {
		logger.Info("simulator cycle completed",
			"event", "council_simulator_completed",
			"module", "governance/council-engine",
			"layer", "worker",
			"votes_cast", cast,
		)
	}
	return nil
}
