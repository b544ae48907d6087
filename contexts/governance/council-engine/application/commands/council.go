package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "conclave/contexts/governance/council-engine/application"
	"conclave/contexts/governance/council-engine/domain/council"
	"conclave/contexts/governance/council-engine/domain/entities"
)

// AddMemberCommand registers a council seat. MemberID is optional; empty
// means the council generates one.
type AddMemberCommand struct {
	MemberID      string
	Name          string
	InitialEnergy uint64
}

type AddMemberResult struct {
	MemberID string
}

type ProposeCommand struct {
	Title            string
	Risk             entities.RiskTier
	VotingWindowSecs int64
}

type ProposeResult struct {
	ProposalID string
	ClosesAt   time.Time
}

// CastVoteCommand accepts a full proposal id or a unique prefix.
type CastVoteCommand struct {
	ProposalID string
	MemberID   string
	Choice     entities.VoteChoice
}

type CastVoteResult struct {
	Receipt entities.VoteReceipt
}

type CloseProposalCommand struct {
	ProposalID string
}

type CloseProposalResult struct {
	ProposalID string
	Outcome    entities.ProposalOutcome
}

type ExecuteProposalCommand struct {
	ProposalID string
}

type ExecuteProposalResult struct {
	ProposalID string
	Outcome    entities.ProposalOutcome
	Execution  council.ExecutionResult
}

// CouncilUseCase orchestrates the council's mutation surface. The council
// itself enforces every invariant; this layer resolves id prefixes, carries
// the execution hook, and logs outcomes.
type CouncilUseCase struct {
	Council *council.Council
	Hook    council.ExecutionHook
	Logger  *slog.Logger
}

func (uc CouncilUseCase) AddMember(ctx context.Context, cmd AddMemberCommand) (AddMemberResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	memberID, err := uc.Council.RegisterMember(cmd.MemberID, cmd.Name, cmd.InitialEnergy)
	if err != nil {
		logger.Warn("member registration rejected",
			"event", "council_member_add_rejected",
			"module", "governance/council-engine",
			"layer", "application",
			"name", strings.TrimSpace(cmd.Name),
			"error", err.Error(),
		)
		return AddMemberResult{}, err
	}
	logger.Info("member added",
		"event", "council_member_added",
		"module", "governance/council-engine",
		"layer", "application",
		"member_id", memberID,
		"name", strings.TrimSpace(cmd.Name),
		"initial_energy", cmd.InitialEnergy,
	)
	return AddMemberResult{MemberID: memberID}, nil
}

func (uc CouncilUseCase) Propose(ctx context.Context, cmd ProposeCommand) (ProposeResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	window := time.Duration(cmd.VotingWindowSecs) * time.Second
	proposalID, err := uc.Council.Propose(cmd.Title, cmd.Risk, window)
	if err != nil {
		logger.Warn("proposal rejected",
			"event", "council_propose_rejected",
			"module", "governance/council-engine",
			"layer", "application",
			"title", strings.TrimSpace(cmd.Title),
			"risk", string(cmd.Risk),
			"error", err.Error(),
		)
		return ProposeResult{}, err
	}

	closesAt := time.Time{}
	if proposal, ok := uc.Council.Proposal(proposalID); ok {
		closesAt = proposal.ClosesAt
	}
	logger.Info("proposal created",
		"event", "council_proposal_created",
		"module", "governance/council-engine",
		"layer", "application",
		"proposal_id", proposalID,
		"risk", string(cmd.Risk),
		"closes_at", closesAt,
	)
	return ProposeResult{ProposalID: proposalID, ClosesAt: closesAt}, nil
}

func (uc CouncilUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) (CastVoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	proposalID, err := uc.Council.ResolveProposalID(cmd.ProposalID)
	if err != nil {
		return CastVoteResult{}, err
	}
	receipt, err := uc.Council.Vote(proposalID, strings.TrimSpace(cmd.MemberID), cmd.Choice)
	if err != nil {
		logger.Warn("vote rejected",
			"event", "council_vote_rejected",
			"module", "governance/council-engine",
			"layer", "application",
			"proposal_id", proposalID,
			"member_id", strings.TrimSpace(cmd.MemberID),
			"choice", string(cmd.Choice),
			"error", err.Error(),
		)
		return CastVoteResult{}, err
	}
	logger.Info("vote cast",
		"event", "council_vote_cast",
		"module", "governance/council-engine",
		"layer", "application",
		"proposal_id", receipt.ProposalID,
		"member_id", receipt.MemberID,
		"choice", string(receipt.Choice),
		"energy_cost", receipt.EnergyCost,
	)
	return CastVoteResult{Receipt: receipt}, nil
}

func (uc CouncilUseCase) CloseProposal(ctx context.Context, cmd CloseProposalCommand) (CloseProposalResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	proposalID, err := uc.Council.ResolveProposalID(cmd.ProposalID)
	if err != nil {
		return CloseProposalResult{}, err
	}
	outcome, err := uc.Council.Close(proposalID)
	if err != nil {
		logger.Warn("close rejected",
			"event", "council_close_rejected",
			"module", "governance/council-engine",
			"layer", "application",
			"proposal_id", proposalID,
			"error", err.Error(),
		)
		return CloseProposalResult{}, err
	}
	logger.Info("proposal closed",
		"event", "council_proposal_closed",
		"module", "governance/council-engine",
		"layer", "application",
		"proposal_id", proposalID,
		"outcome", string(outcome),
	)
	return CloseProposalResult{ProposalID: proposalID, Outcome: outcome}, nil
}

func (uc CouncilUseCase) ExecuteProposal(ctx context.Context, cmd ExecuteProposalCommand) (ExecuteProposalResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	proposalID, err := uc.Council.ResolveProposalID(cmd.ProposalID)
	if err != nil {
		return ExecuteProposalResult{}, err
	}
	execution, err := uc.Council.Execute(proposalID, uc.Hook)
	if err != nil {
		logger.Warn("execute rejected",
			"event", "council_execute_rejected",
			"module", "governance/council-engine",
			"layer", "application",
			"proposal_id", proposalID,
			"error", err.Error(),
		)
		return ExecuteProposalResult{}, err
	}

	outcome := entities.ProposalOutcome("")
	if proposal, ok := uc.Council.Proposal(proposalID); ok && proposal.Outcome != nil {
		outcome = *proposal.Outcome
	}
	logger.Info("proposal executed",
		"event", "council_proposal_executed",
		"module", "governance/council-engine",
		"layer", "application",
		"proposal_id", proposalID,
		"outcome", string(outcome),
		"hook_success", execution.Success,
		"hook_error", execution.Error,
	)
	return ExecuteProposalResult{
		ProposalID: proposalID,
		Outcome:    outcome,
		Execution:  execution,
	}, nil
}
