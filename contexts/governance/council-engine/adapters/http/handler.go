package httpadapter

import (
	"context"
	"log/slog"

	"conclave/contexts/governance/council-engine/application/commands"
	"conclave/contexts/governance/council-engine/application/queries"
	"conclave/contexts/governance/council-engine/domain/entities"
	httptransport "conclave/contexts/governance/council-engine/transport/http"
)

type Handler struct {
	Commands  commands.CouncilUseCase
	Roster    queries.RosterUseCase
	Proposals queries.ProposalsUseCase
	Ledger    queries.LedgerUseCase
	Logger    *slog.Logger
}

func (h Handler) AddMemberHandler(ctx context.Context, req httptransport.AddMemberRequest) (httptransport.MemberResponse, error) {
	result, err := h.Commands.AddMember(ctx, commands.AddMemberCommand{
		MemberID:      req.MemberID,
		Name:          req.Name,
		InitialEnergy: req.InitialEnergy,
	})
	if err != nil {
		return httptransport.MemberResponse{}, err
	}
	return httptransport.MemberResponse{
		MemberID: result.MemberID,
		Name:     req.Name,
		Energy:   req.InitialEnergy,
	}, nil
}

func (h Handler) RosterHandler(ctx context.Context) (httptransport.RosterResponse, error) {
	standings, err := h.Roster.Roster(ctx)
	if err != nil {
		return httptransport.RosterResponse{}, err
	}
	resp := httptransport.RosterResponse{
		Members: make([]httptransport.MemberResponse, 0, len(standings)),
	}
	for _, standing := range standings {
		resp.Members = append(resp.Members, httptransport.MemberResponse{
			MemberID: standing.MemberID,
			Name:     standing.Name,
			Energy:   standing.Energy,
			Damage:   standing.Damage,
		})
	}
	if outcome, ok := h.Roster.LastOutcome(ctx); ok {
		resp.LastOutcome = string(outcome)
	}
	return resp, nil
}

func (h Handler) ProposeHandler(ctx context.Context, req httptransport.ProposeRequest) (httptransport.ProposeResponse, error) {
	result, err := h.Commands.Propose(ctx, commands.ProposeCommand{
		Title:            req.Title,
		Risk:             entities.RiskTier(req.Risk),
		VotingWindowSecs: req.VotingWindowSecs,
	})
	if err != nil {
		return httptransport.ProposeResponse{}, err
	}
	return httptransport.ProposeResponse{
		ProposalID: result.ProposalID,
		ClosesAt:   result.ClosesAt,
	}, nil
}

func (h Handler) ListProposalsHandler(ctx context.Context) (httptransport.ProposalListResponse, error) {
	proposals, err := h.Proposals.List(ctx)
	if err != nil {
		return httptransport.ProposalListResponse{}, err
	}
	resp := httptransport.ProposalListResponse{
		Proposals: make([]httptransport.ProposalResponse, 0, len(proposals)),
	}
	for _, proposal := range proposals {
		resp.Proposals = append(resp.Proposals, mapProposal(proposal))
	}
	return resp, nil
}

func (h Handler) GetProposalHandler(ctx context.Context, proposalID string) (httptransport.ProposalResponse, error) {
	proposal, err := h.Proposals.Get(ctx, proposalID)
	if err != nil {
		return httptransport.ProposalResponse{}, err
	}
	return mapProposal(proposal), nil
}

func (h Handler) CastVoteHandler(ctx context.Context, proposalID string, req httptransport.CastVoteRequest) (httptransport.VoteReceiptResponse, error) {
	result, err := h.Commands.CastVote(ctx, commands.CastVoteCommand{
		ProposalID: proposalID,
		MemberID:   req.MemberID,
		Choice:     entities.VoteChoice(req.Choice),
	})
	if err != nil {
		return httptransport.VoteReceiptResponse{}, err
	}
	receipt := result.Receipt
	return httptransport.VoteReceiptResponse{
		ProposalID: receipt.ProposalID,
		MemberID:   receipt.MemberID,
		Choice:     string(receipt.Choice),
		EnergyCost: receipt.EnergyCost,
		Timestamp:  receipt.Timestamp,
	}, nil
}

func (h Handler) CloseProposalHandler(ctx context.Context, proposalID string) (httptransport.CloseProposalResponse, error) {
	result, err := h.Commands.CloseProposal(ctx, commands.CloseProposalCommand{ProposalID: proposalID})
	if err != nil {
		return httptransport.CloseProposalResponse{}, err
	}
	return httptransport.CloseProposalResponse{
		ProposalID: result.ProposalID,
		Outcome:    string(result.Outcome),
	}, nil
}

func (h Handler) ExecuteProposalHandler(ctx context.Context, proposalID string) (httptransport.ExecuteProposalResponse, error) {
	result, err := h.Commands.ExecuteProposal(ctx, commands.ExecuteProposalCommand{ProposalID: proposalID})
	if err != nil {
		return httptransport.ExecuteProposalResponse{}, err
	}
	return httptransport.ExecuteProposalResponse{
		ProposalID:  result.ProposalID,
		Outcome:     string(result.Outcome),
		HookSuccess: result.Execution.Success,
		HookError:   result.Execution.Error,
	}, nil
}

func (h Handler) LedgerHandler(ctx context.Context) (httptransport.LedgerResponse, error) {
	events, err := h.Ledger.Events(ctx)
	if err != nil {
		return httptransport.LedgerResponse{}, err
	}
	resp := httptransport.LedgerResponse{
		Events: make([]httptransport.LedgerEventResponse, 0, len(events)),
	}
	for i, event := range events {
		resp.Events = append(resp.Events, httptransport.LedgerEventResponse{
			Sequence:   uint64(i) + 1,
			EventType:  event.EventType(),
			OccurredAt: event.OccurredAt(),
			Payload:    event,
		})
	}
	return resp, nil
}

func (h Handler) ProposalHistoryHandler(ctx context.Context, proposalID string) (httptransport.LedgerResponse, error) {
	entries, err := h.Ledger.ProposalHistory(ctx, proposalID)
	if err != nil {
		return httptransport.LedgerResponse{}, err
	}
	resp := httptransport.LedgerResponse{
		Events: make([]httptransport.LedgerEventResponse, 0, len(entries)),
	}
	for _, entry := range entries {
		resp.Events = append(resp.Events, httptransport.LedgerEventResponse{
			Sequence:   entry.Sequence,
			EventType:  entry.Event.EventType(),
			OccurredAt: entry.Event.OccurredAt(),
			Payload:    entry.Event,
		})
	}
	return resp, nil
}

func mapProposal(proposal entities.Proposal) httptransport.ProposalResponse {
	resp := httptransport.ProposalResponse{
		ProposalID: proposal.ProposalID,
		Title:      proposal.Title,
		Risk:       string(proposal.Risk),
		Status:     string(proposal.Status),
		CreatedAt:  proposal.CreatedAt,
		ClosesAt:   proposal.ClosesAt,
		Votes:      make([]httptransport.VoteRecordResponse, 0, len(proposal.Votes)),
	}
	if proposal.Outcome != nil {
		resp.Outcome = string(*proposal.Outcome)
	}
	for _, vote := range proposal.Votes {
		resp.Votes = append(resp.Votes, httptransport.VoteRecordResponse{
			MemberID:   vote.MemberID,
			Choice:     string(vote.Choice),
			EnergyCost: vote.EnergyCost,
			Timestamp:  vote.Timestamp,
		})
	}
	return resp
}
