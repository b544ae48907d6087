package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type AddMemberRequest struct {
	MemberID      string `json:"member_id,omitempty"`
	Name          string `json:"name"`
	InitialEnergy uint64 `json:"initial_energy"`
}

type MemberResponse struct {
	MemberID string `json:"member_id"`
	Name     string `json:"name"`
	Energy   uint64 `json:"energy"`
	Damage   uint64 `json:"damage"`
}

type RosterResponse struct {
	Members     []MemberResponse `json:"members"`
	LastOutcome string           `json:"last_outcome,omitempty"`
}

type ProposeRequest struct {
	Title            string `json:"title"`
	Risk             string `json:"risk"`
	VotingWindowSecs int64  `json:"voting_window_secs,omitempty"`
}

type ProposeResponse struct {
	ProposalID string    `json:"proposal_id"`
	ClosesAt   time.Time `json:"closes_at"`
}

type VoteRecordResponse struct {
	MemberID   string    `json:"member_id"`
	Choice     string    `json:"choice"`
	EnergyCost uint64    `json:"energy_cost"`
	Timestamp  time.Time `json:"timestamp"`
}

type ProposalResponse struct {
	ProposalID string               `json:"proposal_id"`
	Title      string               `json:"title"`
	Risk       string               `json:"risk"`
	Status     string               `json:"status"`
	Outcome    string               `json:"outcome,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
	ClosesAt   time.Time            `json:"closes_at"`
	Votes      []VoteRecordResponse `json:"votes"`
}

type ProposalListResponse struct {
	Proposals []ProposalResponse `json:"proposals"`
}

type CastVoteRequest struct {
	MemberID string `json:"member_id"`
	Choice   string `json:"choice"`
}

type VoteReceiptResponse struct {
	ProposalID string    `json:"proposal_id"`
	MemberID   string    `json:"member_id"`
	Choice     string    `json:"choice"`
	EnergyCost uint64    `json:"energy_cost"`
	Timestamp  time.Time `json:"timestamp"`
}

type CloseProposalResponse struct {
	ProposalID string `json:"proposal_id"`
	Outcome    string `json:"outcome"`
}

type ExecuteProposalResponse struct {
	ProposalID  string `json:"proposal_id"`
	Outcome     string `json:"outcome"`
	HookSuccess bool   `json:"hook_success"`
	HookError   string `json:"hook_error,omitempty"`
}

type LedgerEventResponse struct {
	Sequence   uint64    `json:"sequence"`
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

type LedgerResponse struct {
	Events []LedgerEventResponse `json:"events"`
}
