package entities

import "time"

// GovernanceEvent is the closed set of ledger entries. The unexported marker
// keeps the set sealed so every consumer switches over all variants.
type GovernanceEvent interface {
	EventType() string
	OccurredAt() time.Time
	governanceEvent()
}

type MemberAdded struct {
	MemberID  string    `json:"member_id"`
	Name      string    `json:"name"`
	Energy    uint64    `json:"energy"`
	Timestamp time.Time `json:"timestamp"`
}

type ProposalCreated struct {
	ProposalID string    `json:"proposal_id"`
	Title      string    `json:"title"`
	Risk       RiskTier  `json:"risk"`
	ClosesAt   time.Time `json:"closes_at"`
	Timestamp  time.Time `json:"timestamp"`
}

type VoteCast struct {
	ProposalID string     `json:"proposal_id"`
	MemberID   string     `json:"member_id"`
	Choice     VoteChoice `json:"choice"`
	EnergyCost uint64     `json:"energy_cost"`
	Timestamp  time.Time  `json:"timestamp"`
}

type ProposalClosed struct {
	ProposalID   string          `json:"proposal_id"`
	Outcome      ProposalOutcome `json:"outcome"`
	ForVotes     int             `json:"for_votes"`
	AgainstVotes int             `json:"against_votes"`
	AbstainVotes int             `json:"abstain_votes"`
	TurnoutPct   float64         `json:"turnout_pct"`
	Timestamp    time.Time       `json:"timestamp"`
}

// DissentScarred records the permanent penalty for a losing-side vote on a
// high-risk proposal. Damage carries the member's damage after the scar.
type DissentScarred struct {
	ProposalID string    `json:"proposal_id"`
	MemberID   string    `json:"member_id"`
	Risk       RiskTier  `json:"risk"`
	Damage     uint64    `json:"damage"`
	Timestamp  time.Time `json:"timestamp"`
}

type ProposalExecuted struct {
	ProposalID string          `json:"proposal_id"`
	Outcome    ProposalOutcome `json:"outcome"`
	Success    bool            `json:"success"`
	Error      string          `json:"error,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}

const (
	EventTypeMemberAdded      = "governance.member.added"
	EventTypeProposalCreated  = "governance.proposal.created"
	EventTypeVoteCast         = "governance.vote.cast"
	EventTypeProposalClosed   = "governance.proposal.closed"
	EventTypeDissentScarred   = "governance.dissent.scarred"
	EventTypeProposalExecuted = "governance.proposal.executed"
)

func (MemberAdded) EventType() string      { return EventTypeMemberAdded }
func (ProposalCreated) EventType() string  { return EventTypeProposalCreated }
func (VoteCast) EventType() string         { return EventTypeVoteCast }
func (ProposalClosed) EventType() string   { return EventTypeProposalClosed }
func (DissentScarred) EventType() string   { return EventTypeDissentScarred }
func (ProposalExecuted) EventType() string { return EventTypeProposalExecuted }

func (e MemberAdded) OccurredAt() time.Time      { return e.Timestamp }
func (e ProposalCreated) OccurredAt() time.Time  { return e.Timestamp }
func (e VoteCast) OccurredAt() time.Time         { return e.Timestamp }
func (e ProposalClosed) OccurredAt() time.Time   { return e.Timestamp }
func (e DissentScarred) OccurredAt() time.Time   { return e.Timestamp }
func (e ProposalExecuted) OccurredAt() time.Time { return e.Timestamp }

func (MemberAdded) governanceEvent()      {}
func (ProposalCreated) governanceEvent()  {}
func (VoteCast) governanceEvent()         {}
func (ProposalClosed) governanceEvent()   {}
func (DissentScarred) governanceEvent()   {}
func (ProposalExecuted) governanceEvent() {}
