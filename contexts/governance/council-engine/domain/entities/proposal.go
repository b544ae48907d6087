package entities

import "time"

type RiskTier string

const (
	RiskLow    RiskTier = "low"
	RiskMedium RiskTier = "medium"
	RiskHigh   RiskTier = "high"
)

// ValidRiskTier reports whether the tier is one of the recognized values.
func ValidRiskTier(risk RiskTier) bool {
	switch risk {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	default:
		return false
	}
}

type ProposalStatus string

const (
	ProposalStatusOpen     ProposalStatus = "open"
	ProposalStatusClosed   ProposalStatus = "closed"
	ProposalStatusExecuted ProposalStatus = "executed"
)

type ProposalOutcome string

const (
	ProposalOutcomePassed   ProposalOutcome = "passed"
	ProposalOutcomeFailed   ProposalOutcome = "failed"
	ProposalOutcomeNoQuorum ProposalOutcome = "no_quorum"
)

// Proposal is the voting state machine. Status only moves forward
// (open -> closed -> executed) and Outcome is nil exactly while Status is
// open; once set it never changes.
type Proposal struct {
	ProposalID string
	Title      string
	Risk       RiskTier
	Status     ProposalStatus
	Outcome    *ProposalOutcome
	CreatedAt  time.Time
	ClosesAt   time.Time
	Votes      []VoteRecord
}

// HasVoteFrom reports whether the member already has a recorded vote.
func (p Proposal) HasVoteFrom(memberID string) bool {
	for _, vote := range p.Votes {
		if vote.MemberID == memberID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy safe to hand outside the council lock.
func (p Proposal) Clone() Proposal {
	clone := p
	clone.Votes = append([]VoteRecord(nil), p.Votes...)
	if p.Outcome != nil {
		outcome := *p.Outcome
		clone.Outcome = &outcome
	}
	return clone
}
