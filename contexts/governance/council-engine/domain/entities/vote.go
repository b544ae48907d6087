package entities

import "time"

type VoteChoice string

const (
	VoteChoiceFor     VoteChoice = "for"
	VoteChoiceAgainst VoteChoice = "against"
	VoteChoiceAbstain VoteChoice = "abstain"
)

// ValidVoteChoice reports whether the choice is one of the recognized values.
func ValidVoteChoice(choice VoteChoice) bool {
	switch choice {
	case VoteChoiceFor, VoteChoiceAgainst, VoteChoiceAbstain:
		return true
	default:
		return false
	}
}

// VoteRecord is immutable once appended to a proposal.
type VoteRecord struct {
	MemberID   string
	Choice     VoteChoice
	EnergyCost uint64
	Timestamp  time.Time
}

// VoteReceipt echoes a successful vote back to the caller.
type VoteReceipt struct {
	ProposalID string
	MemberID   string
	Choice     VoteChoice
	EnergyCost uint64
	Timestamp  time.Time
}
