package errors

import "errors"

var (
	ErrInvalidMemberInput   = errors.New("invalid member input")
	ErrInvalidProposalInput = errors.New("invalid proposal input")
	ErrInvalidVoteInput     = errors.New("invalid vote input")
	ErrInvalidConfiguration = errors.New("invalid governance configuration")
	ErrUnknownMember        = errors.New("council member not found")
	ErrUnknownProposal      = errors.New("proposal not found")
	ErrAmbiguousProposal    = errors.New("proposal id prefix is ambiguous")
	ErrDuplicateMember      = errors.New("member id already registered")
	ErrDuplicateVote        = errors.New("member already voted on this proposal")
	ErrInsufficientEnergy   = errors.New("insufficient energy for vote cost")
	ErrProposalNotOpen      = errors.New("proposal is not open for voting")
	ErrProposalNotClosed    = errors.New("proposal is not closed")
	ErrConflict             = errors.New("governance state conflict")
)
