package council

import "conclave/contexts/governance/council-engine/domain/entities"

// TallyResult is the fixed outcome of a close, plus the counts recorded on
// the ProposalClosed ledger event.
type TallyResult struct {
	Outcome      entities.ProposalOutcome
	ForVotes     int
	AgainstVotes int
	AbstainVotes int
	TurnoutPct   float64
}

// Tally is a pure function of the policy, the vote multiset, and the member
// count at close time.
//
// Turnout counts abstentions; the pass ratio excludes them. Below-quorum
// turnout is NoQuorum regardless of the split. Zero decided votes with
// quorum satisfied is Failed, and ties resolve to Failed: outcomes are
// irreversible, so the bias is toward caution.
func Tally(policy RiskPolicy, votes []entities.VoteRecord, memberCount int) TallyResult {
	result := TallyResult{}
	for _, vote := range votes {
		switch vote.Choice {
		case entities.VoteChoiceFor:
			result.ForVotes++
		case entities.VoteChoiceAgainst:
			result.AgainstVotes++
		case entities.VoteChoiceAbstain:
			result.AbstainVotes++
		}
	}

	totalVotes := result.ForVotes + result.AgainstVotes + result.AbstainVotes
	if memberCount > 0 {
		result.TurnoutPct = float64(totalVotes) / float64(memberCount) * 100
	}

	if result.TurnoutPct < policy.QuorumPct {
		result.Outcome = entities.ProposalOutcomeNoQuorum
		return result
	}

	decided := result.ForVotes + result.AgainstVotes
	if decided == 0 {
		result.Outcome = entities.ProposalOutcomeFailed
		return result
	}

	forPct := float64(result.ForVotes) / float64(decided) * 100
	passed := forPct > policy.PassPct
	if policy.PassInclusive {
		passed = forPct >= policy.PassPct
	}
	if passed {
		result.Outcome = entities.ProposalOutcomePassed
	} else {
		result.Outcome = entities.ProposalOutcomeFailed
	}
	return result
}

// losingChoice maps a fixed outcome to the dissenting side. NoQuorum has no
// losing side.
func losingChoice(outcome entities.ProposalOutcome) (entities.VoteChoice, bool) {
	switch outcome {
	case entities.ProposalOutcomePassed:
		return entities.VoteChoiceAgainst, true
	case entities.ProposalOutcomeFailed:
		return entities.VoteChoiceFor, true
	default:
		return "", false
	}
}
