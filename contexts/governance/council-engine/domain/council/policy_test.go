package council

import (
	"testing"

	"conclave/contexts/governance/council-engine/domain/entities"
)

func votes(choices ...entities.VoteChoice) []entities.VoteRecord {
	records := make([]entities.VoteRecord, 0, len(choices))
	for i, choice := range choices {
		records = append(records, entities.VoteRecord{
			MemberID: string(rune('a' + i)),
			Choice:   choice,
		})
	}
	return records
}

func TestTallyOutcomes(t *testing.T) {
	strict := RiskPolicy{QuorumPct: 40, PassPct: 60}
	inclusive := RiskPolicy{QuorumPct: 60, PassPct: 66.7, PassInclusive: true}

	forV := entities.VoteChoiceFor
	against := entities.VoteChoiceAgainst
	abstain := entities.VoteChoiceAbstain

	cases := []struct {
		name        string
		policy      RiskPolicy
		votes       []entities.VoteRecord
		memberCount int
		outcome     entities.ProposalOutcome
		turnoutPct  float64
	}{
		{
			name:        "below quorum is no_quorum regardless of split",
			policy:      strict,
			votes:       votes(forV, forV),
			memberCount: 10,
			outcome:     entities.ProposalOutcomeNoQuorum,
			turnoutPct:  20,
		},
		{
			name:        "turnout exactly at quorum counts",
			policy:      strict,
			votes:       votes(forV, forV, forV, forV),
			memberCount: 10,
			outcome:     entities.ProposalOutcomePassed,
			turnoutPct:  40,
		},
		{
			name:        "abstentions count toward turnout but not the ratio",
			policy:      strict,
			votes:       votes(forV, abstain, abstain, abstain),
			memberCount: 10,
			outcome:     entities.ProposalOutcomePassed,
			turnoutPct:  40,
		},
		{
			name:        "all abstain with quorum met fails",
			policy:      strict,
			votes:       votes(abstain, abstain, abstain, abstain, abstain),
			memberCount: 5,
			outcome:     entities.ProposalOutcomeFailed,
			turnoutPct:  100,
		},
		{
			name:        "strict threshold rejects exact ratio",
			policy:      strict,
			votes:       votes(forV, forV, forV, against, against),
			memberCount: 5,
			outcome:     entities.ProposalOutcomeFailed,
			turnoutPct:  100,
		},
		{
			name:        "strict threshold passes above the bar",
			policy:      strict,
			votes:       votes(forV, forV, forV, forV, against),
			memberCount: 5,
			outcome:     entities.ProposalOutcomePassed,
			turnoutPct:  100,
		},
		{
			name:        "inclusive threshold accepts ratio at the bar",
			policy:      RiskPolicy{QuorumPct: 0, PassPct: 50, PassInclusive: true},
			votes:       votes(forV, against),
			memberCount: 2,
			outcome:     entities.ProposalOutcomePassed,
			turnoutPct:  100,
		},
		{
			name:        "tie fails under a strict majority",
			policy:      RiskPolicy{QuorumPct: 0, PassPct: 50},
			votes:       votes(forV, against),
			memberCount: 2,
			outcome:     entities.ProposalOutcomeFailed,
			turnoutPct:  100,
		},
		{
			name:        "two thirds misses the high bar",
			policy:      inclusive,
			votes:       votes(forV, forV, against),
			memberCount: 3,
			outcome:     entities.ProposalOutcomeFailed,
			turnoutPct:  100,
		},
		{
			name:        "seventy percent clears the high bar",
			policy:      inclusive,
			votes:       votes(forV, forV, forV, forV, forV, forV, forV, against, against, against),
			memberCount: 10,
			outcome:     entities.ProposalOutcomePassed,
			turnoutPct:  100,
		},
		{
			name:        "no votes and no members is no_quorum under a positive quorum",
			policy:      strict,
			votes:       nil,
			memberCount: 0,
			outcome:     entities.ProposalOutcomeNoQuorum,
			turnoutPct:  0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Tally(tc.policy, tc.votes, tc.memberCount)
			if result.Outcome != tc.outcome {
				t.Fatalf("expected outcome %s, got %s", tc.outcome, result.Outcome)
			}
			if result.TurnoutPct != tc.turnoutPct {
				t.Fatalf("expected turnout %.1f, got %.1f", tc.turnoutPct, result.TurnoutPct)
			}
		})
	}
}

func TestTallyCountsChoices(t *testing.T) {
	result := Tally(RiskPolicy{QuorumPct: 0, PassPct: 50}, votes(
		entities.VoteChoiceFor,
		entities.VoteChoiceFor,
		entities.VoteChoiceAgainst,
		entities.VoteChoiceAbstain,
	), 4)
	if result.ForVotes != 2 || result.AgainstVotes != 1 || result.AbstainVotes != 1 {
		t.Fatalf("wrong counts: %+v", result)
	}
}

func TestLosingChoice(t *testing.T) {
	if choice, ok := losingChoice(entities.ProposalOutcomePassed); !ok || choice != entities.VoteChoiceAgainst {
		t.Fatalf("passed should lose against-voters, got %s (%v)", choice, ok)
	}
	if choice, ok := losingChoice(entities.ProposalOutcomeFailed); !ok || choice != entities.VoteChoiceFor {
		t.Fatalf("failed should lose for-voters, got %s (%v)", choice, ok)
	}
	if _, ok := losingChoice(entities.ProposalOutcomeNoQuorum); ok {
		t.Fatalf("no_quorum has no losing side")
	}
}
