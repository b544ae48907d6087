package workers

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"conclave/contexts/governance/council-engine/application/commands"
	"conclave/contexts/governance/council-engine/domain/council"
	"conclave/contexts/governance/council-engine/domain/entities"
)

func TestSimulatorCastsForEverySilentMemberAtFullParticipation(t *testing.T) {
	c, err := council.New(council.DefaultConfig())
	if err != nil {
		t.Fatalf("new council failed: %v", err)
	}
	memberIDs := make([]string, 0, 3)
	for _, name := range []string{"alice", "bob", "carol"} {
		id, err := c.AddMember(name, 100)
		if err != nil {
			t.Fatalf("add member failed: %v", err)
		}
		memberIDs = append(memberIDs, id)
	}
	proposalID, err := c.Propose("simulated", entities.RiskLow, time.Hour)
	if err != nil {
		t.Fatalf("propose failed: %v", err)
	}
	// One member already voted by hand; the simulator must not double-vote.
	if _, err := c.Vote(proposalID, memberIDs[0], entities.VoteChoiceFor); err != nil {
		t.Fatalf("manual vote failed: %v", err)
	}

	sim := Simulator{
		Commands:      commands.CouncilUseCase{Council: c},
		Council:       c,
		Rand:          rand.New(rand.NewSource(7)),
		Participation: 1,
	}
	if err := sim.RunOnce(context.Background()); err != nil {
		t.Fatalf("simulator run failed: %v", err)
	}

	proposal, _ := c.Proposal(proposalID)
	if len(proposal.Votes) != 3 {
		t.Fatalf("expected all members voted, got %d votes", len(proposal.Votes))
	}
	for _, memberID := range memberIDs {
		if !proposal.HasVoteFrom(memberID) {
			t.Fatalf("member %s did not vote", memberID)
		}
	}

	// A second cycle finds no silent members and changes nothing.
	if err := sim.RunOnce(context.Background()); err != nil {
		t.Fatalf("second simulator run failed: %v", err)
	}
	proposal, _ = c.Proposal(proposalID)
	if len(proposal.Votes) != 3 {
		t.Fatalf("second cycle added votes: %d", len(proposal.Votes))
	}
}

func TestSimulatorIgnoresClosedProposals(t *testing.T) {
	c, err := council.New(council.DefaultConfig())
	if err != nil {
		t.Fatalf("new council failed: %v", err)
	}
	if _, err := c.AddMember("alice", 100); err != nil {
		t.Fatalf("add member failed: %v", err)
	}
	proposalID, _ := c.Propose("closed already", entities.RiskLow, time.Hour)
	if _, err := c.Close(proposalID); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	sim := Simulator{
		Commands:      commands.CouncilUseCase{Council: c},
		Council:       c,
		Rand:          rand.New(rand.NewSource(7)),
		Participation: 1,
	}
	if err := sim.RunOnce(context.Background()); err != nil {
		t.Fatalf("simulator run failed: %v", err)
	}
	proposal, _ := c.Proposal(proposalID)
	if len(proposal.Votes) != 0 {
		t.Fatalf("simulator voted on a closed proposal")
	}
}

func TestSimulatorSurvivesDepletedMembers(t *testing.T) {
	c, err := council.New(council.DefaultConfig())
	if err != nil {
		t.Fatalf("new council failed: %v", err)
	}
	if _, err := c.AddMember("broke", 3); err != nil {
		t.Fatalf("add member failed: %v", err)
	}
	if _, err := c.Propose("unaffordable", entities.RiskLow, time.Hour); err != nil {
		t.Fatalf("propose failed: %v", err)
	}

	sim := Simulator{
		Commands:      commands.CouncilUseCase{Council: c},
		Council:       c,
		Rand:          rand.New(rand.NewSource(7)),
		Participation: 1,
	}
	// Vote rejections are skipped, never fatal.
	if err := sim.RunOnce(context.Background()); err != nil {
		t.Fatalf("simulator run failed: %v", err)
	}
}
