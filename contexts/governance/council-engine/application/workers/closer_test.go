package workers

import (
	"context"
	"testing"
	"time"

	"conclave/contexts/governance/council-engine/application/commands"
	"conclave/contexts/governance/council-engine/domain/council"
	"conclave/contexts/governance/council-engine/domain/entities"
)

func TestProposalCloserClosesLapsedWindows(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c, err := council.New(council.DefaultConfig(), council.WithClock(func() time.Time { return base }))
	if err != nil {
		t.Fatalf("new council failed: %v", err)
	}
	memberID, _ := c.AddMember("alice", 100)
	lapsed, _ := c.Propose("short window", entities.RiskLow, time.Minute)
	stillOpen, _ := c.Propose("long window", entities.RiskLow, time.Hour)
	if _, err := c.Vote(lapsed, memberID, entities.VoteChoiceFor); err != nil {
		t.Fatalf("vote failed: %v", err)
	}

	closer := ProposalCloser{
		Commands: commands.CouncilUseCase{Council: c},
		Council:  c,
		Clock:    stubClock{now: base.Add(5 * time.Minute)},
	}
	if err := closer.RunOnce(context.Background()); err != nil {
		t.Fatalf("closer run failed: %v", err)
	}

	closed, _ := c.Proposal(lapsed)
	if closed.Status != entities.ProposalStatusClosed {
		t.Fatalf("lapsed proposal not closed: %s", closed.Status)
	}
	if closed.Outcome == nil || *closed.Outcome != entities.ProposalOutcomePassed {
		t.Fatalf("unexpected outcome for lapsed proposal: %v", closed.Outcome)
	}
	open, _ := c.Proposal(stillOpen)
	if open.Status != entities.ProposalStatusOpen {
		t.Fatalf("closer touched a proposal inside its window")
	}

	// Already closed proposals are skipped on the next sweep.
	if err := closer.RunOnce(context.Background()); err != nil {
		t.Fatalf("second closer run failed: %v", err)
	}
}
