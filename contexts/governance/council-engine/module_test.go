package councilengine

import (
	"context"
	"errors"
	"testing"

	"conclave/contexts/governance/council-engine/domain/council"
	domainerrors "conclave/contexts/governance/council-engine/domain/errors"
	"conclave/contexts/governance/council-engine/ports"
	httptransport "conclave/contexts/governance/council-engine/transport/http"
)

type recordingBus struct {
	envelopes []ports.EventEnvelope
}

func (b *recordingBus) Publish(_ context.Context, _ string, event ports.EventEnvelope) error {
	b.envelopes = append(b.envelopes, event)
	return nil
}

func TestModuleFullGovernanceCycle(t *testing.T) {
	bus := &recordingBus{}
	module, err := NewInMemoryModule(council.DefaultConfig(), bus, nil)
	if err != nil {
		t.Fatalf("new module failed: %v", err)
	}
	ctx := context.Background()

	memberIDs := make([]string, 0, 3)
	for _, name := range []string{"alice", "bob", "carol"} {
		member, err := module.Handler.AddMemberHandler(ctx, httptransport.AddMemberRequest{
			Name:          name,
			InitialEnergy: 100,
		})
		if err != nil {
			t.Fatalf("add member failed: %v", err)
		}
		memberIDs = append(memberIDs, member.MemberID)
	}

	proposed, err := module.Handler.ProposeHandler(ctx, httptransport.ProposeRequest{
		Title: "ship the release",
		Risk:  "low",
	})
	if err != nil {
		t.Fatalf("propose failed: %v", err)
	}

	for _, memberID := range memberIDs {
		receipt, err := module.Handler.CastVoteHandler(ctx, proposed.ProposalID, httptransport.CastVoteRequest{
			MemberID: memberID,
			Choice:   "for",
		})
		if err != nil {
			t.Fatalf("vote failed: %v", err)
		}
		if receipt.EnergyCost != 10 {
			t.Fatalf("unexpected vote cost %d", receipt.EnergyCost)
		}
	}

	closed, err := module.Handler.CloseProposalHandler(ctx, proposed.ProposalID)
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if closed.Outcome != "passed" {
		t.Fatalf("expected passed, got %s", closed.Outcome)
	}

	executed, err := module.Handler.ExecuteProposalHandler(ctx, proposed.ProposalID)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !executed.HookSuccess {
		t.Fatalf("nil hook should report success: %+v", executed)
	}

	roster, err := module.Handler.RosterHandler(ctx)
	if err != nil {
		t.Fatalf("roster failed: %v", err)
	}
	if roster.LastOutcome != "passed" {
		t.Fatalf("expected last outcome passed, got %s", roster.LastOutcome)
	}
	for _, member := range roster.Members {
		if member.Energy != 90 || member.Damage != 0 {
			t.Fatalf("unexpected standing: %+v", member)
		}
	}

	// 3 adds + 1 create + 3 votes + 1 close + 1 execute.
	ledger, err := module.Handler.LedgerHandler(ctx)
	if err != nil {
		t.Fatalf("ledger failed: %v", err)
	}
	if len(ledger.Events) != 9 {
		t.Fatalf("expected 9 ledger events, got %d", len(ledger.Events))
	}
	if ledger.Events[0].Sequence != 1 || ledger.Events[8].Sequence != 9 {
		t.Fatalf("ledger sequences off: %d..%d", ledger.Events[0].Sequence, ledger.Events[8].Sequence)
	}

	// The relay exports the whole log to the archive and the bus.
	if err := module.Relay.RunOnce(ctx); err != nil {
		t.Fatalf("relay failed: %v", err)
	}
	latest, err := module.Store.LatestSequence(ctx)
	if err != nil || latest != 9 {
		t.Fatalf("expected archive at sequence 9, got %d (%v)", latest, err)
	}
	if len(bus.envelopes) != 9 {
		t.Fatalf("expected 9 published envelopes, got %d", len(bus.envelopes))
	}
	if bus.envelopes[0].SourceService != "council-engine" || bus.envelopes[0].SchemaVersion != 1 {
		t.Fatalf("unexpected envelope header: %+v", bus.envelopes[0])
	}
}

func TestModuleVotePrefixAndRejections(t *testing.T) {
	module, err := NewInMemoryModule(council.DefaultConfig(), &recordingBus{}, nil)
	if err != nil {
		t.Fatalf("new module failed: %v", err)
	}
	ctx := context.Background()

	member, err := module.Handler.AddMemberHandler(ctx, httptransport.AddMemberRequest{
		Name:          "alice",
		InitialEnergy: 15,
	})
	if err != nil {
		t.Fatalf("add member failed: %v", err)
	}
	proposed, err := module.Handler.ProposeHandler(ctx, httptransport.ProposeRequest{
		Title: "prefix target",
		Risk:  "medium",
	})
	if err != nil {
		t.Fatalf("propose failed: %v", err)
	}

	prefix := proposed.ProposalID[:8]
	receipt, err := module.Handler.CastVoteHandler(ctx, prefix, httptransport.CastVoteRequest{
		MemberID: member.MemberID,
		Choice:   "for",
	})
	if err != nil {
		t.Fatalf("prefixed vote failed: %v", err)
	}
	if receipt.ProposalID != proposed.ProposalID {
		t.Fatalf("prefix resolved wrong proposal: %s", receipt.ProposalID)
	}

	if _, err := module.Handler.CastVoteHandler(ctx, prefix, httptransport.CastVoteRequest{
		MemberID: member.MemberID,
		Choice:   "against",
	}); !errors.Is(err, domainerrors.ErrDuplicateVote) {
		t.Fatalf("expected duplicate vote, got %v", err)
	}

	other, err := module.Handler.AddMemberHandler(ctx, httptransport.AddMemberRequest{
		Name:          "poor",
		InitialEnergy: 3,
	})
	if err != nil {
		t.Fatalf("add member failed: %v", err)
	}
	if _, err := module.Handler.CastVoteHandler(ctx, prefix, httptransport.CastVoteRequest{
		MemberID: other.MemberID,
		Choice:   "abstain",
	}); !errors.Is(err, domainerrors.ErrInsufficientEnergy) {
		t.Fatalf("expected insufficient energy, got %v", err)
	}

	if _, err := module.Handler.GetProposalHandler(ctx, "does-not-exist"); !errors.Is(err, domainerrors.ErrUnknownProposal) {
		t.Fatalf("expected unknown proposal, got %v", err)
	}
	if _, err := module.Handler.CastVoteHandler(ctx, prefix, httptransport.CastVoteRequest{
		MemberID: member.MemberID,
		Choice:   "maybe",
	}); !errors.Is(err, domainerrors.ErrInvalidVoteInput) {
		t.Fatalf("expected invalid vote input, got %v", err)
	}
}
