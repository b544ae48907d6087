package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	domainerrors "conclave/contexts/governance/council-engine/domain/errors"
	"conclave/contexts/governance/council-engine/ports"
)

func TestAppendEventIdempotentBySequence(t *testing.T) {
	store := NewStore()
	record := ports.LedgerEventRecord{
		Sequence:   1,
		EventID:    "event-1",
		EventType:  "governance.member.added",
		Payload:    []byte(`{"member_id":"m1"}`),
		OccurredAt: time.Now().UTC(),
	}

	if err := store.AppendEvent(context.Background(), record); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := store.AppendEvent(context.Background(), record); err != nil {
		t.Fatalf("replay of identical record failed: %v", err)
	}

	diverged := record
	diverged.Payload = []byte(`{"member_id":"m2"}`)
	if err := store.AppendEvent(context.Background(), diverged); !errors.Is(err, domainerrors.ErrConflict) {
		t.Fatalf("expected conflict for diverged payload, got %v", err)
	}

	latest, err := store.LatestSequence(context.Background())
	if err != nil || latest != 1 {
		t.Fatalf("expected latest sequence 1, got %d (%v)", latest, err)
	}
}

func TestListEventsOrdersAndLimits(t *testing.T) {
	store := NewStore()
	for _, sequence := range []uint64{3, 1, 2, 4} {
		if err := store.AppendEvent(context.Background(), ports.LedgerEventRecord{
			Sequence: sequence,
			EventID:  "event",
			Payload:  []byte("{}"),
		}); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	items, err := store.ListEvents(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 2 || items[0].Sequence != 2 || items[1].Sequence != 3 {
		t.Fatalf("unexpected listing: %+v", items)
	}
}

func TestMemberSnapshotRoundTrip(t *testing.T) {
	store := NewStore()
	if err := store.UpsertMemberSnapshot(context.Background(), ports.MemberSnapshot{
		MemberID: "m1",
		Name:     "alice",
		Energy:   100,
	}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := store.UpsertMemberSnapshot(context.Background(), ports.MemberSnapshot{
		MemberID: "m1",
		Name:     "alice",
		Energy:   90,
		Damage:   1,
	}); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	snapshot, ok, err := store.GetMemberSnapshot(context.Background(), "m1")
	if err != nil || !ok {
		t.Fatalf("get failed: %v (%v)", err, ok)
	}
	if snapshot.Energy != 90 || snapshot.Damage != 1 {
		t.Fatalf("upsert did not replace: %+v", snapshot)
	}

	if _, ok, _ := store.GetMemberSnapshot(context.Background(), "ghost"); ok {
		t.Fatalf("expected miss for unknown member")
	}

	if err := store.UpsertMemberSnapshot(context.Background(), ports.MemberSnapshot{MemberID: "a0", Name: "zed"}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	listed, err := store.ListMemberSnapshots(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed) != 2 || listed[0].MemberID != "a0" || listed[1].MemberID != "m1" {
		t.Fatalf("expected sorted listing, got %+v", listed)
	}
}
