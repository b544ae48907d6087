package ports

import (
	"context"
	"time"
)

// EventEnvelope is the canonical wire shape for exported ledger events.
type EventEnvelope struct {
	EventID          string    `json:"event_id"`
	EventType        string    `json:"event_type"`
	OccurredAt       time.Time `json:"occurred_at"`
	SourceService    string    `json:"source_service"`
	TraceID          string    `json:"trace_id"`
	SchemaVersion    int       `json:"schema_version"`
	PartitionKeyPath string    `json:"partition_key_path"`
	PartitionKey     string    `json:"partition_key"`
	Data             []byte    `json:"data"`
}

// LedgerEventRecord is one archived ledger entry. Sequence is the entry's
// one-based position in the council ledger; the archive is append-only and
// idempotent by sequence so relay replays are safe.
type LedgerEventRecord struct {
	Sequence   uint64
	EventID    string
	EventType  string
	ProposalID string
	MemberID   string
	Payload    []byte
	OccurredAt time.Time
}

type LedgerArchive interface {
	AppendEvent(ctx context.Context, record LedgerEventRecord) error
	LatestSequence(ctx context.Context) (uint64, error)
	ListEvents(ctx context.Context, fromSequence uint64, limit int) ([]LedgerEventRecord, error)
}

// MemberSnapshot is the roster read model projected from ledger events.
type MemberSnapshot struct {
	MemberID  string
	Name      string
	Energy    uint64
	Damage    uint64
	UpdatedAt time.Time
}

type MemberSnapshotStore interface {
	UpsertMemberSnapshot(ctx context.Context, snapshot MemberSnapshot) error
	GetMemberSnapshot(ctx context.Context, memberID string) (MemberSnapshot, bool, error)
	ListMemberSnapshots(ctx context.Context) ([]MemberSnapshot, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type EventSubscriber interface {
	Subscribe(ctx context.Context, topic string, consumerGroup string, handler func(context.Context, EventEnvelope) error) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
