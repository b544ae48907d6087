package memory

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	domainerrors "conclave/contexts/governance/council-engine/domain/errors"
	"conclave/contexts/governance/council-engine/ports"
)

// Store is the in-memory archive/snapshot backend used by tests and
// DSN-less local runs. It also serves as the module's Clock and IDGenerator.
type Store struct {
	mu sync.RWMutex

	events    map[uint64]ports.LedgerEventRecord
	snapshots map[string]ports.MemberSnapshot
}

func NewStore() *Store {
	return &Store{
		events:    make(map[uint64]ports.LedgerEventRecord),
		snapshots: make(map[string]ports.MemberSnapshot),
	}
}

// AppendEvent is idempotent by sequence: replaying an already archived entry
// succeeds as long as the payload is byte-equal.
func (s *Store) AppendEvent(_ context.Context, record ports.LedgerEventRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.events[record.Sequence]; ok {
		if !bytes.Equal(existing.Payload, record.Payload) {
			return domainerrors.ErrConflict
		}
		return nil
	}
	record.Payload = append([]byte(nil), record.Payload...)
	s.events[record.Sequence] = record
	return nil
}

func (s *Store) LatestSequence(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	latest := uint64(0)
	for sequence := range s.events {
		if sequence > latest {
			latest = sequence
		}
	}
	return latest, nil
}

func (s *Store) ListEvents(_ context.Context, fromSequence uint64, limit int) ([]ports.LedgerEventRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.LedgerEventRecord, 0)
	for sequence, record := range s.events {
		if sequence > fromSequence {
			record.Payload = append([]byte(nil), record.Payload...)
			items = append(items, record)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Sequence < items[j].Sequence
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) UpsertMemberSnapshot(_ context.Context, snapshot ports.MemberSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[strings.TrimSpace(snapshot.MemberID)] = snapshot
	return nil
}

func (s *Store) GetMemberSnapshot(_ context.Context, memberID string) (ports.MemberSnapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, ok := s.snapshots[strings.TrimSpace(memberID)]
	return snapshot, ok, nil
}

func (s *Store) ListMemberSnapshots(_ context.Context) ([]ports.MemberSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.MemberSnapshot, 0, len(s.snapshots))
	for _, snapshot := range s.snapshots {
		items = append(items, snapshot)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].MemberID < items[j].MemberID
	})
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.LedgerArchive = (*Store)(nil)
var _ ports.MemberSnapshotStore = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
