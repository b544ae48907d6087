package workers

import (
	"context"
	"log/slog"

	application "conclave/contexts/governance/council-engine/application"
	"conclave/contexts/governance/council-engine/domain/council"
	"conclave/contexts/governance/council-engine/ports"
)

// LedgerRelay exports committed ledger entries: each entry is archived under
// its sequence number and published on the event bus. The archive append is
// idempotent by sequence, so restarting from an earlier cursor is safe and
// the exported stream stays replay-order-equal to the council ledger.
type LedgerRelay struct {
	Council   *council.Council
	Archive   ports.LedgerArchive
	Publisher ports.EventPublisher
	IDGen     ports.IDGenerator
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger

	cursor uint64
	primed bool
}

// RunOnce exports a bounded batch of ledger entries past the cursor. The
// first run primes the cursor from the archive's latest sequence. It stops
// on the first failure so the retry loop can reprocess safely.
func (r *LedgerRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	if !r.primed {
		latest, err := r.Archive.LatestSequence(ctx)
		if err != nil {
			logger.Error("ledger relay cursor prime failed",
				"event", "council_relay_prime_failed",
				"module", "governance/council-engine",
				"layer", "worker",
				"error", err.Error(),
			)
			return err
		}
		r.cursor = latest
		r.primed = true
	}

	pending := r.Council.LedgerEventsSince(int(r.cursor))
	if len(pending) == 0 {
		return nil
	}
	if len(pending) > limit {
		pending = pending[:limit]
	}

	for i, event := range pending {
		sequence := r.cursor + uint64(i) + 1
		eventID, err := r.IDGen.NewID(ctx)
		if err != nil {
			return err
		}
		envelope, err := newGovernanceEnvelope(eventID, event)
		if err != nil {
			logger.Error("ledger relay envelope build failed",
				"event", "council_relay_envelope_failed",
				"module", "governance/council-engine",
				"layer", "worker",
				"sequence", sequence,
				"error", err.Error(),
			)
			return err
		}
		proposalID, memberID := eventScope(event)
		if err := r.Archive.AppendEvent(ctx, ports.LedgerEventRecord{
			Sequence:   sequence,
			EventID:    envelope.EventID,
			EventType:  envelope.EventType,
			ProposalID: proposalID,
			MemberID:   memberID,
			Payload:    envelope.Data,
			OccurredAt: envelope.OccurredAt,
		}); err != nil {
			logger.Error("ledger relay archive append failed",
				"event", "council_relay_archive_failed",
				"module", "governance/council-engine",
				"layer", "worker",
				"sequence", sequence,
				"event_type", envelope.EventType,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Publisher.Publish(ctx, envelope.EventType, envelope); err != nil {
			logger.Error("ledger relay publish failed",
				"event", "council_relay_publish_failed",
				"module", "governance/council-engine",
				"layer", "worker",
				"sequence", sequence,
				"event_type", envelope.EventType,
				"error", err.Error(),
			)
			return err
		}
		r.cursor = sequence
	}

	logger.Info("ledger relay cycle completed",
		"event", "council_relay_completed",
		"module", "governance/council-engine",
		"layer", "worker",
		"exported_count", len(pending),
		"cursor", r.cursor,
	)
	return nil
}
