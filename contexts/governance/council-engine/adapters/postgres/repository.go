package postgresadapter

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainerrors "conclave/contexts/governance/council-engine/domain/errors"
	"conclave/contexts/governance/council-engine/ports"
)

// Repository archives exported ledger events and the member snapshot read
// model in postgres. The ledger table is append-only; rows are never updated
// or deleted.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// AppendEvent inserts one ledger row keyed by sequence. Replays of an
// already archived sequence succeed when the payload matches and fail with
// ErrConflict when it does not.
func (r *Repository) AppendEvent(ctx context.Context, record ports.LedgerEventRecord) error {
	row := ledgerEventModelFromRecord(record)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sequence"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		if isUniqueViolation(create.Error) {
			return domainerrors.ErrConflict
		}
		return r.logError("council_repo_append_event_failed", create.Error,
			"sequence", record.Sequence,
			"event_type", record.EventType,
		)
	}
	if create.RowsAffected > 0 {
		return nil
	}

	var existing ledgerEventModel
	if err := r.db.WithContext(ctx).
		Select("payload").
		Where("sequence = ?", record.Sequence).
		First(&existing).Error; err != nil {
		return r.logError("council_repo_append_event_load_existing_failed", err,
			"sequence", record.Sequence,
		)
	}
	if !bytes.Equal(existing.Payload, row.Payload) {
		return domainerrors.ErrConflict
	}
	return nil
}

func (r *Repository) LatestSequence(ctx context.Context) (uint64, error) {
	var latest uint64
	err := r.db.WithContext(ctx).
		Model(&ledgerEventModel{}).
		Select("COALESCE(MAX(sequence), 0)").
		Scan(&latest).
		Error
	if err != nil {
		if isUndefinedTable(err) {
			// Schema not migrated yet in local development; relay starts from zero.
			return 0, nil
		}
		return 0, r.logError("council_repo_latest_sequence_failed", err)
	}
	return latest, nil
}

func (r *Repository) ListEvents(ctx context.Context, fromSequence uint64, limit int) ([]ports.LedgerEventRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []ledgerEventModel
	if err := r.db.WithContext(ctx).
		Where("sequence > ?", fromSequence).
		Order("sequence ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("council_repo_list_events_failed", err,
			"from_sequence", fromSequence,
			"limit", limit,
		)
	}
	items := make([]ports.LedgerEventRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toRecord())
	}
	return items, nil
}

func (r *Repository) UpsertMemberSnapshot(ctx context.Context, snapshot ports.MemberSnapshot) error {
	row := memberSnapshotModelFromSnapshot(snapshot)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "member_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"name":       row.Name,
			"energy":     row.Energy,
			"damage":     row.Damage,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("council_repo_upsert_member_snapshot_failed", create.Error,
			"member_id", row.MemberID,
		)
	}
	return nil
}

func (r *Repository) GetMemberSnapshot(ctx context.Context, memberID string) (ports.MemberSnapshot, bool, error) {
	var row memberSnapshotModel
	err := r.db.WithContext(ctx).
		Where("member_id = ?", strings.TrimSpace(memberID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.MemberSnapshot{}, false, nil
		}
		return ports.MemberSnapshot{}, false, r.logError("council_repo_get_member_snapshot_failed", err,
			"member_id", strings.TrimSpace(memberID),
		)
	}
	return row.toSnapshot(), true, nil
}

func (r *Repository) ListMemberSnapshots(ctx context.Context) ([]ports.MemberSnapshot, error) {
	var rows []memberSnapshotModel
	if err := r.db.WithContext(ctx).
		Order("member_id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("council_repo_list_member_snapshots_failed", err)
	}
	items := make([]ports.MemberSnapshot, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toSnapshot())
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "governance/council-engine",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("council repository operation failed", fields...)
	return err
}

type ledgerEventModel struct {
	Sequence   uint64    `gorm:"column:sequence;primaryKey"`
	EventID    string    `gorm:"column:event_id"`
	EventType  string    `gorm:"column:event_type"`
	ProposalID string    `gorm:"column:proposal_id"`
	MemberID   string    `gorm:"column:member_id"`
	Payload    []byte    `gorm:"column:payload"`
	OccurredAt time.Time `gorm:"column:occurred_at"`
	ArchivedAt time.Time `gorm:"column:archived_at"`
}

func (ledgerEventModel) TableName() string {
	return "governance_ledger"
}

func ledgerEventModelFromRecord(record ports.LedgerEventRecord) ledgerEventModel {
	row := ledgerEventModel{
		Sequence:   record.Sequence,
		EventID:    strings.TrimSpace(record.EventID),
		EventType:  strings.TrimSpace(record.EventType),
		ProposalID: strings.TrimSpace(record.ProposalID),
		MemberID:   strings.TrimSpace(record.MemberID),
		Payload:    append([]byte(nil), record.Payload...),
		OccurredAt: record.OccurredAt.UTC(),
		ArchivedAt: time.Now().UTC(),
	}
	if row.EventID == "" {
		row.EventID = uuid.NewString()
	}
	if row.OccurredAt.IsZero() {
		row.OccurredAt = row.ArchivedAt
	}
	return row
}

func (m ledgerEventModel) toRecord() ports.LedgerEventRecord {
	return ports.LedgerEventRecord{
		Sequence:   m.Sequence,
		EventID:    m.EventID,
		EventType:  m.EventType,
		ProposalID: m.ProposalID,
		MemberID:   m.MemberID,
		Payload:    append([]byte(nil), m.Payload...),
		OccurredAt: m.OccurredAt.UTC(),
	}
}

type memberSnapshotModel struct {
	MemberID  string    `gorm:"column:member_id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Energy    uint64    `gorm:"column:energy"`
	Damage    uint64    `gorm:"column:damage"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (memberSnapshotModel) TableName() string {
	return "council_member_snapshots"
}

func memberSnapshotModelFromSnapshot(snapshot ports.MemberSnapshot) memberSnapshotModel {
	row := memberSnapshotModel{
		MemberID:  strings.TrimSpace(snapshot.MemberID),
		Name:      strings.TrimSpace(snapshot.Name),
		Energy:    snapshot.Energy,
		Damage:    snapshot.Damage,
		UpdatedAt: snapshot.UpdatedAt.UTC(),
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = time.Now().UTC()
	}
	return row
}

func (m memberSnapshotModel) toSnapshot() ports.MemberSnapshot {
	return ports.MemberSnapshot{
		MemberID:  m.MemberID,
		Name:      m.Name,
		Energy:    m.Energy,
		Damage:    m.Damage,
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

// SystemClock satisfies ports.Clock with wall time.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// UUIDGenerator satisfies ports.IDGenerator with random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}

var _ ports.LedgerArchive = (*Repository)(nil)
var _ ports.MemberSnapshotStore = (*Repository)(nil)
var _ ports.Clock = SystemClock{}
var _ ports.IDGenerator = UUIDGenerator{}
