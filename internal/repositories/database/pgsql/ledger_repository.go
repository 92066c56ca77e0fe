package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/roomate/household_ledger/internal/core/domain"
	portsrepo "github.com/roomate/household_ledger/internal/core/ports/repositories"
	"github.com/roomate/household_ledger/internal/models"
	"github.com/roomate/household_ledger/internal/utils/mapping"
	"github.com/roomate/household_ledger/internal/utils/pagination"
)

const entryColumns = `e.entry_id, e.room_id, e.created_by, e.title, e.description, e.entry_type,
	e.total_amount, e.split_type, e.status, e.due_date, e.created_at, e.updated_at`

const splitColumns = `s.split_id, s.entry_id, s.member_id, s.position, s.amount_owed, s.amount_paid,
	s.payment_status, s.paid_at, s.notes`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger entries and splits.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func scanEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.RoomID,
		&m.CreatedBy,
		&m.Title,
		&m.Description,
		&m.EntryType,
		&m.TotalAmount,
		&m.SplitType,
		&m.Status,
		&m.DueDate,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func scanSplit(row pgx.Row) (models.LedgerSplit, error) {
	var m models.LedgerSplit
	err := row.Scan(
		&m.SplitID,
		&m.EntryID,
		&m.MemberID,
		&m.Position,
		&m.AmountOwed,
		&m.AmountPaid,
		&m.PaymentStatus,
		&m.PaidAt,
		&m.Notes,
	)
	return m, err
}

// SaveEntry inserts the entry header.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	query := `
		INSERT INTO ledger_entries (
			entry_id, room_id, created_by, title, description, entry_type,
			total_amount, split_type, status, due_date, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EntryID,
		m.RoomID,
		m.CreatedBy,
		m.Title,
		m.Description,
		m.EntryType,
		m.TotalAmount,
		m.SplitType,
		m.Status,
		m.DueDate,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return mapError(err, "ledger entry "+m.EntryID)
	}
	return nil
}

// FindEntryByID retrieves an entry and its splits.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	return r.loadEntry(ctx, r.Pool, entryID, false)
}

// loadEntry reads an entry and its splits through q. With forUpdate the entry row and its
// split rows stay locked until q's transaction ends.
func (r *PgxLedgerRepository) loadEntry(ctx context.Context, q querier, entryID string, forUpdate bool) (*domain.LedgerEntry, error) {
	lock := ""
	if forUpdate {
		lock = " FOR UPDATE"
	}

	m, err := scanEntry(q.QueryRow(ctx, `SELECT `+entryColumns+` FROM ledger_entries e WHERE e.entry_id = $1`+lock, entryID))
	if err != nil {
		return nil, mapError(err, "ledger entry "+entryID)
	}

	entry := mapping.ToDomainLedgerEntry(m)
	splits, err := r.loadSplits(ctx, q, []string{entryID}, forUpdate)
	if err != nil {
		return nil, err
	}
	entry.Splits = splits[entryID]
	if entry.Splits == nil {
		entry.Splits = []domain.LedgerSplit{}
	}
	return &entry, nil
}

// loadSplits returns the splits of the given entries keyed by entry ID, in position order.
func (r *PgxLedgerRepository) loadSplits(ctx context.Context, q querier, entryIDs []string, forUpdate bool) (map[string][]domain.LedgerSplit, error) {
	query := `SELECT ` + splitColumns + ` FROM ledger_splits s WHERE s.entry_id = ANY($1) ORDER BY s.entry_id, s.position`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	rows, err := q.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, mapError(err, "ledger splits")
	}
	defer rows.Close()

	byEntry := make(map[string][]domain.LedgerSplit, len(entryIDs))
	for rows.Next() {
		m, err := scanSplit(rows)
		if err != nil {
			return nil, mapError(err, "ledger split row")
		}
		byEntry[m.EntryID] = append(byEntry[m.EntryID], mapping.ToDomainLedgerSplit(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "ledger splits")
	}
	return byEntry, nil
}

// ListEntriesByRoom retrieves a room's entries, newest first, with keyset pagination on
// (created_at, entry_id).
func (r *PgxLedgerRepository) ListEntriesByRoom(ctx context.Context, roomID string, filter portsrepo.EntryListFilter) ([]domain.LedgerEntry, *string, error) {
	limit := pagination.NormalizeLimit(filter.Limit)

	var sb strings.Builder
	sb.WriteString(`SELECT ` + entryColumns + ` FROM ledger_entries e WHERE e.room_id = $1`)
	args := []any{roomID}

	if !filter.IncludeCancelled {
		sb.WriteString(` AND e.status <> 'CANCELLED'`)
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		sb.WriteString(fmt.Sprintf(` AND e.status = $%d`, len(args)))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		cursor, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid next token: %w", err)
		}
		args = append(args, cursor.CreatedAt, cursor.ID)
		sb.WriteString(fmt.Sprintf(` AND (e.created_at, e.entry_id) < ($%d, $%d)`, len(args)-1, len(args)))
	}
	// One extra row tells us whether another page exists.
	args = append(args, limit+1)
	sb.WriteString(fmt.Sprintf(` ORDER BY e.created_at DESC, e.entry_id DESC LIMIT $%d`, len(args)))

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, nil, mapError(err, "ledger entries of room "+roomID)
	}
	defer rows.Close()

	entries := make([]domain.LedgerEntry, 0, limit+1)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, mapError(err, "ledger entry row")
		}
		entries = append(entries, mapping.ToDomainLedgerEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, mapError(err, "ledger entries of room "+roomID)
	}

	var nextToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.EntryID)
		nextToken = &token
	}

	if len(entries) == 0 {
		return entries, nil, nil
	}

	ids := make([]string, len(entries))
	for i := range entries {
		ids[i] = entries[i].EntryID
	}
	splits, err := r.loadSplits(ctx, r.Pool, ids, false)
	if err != nil {
		return nil, nil, err
	}
	for i := range entries {
		if s, ok := splits[entries[i].EntryID]; ok {
			entries[i].Splits = s
		}
	}
	return entries, nextToken, nil
}

// UpdateEntryStatus sets the entry's status.
func (r *PgxLedgerRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedAt time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx,
		`UPDATE ledger_entries SET status = $2, updated_at = $3 WHERE entry_id = $1`,
		entryID, string(status), updatedAt)
	if err != nil {
		return mapError(err, "ledger entry "+entryID)
	}
	if cmdTag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "ledger entry "+entryID)
	}
	return nil
}

// DeleteEntry removes an entry. Its splits go with it through ON DELETE CASCADE.
func (r *PgxLedgerRepository) DeleteEntry(ctx context.Context, entryID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM ledger_entries WHERE entry_id = $1`, entryID)
	if err != nil {
		return mapError(err, "ledger entry "+entryID)
	}
	if cmdTag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "ledger entry "+entryID)
	}
	return nil
}

// ReplaceSplits locks the entry, applies mutate, and rewrites the header and all split rows
// within one transaction.
func (r *PgxLedgerRepository) ReplaceSplits(ctx context.Context, entryID string, mutate portsrepo.EntryMutation) (*domain.LedgerEntry, error) {
	tx, err := r.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.rollback(ctx, tx)

	entry, err := r.loadEntry(ctx, tx, entryID, true)
	if err != nil {
		return nil, err
	}
	if err := mutate(entry); err != nil {
		return nil, err
	}

	if err := r.updateEntryHeader(ctx, tx, entry); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM ledger_splits WHERE entry_id = $1`, entryID); err != nil {
		return nil, mapError(err, "splits of ledger entry "+entryID)
	}

	batch := &pgx.Batch{}
	insertQuery := `
		INSERT INTO ledger_splits (
			split_id, entry_id, member_id, position, amount_owed, amount_paid,
			payment_status, paid_at, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for i, split := range entry.Splits {
		m := mapping.ToModelLedgerSplit(split, i)
		batch.Queue(insertQuery,
			m.SplitID,
			entryID,
			m.MemberID,
			m.Position,
			m.AmountOwed,
			m.AmountPaid,
			m.PaymentStatus,
			m.PaidAt,
			m.Notes,
		)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return nil, mapError(err, "splits of ledger entry "+entryID)
		}
	}

	if err := r.commit(ctx, tx); err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *PgxLedgerRepository) updateEntryHeader(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) error {
	_, err := tx.Exec(ctx,
		`UPDATE ledger_entries SET split_type = $2, status = $3, updated_at = $4 WHERE entry_id = $1`,
		entry.EntryID, string(entry.SplitType), string(entry.Status), entry.UpdatedAt)
	if err != nil {
		return mapError(err, "ledger entry "+entry.EntryID)
	}
	return nil
}

// FindSplitByID retrieves a single split.
func (r *PgxLedgerRepository) FindSplitByID(ctx context.Context, splitID string) (*domain.LedgerSplit, error) {
	m, err := scanSplit(r.Pool.QueryRow(ctx, `SELECT `+splitColumns+` FROM ledger_splits s WHERE s.split_id = $1`, splitID))
	if err != nil {
		return nil, mapError(err, "ledger split "+splitID)
	}
	split := mapping.ToDomainLedgerSplit(m)
	return &split, nil
}

// ListSplitsByRoom retrieves every split in the room, oldest entry first.
func (r *PgxLedgerRepository) ListSplitsByRoom(ctx context.Context, roomID string, includeCancelled bool) ([]domain.LedgerSplit, error) {
	query := `SELECT ` + splitColumns + `
		FROM ledger_splits s
		JOIN ledger_entries e ON e.entry_id = s.entry_id
		WHERE e.room_id = $1`
	if !includeCancelled {
		query += ` AND e.status <> 'CANCELLED'`
	}
	query += ` ORDER BY e.created_at, e.entry_id, s.position`

	rows, err := r.Pool.Query(ctx, query, roomID)
	if err != nil {
		return nil, mapError(err, "splits of room "+roomID)
	}
	defer rows.Close()

	splits := make([]domain.LedgerSplit, 0)
	for rows.Next() {
		m, err := scanSplit(rows)
		if err != nil {
			return nil, mapError(err, "ledger split row")
		}
		splits = append(splits, mapping.ToDomainLedgerSplit(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "splits of room "+roomID)
	}
	return splits, nil
}

// ListMemberSplits retrieves a member's splits with their entry headers, newest entry first.
func (r *PgxLedgerRepository) ListMemberSplits(ctx context.Context, roomID, memberID string, unpaidOnly bool) ([]domain.MemberSplit, error) {
	query := `SELECT ` + entryColumns + `, ` + splitColumns + `
		FROM ledger_splits s
		JOIN ledger_entries e ON e.entry_id = s.entry_id
		WHERE e.room_id = $1 AND s.member_id = $2`
	if unpaidOnly {
		query += ` AND s.payment_status <> 'PAID'`
	}
	query += ` ORDER BY e.created_at DESC, e.entry_id DESC`

	rows, err := r.Pool.Query(ctx, query, roomID, memberID)
	if err != nil {
		return nil, mapError(err, "splits of member "+memberID)
	}
	defer rows.Close()

	result := make([]domain.MemberSplit, 0)
	for rows.Next() {
		var e models.LedgerEntry
		var s models.LedgerSplit
		err := rows.Scan(
			&e.EntryID, &e.RoomID, &e.CreatedBy, &e.Title, &e.Description, &e.EntryType,
			&e.TotalAmount, &e.SplitType, &e.Status, &e.DueDate, &e.CreatedAt, &e.UpdatedAt,
			&s.SplitID, &s.EntryID, &s.MemberID, &s.Position, &s.AmountOwed, &s.AmountPaid,
			&s.PaymentStatus, &s.PaidAt, &s.Notes,
		)
		if err != nil {
			return nil, mapError(err, "member split row")
		}
		result = append(result, domain.MemberSplit{
			Split: mapping.ToDomainLedgerSplit(s),
			Entry: mapping.ToDomainLedgerEntry(e),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "splits of member "+memberID)
	}
	return result, nil
}

// ApplySplitPayment locks the split's entry row and every split row of that entry, applies
// pay, and writes back the split and entry header.
func (r *PgxLedgerRepository) ApplySplitPayment(ctx context.Context, splitID string, pay portsrepo.SplitPayment) (*domain.LedgerEntry, error) {
	tx, err := r.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.rollback(ctx, tx)

	var entryID string
	if err := tx.QueryRow(ctx, `SELECT entry_id FROM ledger_splits WHERE split_id = $1`, splitID).Scan(&entryID); err != nil {
		return nil, mapError(err, "ledger split "+splitID)
	}

	entry, err := r.loadEntry(ctx, tx, entryID, true)
	if err != nil {
		return nil, err
	}
	// The splits may have been replaced between the lookup and the lock.
	split, ok := entry.SplitByID(splitID)
	if !ok {
		return nil, mapError(pgx.ErrNoRows, "ledger split "+splitID)
	}

	if err := pay(entry, split); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE ledger_splits SET amount_paid = $2, payment_status = $3, paid_at = $4, notes = $5 WHERE split_id = $1`,
		split.SplitID, split.AmountPaid, string(split.PaymentStatus), split.PaidAt, split.Notes)
	if err != nil {
		return nil, mapError(err, "ledger split "+splitID)
	}
	if err := r.updateEntryHeader(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := r.commit(ctx, tx); err != nil {
		return nil, err
	}
	return entry, nil
}
