// Package sqlite stores the ledger in a single-file SQLite database for small, single-node
// deployments. Amounts are kept as decimal TEXT and timestamps as fixed-width UTC TEXT so
// that string order matches time order.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/roomate/household_ledger/internal/apperrors"
	"github.com/roomate/household_ledger/internal/core/domain"
	portsrepo "github.com/roomate/household_ledger/internal/core/ports/repositories"
	"github.com/roomate/household_ledger/internal/models"
	"github.com/roomate/household_ledger/internal/utils/mapping"
	"github.com/roomate/household_ledger/internal/utils/pagination"
)

const timeLayout = "2006-01-02T15:04:05.000000000Z"

const entryColumns = `e.entry_id, e.room_id, e.created_by, e.title, e.description, e.entry_type,
	e.total_amount, e.split_type, e.status, e.due_date, e.created_at, e.updated_at`

const splitColumns = `s.split_id, s.entry_id, s.member_id, s.position, s.amount_owed, s.amount_paid,
	s.payment_status, s.paid_at, s.notes`

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// LedgerRepository implements the ledger ports on database/sql. The handle is expected to
// allow a single open connection, which serializes every transaction.
type LedgerRepository struct {
	db *sql.DB
}

// NewLedgerRepository wraps an already migrated database.
func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

var _ portsrepo.LedgerRepositoryFacade = (*LedgerRepository)(nil)

// NewRepositoryProvider exposes the ledger repository. Membership comes from the static
// roster when running on SQLite, so MemberRepo stays nil.
func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{LedgerRepo: NewLedgerRepository(db)}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

func parseTimePtr(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func mapError(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %s already exists", apperrors.ErrConflict, what)
	}
	return apperrors.NewAppError(http.StatusInternalServerError, "database error on "+what, err)
}

func scanEntry(row scanner) (models.LedgerEntry, error) {
	var (
		m                    models.LedgerEntry
		description, dueDate sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(
		&m.EntryID,
		&m.RoomID,
		&m.CreatedBy,
		&m.Title,
		&description,
		&m.EntryType,
		&m.TotalAmount,
		&m.SplitType,
		&m.Status,
		&dueDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return m, err
	}
	m.Description = nullString(description)
	if m.DueDate, err = parseTimePtr(dueDate); err != nil {
		return m, err
	}
	if m.CreatedAt, err = parseTime(createdAt); err != nil {
		return m, err
	}
	if m.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return m, err
	}
	return m, nil
}

func scanSplit(row scanner) (models.LedgerSplit, error) {
	var (
		m             models.LedgerSplit
		paidAt, notes sql.NullString
	)
	err := row.Scan(
		&m.SplitID,
		&m.EntryID,
		&m.MemberID,
		&m.Position,
		&m.AmountOwed,
		&m.AmountPaid,
		&m.PaymentStatus,
		&paidAt,
		&notes,
	)
	if err != nil {
		return m, err
	}
	m.Notes = nullString(notes)
	if m.PaidAt, err = parseTimePtr(paidAt); err != nil {
		return m, err
	}
	return m, nil
}

func (r *LedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ledger_entries (
			entry_id, room_id, created_by, title, description, entry_type,
			total_amount, split_type, status, due_date, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.EntryID, m.RoomID, m.CreatedBy, m.Title, m.Description, m.EntryType,
		m.TotalAmount.String(), m.SplitType, m.Status, formatTimePtr(m.DueDate),
		formatTime(m.CreatedAt), formatTime(m.UpdatedAt),
	)
	if err != nil {
		return mapError(err, "ledger entry "+m.EntryID)
	}
	return nil
}

func (r *LedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	return r.loadEntry(ctx, r.db, entryID)
}

func (r *LedgerRepository) loadEntry(ctx context.Context, q querier, entryID string) (*domain.LedgerEntry, error) {
	m, err := scanEntry(q.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM ledger_entries e WHERE e.entry_id = ?`, entryID))
	if err != nil {
		return nil, mapError(err, "ledger entry "+entryID)
	}
	entry := mapping.ToDomainLedgerEntry(m)
	splits, err := r.loadSplits(ctx, q, []string{entryID})
	if err != nil {
		return nil, err
	}
	if s, ok := splits[entryID]; ok {
		entry.Splits = s
	}
	return &entry, nil
}

func (r *LedgerRepository) loadSplits(ctx context.Context, q querier, entryIDs []string) (map[string][]domain.LedgerSplit, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(entryIDs)), ",")
	args := make([]any, len(entryIDs))
	for i, id := range entryIDs {
		args[i] = id
	}

	rows, err := q.QueryContext(ctx,
		`SELECT `+splitColumns+` FROM ledger_splits s WHERE s.entry_id IN (`+placeholders+`) ORDER BY s.entry_id, s.position`,
		args...)
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

func (r *LedgerRepository) ListEntriesByRoom(ctx context.Context, roomID string, filter portsrepo.EntryListFilter) ([]domain.LedgerEntry, *string, error) {
	limit := pagination.NormalizeLimit(filter.Limit)

	var sb strings.Builder
	sb.WriteString(`SELECT ` + entryColumns + ` FROM ledger_entries e WHERE e.room_id = ?`)
	args := []any{roomID}

	if !filter.IncludeCancelled {
		sb.WriteString(` AND e.status <> 'CANCELLED'`)
	}
	if filter.Status != nil {
		sb.WriteString(` AND e.status = ?`)
		args = append(args, string(*filter.Status))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		cursor, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid next token: %w", err)
		}
		at := formatTime(cursor.CreatedAt)
		sb.WriteString(` AND (e.created_at < ? OR (e.created_at = ? AND e.entry_id < ?))`)
		args = append(args, at, at, cursor.ID)
	}
	sb.WriteString(` ORDER BY e.created_at DESC, e.entry_id DESC LIMIT ?`)
	args = append(args, limit+1)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, nil, mapError(err, "ledger entries of room "+roomID)
	}
	entries := make([]domain.LedgerEntry, 0, limit+1)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			rows.Close()
			return nil, nil, mapError(err, "ledger entry row")
		}
		entries = append(entries, mapping.ToDomainLedgerEntry(m))
	}
	rows.Close()
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
	splits, err := r.loadSplits(ctx, r.db, ids)
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

func (r *LedgerRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE ledger_entries SET status = ?, updated_at = ? WHERE entry_id = ?`,
		string(status), formatTime(updatedAt), entryID)
	return checkAffected(res, err, "ledger entry "+entryID)
}

// DeleteEntry relies on ON DELETE CASCADE, which needs foreign_keys enabled on the connection.
func (r *LedgerRepository) DeleteEntry(ctx context.Context, entryID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ledger_entries WHERE entry_id = ?`, entryID)
	return checkAffected(res, err, "ledger entry "+entryID)
}

func checkAffected(res sql.Result, err error, what string) error {
	if err != nil {
		return mapError(err, what)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(err, what)
	}
	if n == 0 {
		return mapError(sql.ErrNoRows, what)
	}
	return nil
}

func (r *LedgerRepository) ReplaceSplits(ctx context.Context, entryID string, mutate portsrepo.EntryMutation) (*domain.LedgerEntry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", err)
	}
	defer tx.Rollback()

	entry, err := r.loadEntry(ctx, tx, entryID)
	if err != nil {
		return nil, err
	}
	if err := mutate(entry); err != nil {
		return nil, err
	}

	if err := updateEntryHeader(ctx, tx, entry); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM ledger_splits WHERE entry_id = ?`, entryID); err != nil {
		return nil, mapError(err, "splits of ledger entry "+entryID)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ledger_splits (
			split_id, entry_id, member_id, position, amount_owed, amount_paid,
			payment_status, paid_at, notes
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, mapError(err, "splits of ledger entry "+entryID)
	}
	defer stmt.Close()

	for i, split := range entry.Splits {
		m := mapping.ToModelLedgerSplit(split, i)
		_, err := stmt.ExecContext(ctx,
			m.SplitID, entryID, m.MemberID, m.Position,
			m.AmountOwed.String(), m.AmountPaid.String(),
			m.PaymentStatus, formatTimePtr(m.PaidAt), m.Notes,
		)
		if err != nil {
			return nil, mapError(err, "ledger split "+m.SplitID)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to commit transaction", err)
	}
	return entry, nil
}

func updateEntryHeader(ctx context.Context, tx *sql.Tx, entry *domain.LedgerEntry) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE ledger_entries SET split_type = ?, status = ?, updated_at = ? WHERE entry_id = ?`,
		string(entry.SplitType), string(entry.Status), formatTime(entry.UpdatedAt), entry.EntryID)
	if err != nil {
		return mapError(err, "ledger entry "+entry.EntryID)
	}
	return nil
}

func (r *LedgerRepository) FindSplitByID(ctx context.Context, splitID string) (*domain.LedgerSplit, error) {
	m, err := scanSplit(r.db.QueryRowContext(ctx, `SELECT `+splitColumns+` FROM ledger_splits s WHERE s.split_id = ?`, splitID))
	if err != nil {
		return nil, mapError(err, "ledger split "+splitID)
	}
	split := mapping.ToDomainLedgerSplit(m)
	return &split, nil
}

func (r *LedgerRepository) ListSplitsByRoom(ctx context.Context, roomID string, includeCancelled bool) ([]domain.LedgerSplit, error) {
	query := `SELECT ` + splitColumns + `
		FROM ledger_splits s
		JOIN ledger_entries e ON e.entry_id = s.entry_id
		WHERE e.room_id = ?`
	if !includeCancelled {
		query += ` AND e.status <> 'CANCELLED'`
	}
	query += ` ORDER BY e.created_at, e.entry_id, s.position`

	rows, err := r.db.QueryContext(ctx, query, roomID)
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

func (r *LedgerRepository) ListMemberSplits(ctx context.Context, roomID, memberID string, unpaidOnly bool) ([]domain.MemberSplit, error) {
	entryQuery := `SELECT DISTINCT ` + entryColumns + `
		FROM ledger_entries e
		JOIN ledger_splits s ON s.entry_id = e.entry_id
		WHERE e.room_id = ? AND s.member_id = ?`
	if unpaidOnly {
		entryQuery += ` AND s.payment_status <> 'PAID'`
	}
	entryQuery += ` ORDER BY e.created_at DESC, e.entry_id DESC`

	rows, err := r.db.QueryContext(ctx, entryQuery, roomID, memberID)
	if err != nil {
		return nil, mapError(err, "entries of member "+memberID)
	}
	entries := make([]domain.LedgerEntry, 0)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			rows.Close()
			return nil, mapError(err, "ledger entry row")
		}
		entries = append(entries, mapping.ToDomainLedgerEntry(m))
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "entries of member "+memberID)
	}
	if len(entries) == 0 {
		return []domain.MemberSplit{}, nil
	}

	ids := make([]string, len(entries))
	for i := range entries {
		ids[i] = entries[i].EntryID
	}
	splits, err := r.loadSplits(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}

	result := make([]domain.MemberSplit, 0, len(entries))
	for _, entry := range entries {
		for _, split := range splits[entry.EntryID] {
			if split.MemberID != memberID || (unpaidOnly && split.IsPaid()) {
				continue
			}
			result = append(result, domain.MemberSplit{Split: split, Entry: entry})
		}
	}
	return result, nil
}

func (r *LedgerRepository) ApplySplitPayment(ctx context.Context, splitID string, pay portsrepo.SplitPayment) (*domain.LedgerEntry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", err)
	}
	defer tx.Rollback()

	var entryID string
	if err := tx.QueryRowContext(ctx, `SELECT entry_id FROM ledger_splits WHERE split_id = ?`, splitID).Scan(&entryID); err != nil {
		return nil, mapError(err, "ledger split "+splitID)
	}

	entry, err := r.loadEntry(ctx, tx, entryID)
	if err != nil {
		return nil, err
	}
	split, ok := entry.SplitByID(splitID)
	if !ok {
		return nil, mapError(sql.ErrNoRows, "ledger split "+splitID)
	}

	if err := pay(entry, split); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE ledger_splits SET amount_paid = ?, payment_status = ?, paid_at = ?, notes = ? WHERE split_id = ?`,
		split.AmountPaid.String(), string(split.PaymentStatus), formatTimePtr(split.PaidAt), split.Notes, split.SplitID)
	if err != nil {
		return nil, mapError(err, "ledger split "+splitID)
	}
	if err := updateEntryHeader(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to commit transaction", err)
	}
	return entry, nil
}
