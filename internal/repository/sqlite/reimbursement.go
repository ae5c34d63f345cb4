package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/reimbursement"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/pkg/database"
)

const reimbursementColumns = `r.id, r.description, r.status, r.amount, r.user_id, r.created_at, r.updated_at`

type reimbursementRepositoryImpl struct {
	db *database.SQLiteDB
}

func NewReimbursementRepository(db *database.SQLiteDB) reimbursement.ReimbursementRepository {
	return &reimbursementRepositoryImpl{db: db}
}

func scanReimbursement(row rowScanner) (reimbursement.Reimbursement, error) {
	var r reimbursement.Reimbursement
	err := row.Scan(
		&r.ID,
		&r.Description,
		&r.Status,
		&r.Amount,
		&r.UserID,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

func (r *reimbursementRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]reimbursement.Reimbursement, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reimbursements: %w", err)
	}
	defer rows.Close()

	var list []reimbursement.Reimbursement
	for rows.Next() {
		item, err := scanReimbursement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reimbursement: %w", err)
		}
		list = append(list, item)
	}

	return list, rows.Err()
}

// Create implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepositoryImpl) Create(ctx context.Context, newReimb reimbursement.Reimbursement) (reimbursement.Reimbursement, error) {
	q := GetQuerier(ctx, r.db)

	now := time.Now().UTC()
	result, err := q.ExecContext(ctx,
		`INSERT INTO reimbursements (description, status, amount, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		newReimb.Description,
		string(newReimb.Status),
		newReimb.Amount,
		newReimb.UserID,
		now,
		now,
	)
	if err != nil {
		return reimbursement.Reimbursement{}, fmt.Errorf("failed to create reimbursement: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return reimbursement.Reimbursement{}, err
	}

	return r.GetByID(ctx, id)
}

// GetByID implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepositoryImpl) GetByID(ctx context.Context, id int64) (reimbursement.Reimbursement, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + reimbursementColumns + ` FROM reimbursements r WHERE r.id = ?`

	item, err := scanReimbursement(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return reimbursement.Reimbursement{}, reimbursement.ErrReimbursementNotFound
		}
		return reimbursement.Reimbursement{}, fmt.Errorf("failed to get reimbursement %d: %w", id, err)
	}

	return item, nil
}

// List implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepositoryImpl) List(ctx context.Context) ([]reimbursement.Reimbursement, error) {
	return r.list(ctx, `SELECT `+reimbursementColumns+` FROM reimbursements r ORDER BY r.id`)
}

// ListByUserID implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepositoryImpl) ListByUserID(ctx context.Context, userID int64) ([]reimbursement.Reimbursement, error) {
	return r.list(ctx, `SELECT `+reimbursementColumns+` FROM reimbursements r WHERE r.user_id = ? ORDER BY r.id`, userID)
}

// ListByStatus implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepositoryImpl) ListByStatus(ctx context.Context, status reimbursement.Status) ([]reimbursement.Reimbursement, error) {
	return r.list(ctx, `SELECT `+reimbursementColumns+` FROM reimbursements r WHERE r.status = ? ORDER BY r.id`, string(status))
}

// ListByStatusAndUserID implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepositoryImpl) ListByStatusAndUserID(ctx context.Context, status reimbursement.Status, userID int64) ([]reimbursement.Reimbursement, error) {
	query := `
		SELECT ` + reimbursementColumns + `
		FROM reimbursements r
		WHERE r.status = ? AND r.user_id = ?
		ORDER BY r.id`
	return r.list(ctx, query, string(status), userID)
}

// ListByStatusAndUserRole implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepositoryImpl) ListByStatusAndUserRole(ctx context.Context, status reimbursement.Status, role string) ([]reimbursement.Reimbursement, error) {
	query := `
		SELECT ` + reimbursementColumns + `
		FROM reimbursements r
		JOIN users u ON u.id = r.user_id
		WHERE (? = 'ALL' OR r.status = ?) AND u.role = ?
		ORDER BY r.id`
	return r.list(ctx, query, string(status), string(status), role)
}

func (r *reimbursementRepositoryImpl) update(ctx context.Context, id int64, query string, args ...interface{}) (reimbursement.Reimbursement, error) {
	q := GetQuerier(ctx, r.db)

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return reimbursement.Reimbursement{}, fmt.Errorf("failed to update reimbursement %d: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return reimbursement.Reimbursement{}, err
	}
	if n == 0 {
		return reimbursement.Reimbursement{}, reimbursement.ErrReimbursementNotFound
	}

	return r.GetByID(ctx, id)
}

// UpdateStatus implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepositoryImpl) UpdateStatus(ctx context.Context, id int64, status reimbursement.Status) (reimbursement.Reimbursement, error) {
	return r.update(ctx, id,
		`UPDATE reimbursements SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC(), id,
	)
}

// UpdateDescription implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepositoryImpl) UpdateDescription(ctx context.Context, id int64, description string) (reimbursement.Reimbursement, error) {
	return r.update(ctx, id,
		`UPDATE reimbursements SET description = ?, updated_at = ? WHERE id = ?`,
		description, time.Now().UTC(), id,
	)
}

// Delete implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.ExecContext(ctx, `DELETE FROM reimbursements WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reimbursement %d: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return reimbursement.ErrDeleteNotFound
	}

	return nil
}

// DeleteByUserID implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepositoryImpl) DeleteByUserID(ctx context.Context, userID int64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	result, err := q.ExecContext(ctx, `DELETE FROM reimbursements WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete reimbursements of user %d: %w", userID, err)
	}

	return result.RowsAffected()
}

// SummarizeByStatus implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepositoryImpl) SummarizeByStatus(ctx context.Context, userID *int64) ([]reimbursement.StatusTotal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT status, COUNT(*), COALESCE(SUM(amount), 0)
		FROM reimbursements
		WHERE ? IS NULL OR user_id = ?
		GROUP BY status
		ORDER BY status`

	var owner interface{}
	if userID != nil {
		owner = *userID
	}

	rows, err := q.QueryContext(ctx, query, owner, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize reimbursements: %w", err)
	}
	defer rows.Close()

	var totals []reimbursement.StatusTotal
	for rows.Next() {
		var t reimbursement.StatusTotal
		if err := rows.Scan(&t.Status, &t.Count, &t.Total); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}
