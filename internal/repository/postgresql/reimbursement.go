package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/reimbursement"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const reimbursementColumns = `r.id, r.description, r.status, r.amount, r.user_id, r.created_at, r.updated_at`

type reimbursementRepositoryImpl struct {
	db *database.DB
}

func NewReimbursementRepository(db *database.DB) reimbursement.ReimbursementRepository {
	return &reimbursementRepositoryImpl{db: db}
}

func scanReimbursement(row pgx.Row) (reimbursement.Reimbursement, error) {
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

	rows, err := q.Query(ctx, query, args...)
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

	query := `
		INSERT INTO reimbursements AS r (description, status, amount, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + reimbursementColumns

	created, err := scanReimbursement(q.QueryRow(ctx, query,
		newReimb.Description,
		newReimb.Status,
		newReimb.Amount,
		newReimb.UserID,
	))
	if err != nil {
		return reimbursement.Reimbursement{}, fmt.Errorf("failed to create reimbursement: %w", err)
	}

	return created, nil
}

// GetByID implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepositoryImpl) GetByID(ctx context.Context, id int64) (reimbursement.Reimbursement, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + reimbursementColumns + ` FROM reimbursements r WHERE r.id = $1`

	item, err := scanReimbursement(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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
	return r.list(ctx, `SELECT `+reimbursementColumns+` FROM reimbursements r WHERE r.user_id = $1 ORDER BY r.id`, userID)
}

// ListByStatus implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepositoryImpl) ListByStatus(ctx context.Context, status reimbursement.Status) ([]reimbursement.Reimbursement, error) {
	return r.list(ctx, `SELECT `+reimbursementColumns+` FROM reimbursements r WHERE r.status = $1 ORDER BY r.id`, status)
}

// ListByStatusAndUserID implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepositoryImpl) ListByStatusAndUserID(ctx context.Context, status reimbursement.Status, userID int64) ([]reimbursement.Reimbursement, error) {
	query := `
		SELECT ` + reimbursementColumns + `
		FROM reimbursements r
		WHERE r.status = $1 AND r.user_id = $2
		ORDER BY r.id`
	return r.list(ctx, query, status, userID)
}

// ListByStatusAndUserRole implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepositoryImpl) ListByStatusAndUserRole(ctx context.Context, status reimbursement.Status, role string) ([]reimbursement.Reimbursement, error) {
	query := `
		SELECT ` + reimbursementColumns + `
		FROM reimbursements r
		JOIN users u ON u.id = r.user_id
		WHERE ($1::TEXT = 'ALL' OR r.status = $1::TEXT) AND u.role = $2
		ORDER BY r.id`
	return r.list(ctx, query, status, role)
}

// UpdateStatus implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepositoryImpl) UpdateStatus(ctx context.Context, id int64, status reimbursement.Status) (reimbursement.Reimbursement, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE reimbursements AS r
		SET status = $1, updated_at = NOW()
		WHERE r.id = $2
		RETURNING ` + reimbursementColumns

	updated, err := scanReimbursement(q.QueryRow(ctx, query, status, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return reimbursement.Reimbursement{}, reimbursement.ErrReimbursementNotFound
		}
		return reimbursement.Reimbursement{}, fmt.Errorf("failed to update status for reimbursement %d: %w", id, err)
	}

	return updated, nil
}

// UpdateDescription implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepositoryImpl) UpdateDescription(ctx context.Context, id int64, description string) (reimbursement.Reimbursement, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE reimbursements AS r
		SET description = $1, updated_at = NOW()
		WHERE r.id = $2
		RETURNING ` + reimbursementColumns

	updated, err := scanReimbursement(q.QueryRow(ctx, query, description, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return reimbursement.Reimbursement{}, reimbursement.ErrReimbursementNotFound
		}
		return reimbursement.Reimbursement{}, fmt.Errorf("failed to update description for reimbursement %d: %w", id, err)
	}

	return updated, nil
}

// Delete implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM reimbursements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reimbursement %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return reimbursement.ErrDeleteNotFound
	}

	return nil
}

// DeleteByUserID implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepositoryImpl) DeleteByUserID(ctx context.Context, userID int64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM reimbursements WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete reimbursements of user %d: %w", userID, err)
	}

	return tag.RowsAffected(), nil
}

// SummarizeByStatus implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepositoryImpl) SummarizeByStatus(ctx context.Context, userID *int64) ([]reimbursement.StatusTotal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT status, COUNT(*), COALESCE(SUM(amount), 0)
		FROM reimbursements
		WHERE $1::BIGINT IS NULL OR user_id = $1
		GROUP BY status
		ORDER BY status`

	rows, err := q.Query(ctx, query, userID)
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
