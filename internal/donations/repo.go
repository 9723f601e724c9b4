package donations

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/db/models"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/enums"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/pagination"
)

// Repository defines persistence operations on the donations ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, donation *models.Donation) (*models.Donation, error)
	FindByReference(ctx context.Context, reference string) (*models.Donation, error)
	List(ctx context.Context, params listDonationsParams) ([]models.Donation, *pagination.Cursor, error)
	MarkSuccess(ctx context.Context, reference string, fields SuccessFields) (markResult, error)
	MarkFailed(ctx context.Context, reference string, now time.Time) (markResult, error)
	Stats(ctx context.Context) (statsRow, error)
}

// SuccessFields carries the gateway-confirmed values written on the
// Pending→Success transition.
type SuccessFields struct {
	Amount        int64
	Fee           int64
	TransactionID string
	PaidAt        *time.Time
}

type markResult struct {
	Applied bool
	Found   bool
}

type listDonationsParams struct {
	Limit   int
	Cursor  *pagination.Cursor
	Filters ListFilters
}

type statsRow struct {
	TotalCount   int64
	SuccessCount int64
	PendingCount int64
	FailedCount  int64
	GrossMinor   int64
	FeesMinor    int64
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a donations repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, donation *models.Donation) (*models.Donation, error) {
	if err := r.db.WithContext(ctx).Create(donation).Error; err != nil {
		return nil, err
	}
	return donation, nil
}

func (r *repositoryImpl) FindByReference(ctx context.Context, reference string) (*models.Donation, error) {
	var donation models.Donation
	err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&donation).Error
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *repositoryImpl) List(ctx context.Context, params listDonationsParams) ([]models.Donation, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).Model(&models.Donation{})

	if params.Filters.Status != nil {
		query = query.Where("status = ?", *params.Filters.Status)
	}
	if params.Filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *params.Filters.DateFrom)
	}
	if params.Filters.DateTo != nil {
		query = query.Where("created_at <= ?", *params.Filters.DateTo)
	}
	if params.Filters.Query != "" {
		like := "%" + params.Filters.Query + "%"
		query = query.Where("reference ILIKE ? OR donor_email ILIKE ? OR donor_name ILIKE ?", like, like, like)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var rows []models.Donation
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	if len(rows) > normalized {
		next := rows[normalized]
		rows = rows[:normalized]
		return rows, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return rows, nil, nil
}

// MarkSuccess performs the idempotent Pending→Success write. The status guard
// makes concurrent or redelivered confirmations collapse to one effective
// update; success is terminal and is never overwritten.
func (r *repositoryImpl) MarkSuccess(ctx context.Context, reference string, fields SuccessFields) (markResult, error) {
	updates := map[string]any{
		"status": enums.DonationStatusSuccess,
		"fee":    fields.Fee,
	}
	if fields.Amount > 0 {
		updates["amount"] = fields.Amount
	}
	if fields.TransactionID != "" {
		updates["gateway_transaction_id"] = fields.TransactionID
	}
	// A success row always carries paid_at; fall back to the write time when
	// the gateway omitted or mangled its timestamp.
	paidAt := time.Now().UTC()
	if fields.PaidAt != nil {
		paidAt = *fields.PaidAt
	}
	updates["paid_at"] = paidAt

	result := r.db.WithContext(ctx).
		Model(&models.Donation{}).
		Where("reference = ? AND status <> ?", reference, enums.DonationStatusSuccess).
		Updates(updates)
	if result.Error != nil {
		return markResult{}, result.Error
	}

	mark := markResult{Applied: result.RowsAffected > 0}
	if mark.Applied {
		mark.Found = true
		return mark, nil
	}
	return r.checkFound(ctx, reference, mark)
}

// MarkFailed moves a pending donation to failed. A success row is never
// demoted, and a late charge.success can still rescue a failed row.
func (r *repositoryImpl) MarkFailed(ctx context.Context, reference string, now time.Time) (markResult, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Donation{}).
		Where("reference = ? AND status = ?", reference, enums.DonationStatusPending).
		Updates(map[string]any{"status": enums.DonationStatusFailed, "updated_at": now})
	if result.Error != nil {
		return markResult{}, result.Error
	}

	mark := markResult{Applied: result.RowsAffected > 0}
	if mark.Applied {
		mark.Found = true
		return mark, nil
	}
	return r.checkFound(ctx, reference, mark)
}

func (r *repositoryImpl) checkFound(ctx context.Context, reference string, mark markResult) (markResult, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Donation{}).
		Where("reference = ?", reference).
		Count(&count).Error; err != nil {
		return markResult{}, err
	}
	mark.Found = count > 0
	return mark, nil
}

func (r *repositoryImpl) Stats(ctx context.Context) (statsRow, error) {
	var row statsRow

	type countRow struct {
		Status enums.DonationStatus
		Count  int64
	}
	var counts []countRow
	if err := r.db.WithContext(ctx).
		Model(&models.Donation{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return statsRow{}, err
	}
	for _, c := range counts {
		row.TotalCount += c.Count
		switch c.Status {
		case enums.DonationStatusSuccess:
			row.SuccessCount = c.Count
		case enums.DonationStatusPending:
			row.PendingCount = c.Count
		case enums.DonationStatusFailed:
			row.FailedCount = c.Count
		}
	}

	type sumRow struct {
		Gross int64
		Fees  int64
	}
	var sums sumRow
	err := r.db.WithContext(ctx).
		Model(&models.Donation{}).
		Select("COALESCE(SUM(amount), 0) AS gross, COALESCE(SUM(fee), 0) AS fees").
		Where("status = ?", enums.DonationStatusSuccess).
		Scan(&sums).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return statsRow{}, err
	}
	row.GrossMinor = sums.Gross
	row.FeesMinor = sums.Fees

	return row, nil
}
