package repository

import (
	"context"

	"github.com/timmy/dailyreel/internal/domain"
	"gorm.io/gorm"
)

// DefaultListLimit applies when ListRecent gets a non-positive limit.
const DefaultListLimit = 20

// RunRepository stores upload run history.
type RunRepository struct {
	db *gorm.DB
}

// NewRunRepository creates a new RunRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *RunRepository: repository instance bound to db.
func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a run record.
func (r *RunRepository) Create(ctx context.Context, record *domain.RunRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// GetByID retrieves a run by its ID.
func (r *RunRepository) GetByID(ctx context.Context, id string) (*domain.RunRecord, error) {
	var record domain.RunRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// ListRecent returns the latest runs, newest first.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - limit: maximum number of records.
// Returns:
//   - []domain.RunRecord: records ordered by start time descending.
//   - error: non-nil if the query fails.
func (r *RunRepository) ListRecent(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var records []domain.RunRecord
	err := r.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// CountByStatus returns how many runs ended with status.
func (r *RunRepository) CountByStatus(ctx context.Context, status domain.RunStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.RunRecord{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
