// Package jobs provides database operations for the generation run log.
package jobs

import (
	"time"

	"gorm.io/gorm"

	"github.com/dkotenko/labelforge/internal/entities"
)

// Repository handles all generation job database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new jobs repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Record stores a completed generation pass.
func (r *Repository) Record(job *entities.GenerationJob) error {
	return r.db.Create(job).Error
}

// Recent returns the most recent jobs, newest first.
func (r *Repository) Recent(limit int) ([]entities.GenerationJob, error) {
	if limit <= 0 {
		limit = 50
	}
	var jobs []entities.GenerationJob
	err := r.db.Order("created_at DESC").Limit(limit).Find(&jobs).Error
	return jobs, err
}

// DeleteOldJobs removes job records older than the retention period and
// reports how many rows were dropped.
func (r *Repository) DeleteOldJobs(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	result := r.db.Where("created_at < ?", cutoff).Delete(&entities.GenerationJob{})
	return result.RowsAffected, result.Error
}
