package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/akozyrev/checkride/internal/checklist"
)

// AttemptRepo provides append-only access to attempt history. There is no
// update or delete; attempts are immutable once recorded.
type AttemptRepo interface {
	// Append stores a new attempt for the checklist.
	Append(ctx context.Context, checklistID string, a checklist.Attempt) error

	// ByChecklist returns the checklist's attempts ordered by number.
	ByChecklist(ctx context.Context, checklistID string) ([]checklist.Attempt, error)

	// Count returns how many attempts the checklist has.
	Count(ctx context.Context, checklistID string) (int, error)
}

type attemptRepo struct {
	db *gorm.DB
}

func (r *attemptRepo) Append(ctx context.Context, checklistID string, a checklist.Attempt) error {
	rec := toAttemptRecord(checklistID, a)
	return r.db.WithContext(ctx).Create(&rec).Error
}

func (r *attemptRepo) ByChecklist(ctx context.Context, checklistID string) ([]checklist.Attempt, error) {
	var recs []AttemptRecord
	if err := r.db.WithContext(ctx).
		Where("checklist_id = ?", checklistID).
		Order("number").
		Find(&recs).Error; err != nil {
		return nil, err
	}

	out := make([]checklist.Attempt, 0, len(recs))
	for _, rec := range recs {
		out = append(out, checklist.Attempt{
			ID:      rec.ID,
			Percent: rec.Percent,
			Number:  rec.Number,
			TakenAt: rec.CreatedAt,
		})
	}
	return out, nil
}

func (r *attemptRepo) Count(ctx context.Context, checklistID string) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&AttemptRecord{}).
		Where("checklist_id = ?", checklistID).
		Count(&n).Error
	return int(n), err
}
