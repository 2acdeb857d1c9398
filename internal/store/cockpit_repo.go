package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/akozyrev/checkride/internal/checklist"
	"github.com/akozyrev/checkride/internal/cockpit"
)

// CockpitInfo is a list row for the home screen and CLI listings.
type CockpitInfo struct {
	ID             string
	Name           string
	Manufacturer   string
	Model          string
	InstrumentCnt  int
	ChecklistCnt   int
}

// ChecklistInfo is a list row describing one checklist of a cockpit.
type ChecklistInfo struct {
	ID          string
	CockpitID   string
	CockpitName string
	Name        string
	ItemCnt     int
	AttemptCnt  int
}

// CockpitRepo persists whole cockpit aggregates: the cockpit, its markers,
// its checklists with their items and attempt history.
type CockpitRepo interface {
	// Save upserts the aggregate, replacing any previous state for the
	// same cockpit id.
	Save(ctx context.Context, c *cockpit.Cockpit, lists []*checklist.Checklist) error

	// Get loads the aggregate. Returns ErrNotFound for an unknown id.
	Get(ctx context.Context, id string) (*cockpit.Cockpit, []*checklist.Checklist, error)

	// List returns all cockpits, newest first.
	List(ctx context.Context) ([]CockpitInfo, error)

	// ListChecklists returns all checklists joined with their cockpit
	// name, for pickers.
	ListChecklists(ctx context.Context) ([]ChecklistInfo, error)

	// FindChecklist resolves a checklist by id or (unique) name and
	// returns its cockpit id and checklist id.
	FindChecklist(ctx context.Context, ref string) (cockpitID, checklistID string, err error)

	// Delete removes the aggregate, cascading to markers, items and
	// attempts.
	Delete(ctx context.Context, id string) error
}

type cockpitRepo struct {
	db *gorm.DB
}

func (r *cockpitRepo) Save(ctx context.Context, c *cockpit.Cockpit, lists []*checklist.Checklist) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Replace children wholesale; the domain aggregate carries the
		// full state, attempt history included.
		for _, del := range []any{
			&AttemptRecord{}, &ChecklistItemRecord{},
		} {
			if err := tx.Where("checklist_id IN (?)",
				tx.Model(&ChecklistRecord{}).Select("id").Where("cockpit_id = ?", c.ID),
			).Delete(del).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("cockpit_id = ?", c.ID).Delete(&ChecklistRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("cockpit_id = ?", c.ID).Delete(&InstrumentRecord{}).Error; err != nil {
			return err
		}

		rec := toCockpitRecord(c)
		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		for i, m := range c.Markers.All() {
			ir := toInstrumentRecord(c.ID, m, i)
			if err := tx.Create(&ir).Error; err != nil {
				return err
			}
		}
		for _, cl := range lists {
			cr := ChecklistRecord{ID: cl.ID, CockpitID: c.ID, Name: cl.Name}
			if err := tx.Create(&cr).Error; err != nil {
				return err
			}
			for pos, it := range cl.Items() {
				ir := toItemRecord(cl.ID, it, pos)
				if err := tx.Create(&ir).Error; err != nil {
					return err
				}
			}
			for _, a := range cl.Attempts() {
				ar := toAttemptRecord(cl.ID, a)
				if err := tx.Create(&ar).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *cockpitRepo) Get(ctx context.Context, id string) (*cockpit.Cockpit, []*checklist.Checklist, error) {
	var rec CockpitRecord
	err := r.db.WithContext(ctx).
		Preload("Instruments", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Checklists").
		Preload("Checklists.Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Checklists.Attempts", func(db *gorm.DB) *gorm.DB { return db.Order("number") }).
		First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("cockpit %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, nil, err
	}

	c, lists := fromCockpitRecord(&rec)
	return c, lists, nil
}

func (r *cockpitRepo) List(ctx context.Context) ([]CockpitInfo, error) {
	var recs []CockpitRecord
	if err := r.db.WithContext(ctx).
		Preload("Instruments").
		Preload("Checklists").
		Order("created_at DESC").
		Find(&recs).Error; err != nil {
		return nil, err
	}

	infos := make([]CockpitInfo, 0, len(recs))
	for _, rec := range recs {
		infos = append(infos, CockpitInfo{
			ID:            rec.ID,
			Name:          rec.Name,
			Manufacturer:  rec.Manufacturer,
			Model:         rec.Model,
			InstrumentCnt: len(rec.Instruments),
			ChecklistCnt:  len(rec.Checklists),
		})
	}
	return infos, nil
}

func (r *cockpitRepo) ListChecklists(ctx context.Context) ([]ChecklistInfo, error) {
	var recs []ChecklistRecord
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Attempts").
		Order("created_at").
		Find(&recs).Error; err != nil {
		return nil, err
	}

	infos := make([]ChecklistInfo, 0, len(recs))
	for _, rec := range recs {
		var cp CockpitRecord
		if err := r.db.WithContext(ctx).Select("name").First(&cp, "id = ?", rec.CockpitID).Error; err != nil {
			return nil, err
		}
		infos = append(infos, ChecklistInfo{
			ID:          rec.ID,
			CockpitID:   rec.CockpitID,
			CockpitName: cp.Name,
			Name:        rec.Name,
			ItemCnt:     len(rec.Items),
			AttemptCnt:  len(rec.Attempts),
		})
	}
	return infos, nil
}

func (r *cockpitRepo) FindChecklist(ctx context.Context, ref string) (string, string, error) {
	var rec ChecklistRecord
	err := r.db.WithContext(ctx).
		Where("id = ? OR name = ?", ref, ref).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", "", fmt.Errorf("checklist %q: %w", ref, ErrNotFound)
	}
	if err != nil {
		return "", "", err
	}
	return rec.CockpitID, rec.ID, nil
}

func (r *cockpitRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, del := range []any{
			&AttemptRecord{}, &ChecklistItemRecord{},
		} {
			if err := tx.Where("checklist_id IN (?)",
				tx.Model(&ChecklistRecord{}).Select("id").Where("cockpit_id = ?", id),
			).Delete(del).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("cockpit_id = ?", id).Delete(&ChecklistRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("cockpit_id = ?", id).Delete(&InstrumentRecord{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&CockpitRecord{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("cockpit %s: %w", id, ErrNotFound)
		}
		return nil
	})
}
