package store

import (
	"github.com/akozyrev/checkride/internal/checklist"
	"github.com/akozyrev/checkride/internal/cockpit"
)

func toCockpitRecord(c *cockpit.Cockpit) *CockpitRecord {
	return &CockpitRecord{
		ID:             c.ID,
		Name:           c.Name,
		Manufacturer:   c.Manufacturer,
		Model:          c.Model,
		Type:           c.Type,
		Description:    c.Description,
		PanoramaLink:   c.Panorama.Link,
		PanoramaWidth:  c.Panorama.Width,
		PanoramaHeight: c.Panorama.Height,
	}
}

func toInstrumentRecord(cockpitID string, m *cockpit.Marker, position int) InstrumentRecord {
	return InstrumentRecord{
		ID:          m.ID,
		CockpitID:   cockpitID,
		Name:        m.Name,
		Description: m.Description,
		X:           m.PixelX,
		Y:           m.PixelY,
		Position:    position,
	}
}

func toItemRecord(checklistID string, it *checklist.Item, position int) ChecklistItemRecord {
	return ChecklistItemRecord{
		ID:           it.ID,
		ChecklistID:  checklistID,
		InstrumentID: it.MarkerID,
		Description:  it.Description,
		Position:     position,
		OrderHint:    it.Order,
	}
}

func toAttemptRecord(checklistID string, a checklist.Attempt) AttemptRecord {
	return AttemptRecord{
		ID:          a.ID,
		ChecklistID: checklistID,
		Percent:     a.Percent,
		Number:      a.Number,
		CreatedAt:   a.TakenAt,
	}
}

// fromCockpitRecord rebuilds the domain aggregate. Checklists share the
// rebuilt registry as their marker lookup.
func fromCockpitRecord(rec *CockpitRecord) (*cockpit.Cockpit, []*checklist.Checklist) {
	markers := make([]cockpit.Marker, 0, len(rec.Instruments))
	for _, ir := range rec.Instruments {
		markers = append(markers, cockpit.Marker{
			ID:          ir.ID,
			PixelX:      ir.X,
			PixelY:      ir.Y,
			Name:        ir.Name,
			Description: ir.Description,
		})
	}
	reg := cockpit.RestoreRegistry(rec.PanoramaWidth, rec.PanoramaHeight, markers)

	c := &cockpit.Cockpit{
		ID:           rec.ID,
		Name:         rec.Name,
		Manufacturer: rec.Manufacturer,
		Model:        rec.Model,
		Type:         rec.Type,
		Description:  rec.Description,
		Panorama: cockpit.Panorama{
			Link:   rec.PanoramaLink,
			Width:  rec.PanoramaWidth,
			Height: rec.PanoramaHeight,
		},
		Markers: reg,
	}

	lists := make([]*checklist.Checklist, 0, len(rec.Checklists))
	for _, cr := range rec.Checklists {
		items := make([]*checklist.Item, 0, len(cr.Items))
		for _, ir := range cr.Items {
			items = append(items, &checklist.Item{
				ID:          ir.ID,
				Description: ir.Description,
				Order:       ir.OrderHint,
				MarkerID:    ir.InstrumentID,
			})
		}
		attempts := make([]checklist.Attempt, 0, len(cr.Attempts))
		for _, ar := range cr.Attempts {
			attempts = append(attempts, checklist.Attempt{
				ID:      ar.ID,
				Percent: ar.Percent,
				Number:  ar.Number,
				TakenAt: ar.CreatedAt,
			})
		}
		lists = append(lists, checklist.Restore(cr.ID, cr.Name, items, attempts, reg))
	}
	return c, lists
}
