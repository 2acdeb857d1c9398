package store

import "time"

// CockpitRecord is the persisted form of one cockpit and its panorama.
type CockpitRecord struct {
	ID             string `gorm:"primaryKey"`
	Name           string
	Manufacturer   string
	Model          string
	Type           string
	Description    string
	PanoramaLink   string
	PanoramaWidth  int
	PanoramaHeight int
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Instruments []InstrumentRecord `gorm:"foreignKey:CockpitID;constraint:OnDelete:CASCADE"`
	Checklists  []ChecklistRecord  `gorm:"foreignKey:CockpitID;constraint:OnDelete:CASCADE"`
}

func (CockpitRecord) TableName() string { return "cockpits" }

// InstrumentRecord is a persisted marker. Position preserves insertion
// order within the cockpit.
type InstrumentRecord struct {
	ID          string `gorm:"primaryKey"`
	CockpitID   string `gorm:"index"`
	Name        string
	Description string
	X           int
	Y           int
	Position    int
}

func (InstrumentRecord) TableName() string { return "instruments" }

// ChecklistRecord is a persisted checklist header.
type ChecklistRecord struct {
	ID        string `gorm:"primaryKey"`
	CockpitID string `gorm:"index"`
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time

	Items    []ChecklistItemRecord `gorm:"foreignKey:ChecklistID;constraint:OnDelete:CASCADE"`
	Attempts []AttemptRecord       `gorm:"foreignKey:ChecklistID;constraint:OnDelete:CASCADE"`
}

func (ChecklistRecord) TableName() string { return "checklists" }

// ChecklistItemRecord is one persisted step. Position is the authoritative
// sequence index; OrderHint is the display hint the author typed.
type ChecklistItemRecord struct {
	ID           string `gorm:"primaryKey"`
	ChecklistID  string `gorm:"index"`
	InstrumentID string `gorm:"index"`
	Description  string
	Position     int
	OrderHint    int
}

func (ChecklistItemRecord) TableName() string { return "checklist_items" }

// AttemptRecord is one persisted scored submission, append-only.
type AttemptRecord struct {
	ID          string `gorm:"primaryKey"`
	ChecklistID string `gorm:"index"`
	Percent     int
	Number      int
	CreatedAt   time.Time
}

func (AttemptRecord) TableName() string { return "attempts" }
